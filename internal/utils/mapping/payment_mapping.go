package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/hoa_billing_app/internal/core/domain"
	"github.com/SscSPs/hoa_billing_app/internal/models"
)

// ToModelPayment converts a domain Payment to a model Payment, encoding the months as json.
func ToModelPayment(d domain.Payment) (models.Payment, error) {
	months := make([]models.PaymentMonth, domain.MonthsPerYear)
	for i, m := range d.Months {
		months[i] = models.PaymentMonth{Month: i + 1, Charge: m.Charge, Payment: m.Payment}
	}
	monthly, err := json.Marshal(months)
	if err != nil {
		return models.Payment{}, fmt.Errorf("failed to encode monthly figures: %w", err)
	}
	return models.Payment{
		PaymentID:      d.PaymentID,
		ApartmentID:    d.ApartmentID,
		Year:           d.Year,
		DateFrom:       d.DateFrom,
		DateTo:         d.DateTo,
		OpeningBalance: d.OpeningBalance,
		ClosingBalance: d.ClosingBalance,
		TotalCharges:   d.TotalCharges,
		TotalPayments:  d.TotalPayments,
		Monthly:        monthly,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainPayment converts a model Payment to a domain Payment.
func ToDomainPayment(m models.Payment) (domain.Payment, error) {
	d := domain.Payment{
		PaymentID:      m.PaymentID,
		ApartmentID:    m.ApartmentID,
		Year:           m.Year,
		DateFrom:       m.DateFrom,
		DateTo:         m.DateTo,
		OpeningBalance: m.OpeningBalance,
		ClosingBalance: m.ClosingBalance,
		TotalCharges:   m.TotalCharges,
		TotalPayments:  m.TotalPayments,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
	if len(m.Monthly) == 0 {
		return d, nil
	}
	var months []models.PaymentMonth
	if err := json.Unmarshal(m.Monthly, &months); err != nil {
		return domain.Payment{}, fmt.Errorf("failed to decode monthly figures of payment %s: %w", m.PaymentID, err)
	}
	for _, pm := range months {
		if pm.Month < 1 || pm.Month > domain.MonthsPerYear {
			continue
		}
		d.Months[pm.Month-1] = domain.PaymentMonth{Charge: pm.Charge, Payment: pm.Payment}
	}
	return d, nil
}
