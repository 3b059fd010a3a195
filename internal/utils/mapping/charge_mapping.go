package mapping

import (
	"github.com/SscSPs/hoa_billing_app/internal/core/domain"
	"github.com/SscSPs/hoa_billing_app/internal/models"
)

// ToModelCharge converts a domain Charge to a model Charge
func ToModelCharge(d domain.Charge) models.Charge {
	return models.Charge{
		ChargeID:       d.ChargeID,
		ApartmentID:    d.ApartmentID,
		Period:         d.Period,
		ExternalLineNo: d.ExternalLineNo,
		DateFrom:       d.DateFrom,
		DateTo:         d.DateTo,
		Description:    d.Description,
		Quantity:       d.Quantity,
		Unit:           d.Unit,
		UnitPrice:      d.UnitPrice,
		TotalAmount:    d.TotalAmount,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCharge converts a model Charge to a domain Charge
func ToDomainCharge(m models.Charge) domain.Charge {
	return domain.Charge{
		ChargeID:       m.ChargeID,
		ApartmentID:    m.ApartmentID,
		Period:         m.Period,
		ExternalLineNo: m.ExternalLineNo,
		DateFrom:       m.DateFrom,
		DateTo:         m.DateTo,
		Description:    m.Description,
		Quantity:       m.Quantity,
		Unit:           m.Unit,
		UnitPrice:      m.UnitPrice,
		TotalAmount:    m.TotalAmount,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelNotification converts a domain ChargeNotification to a model ChargeNotification
func ToModelNotification(d domain.ChargeNotification) models.ChargeNotification {
	return models.ChargeNotification{
		NotificationID: d.NotificationID,
		ApartmentID:    d.ApartmentID,
		ExternalID:     d.ExternalID,
		LineNo:         d.LineNo,
		Description:    d.Description,
		Quantity:       d.Quantity,
		Unit:           d.Unit,
		UnitPrice:      d.UnitPrice,
		TotalAmount:    d.TotalAmount,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainNotification converts a model ChargeNotification to a domain ChargeNotification
func ToDomainNotification(m models.ChargeNotification) domain.ChargeNotification {
	return domain.ChargeNotification{
		NotificationID: m.NotificationID,
		ApartmentID:    m.ApartmentID,
		ExternalID:     m.ExternalID,
		LineNo:         m.LineNo,
		Description:    m.Description,
		Quantity:       m.Quantity,
		Unit:           m.Unit,
		UnitPrice:      m.UnitPrice,
		TotalAmount:    m.TotalAmount,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
