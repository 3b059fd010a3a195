package domain

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// MonthsPerYear is the number of (charge, payment) pairs in a yearly payment record.
const MonthsPerYear = 12

// PaymentMonth holds the figures of one calendar month.
type PaymentMonth struct {
	Charge  decimal.Decimal `json:"charge"`
	Payment decimal.Decimal `json:"payment"`
}

// Payment is the yearly balance sheet of an apartment.
type Payment struct {
	PaymentID      string                      `json:"paymentID"`
	ApartmentID    string                      `json:"apartmentID"`
	Year           int                         `json:"year"`
	DateFrom       time.Time                   `json:"dateFrom"`
	DateTo         time.Time                   `json:"dateTo"`
	OpeningBalance decimal.Decimal             `json:"openingBalance"`
	ClosingBalance decimal.Decimal             `json:"closingBalance"`
	TotalCharges   decimal.Decimal             `json:"totalCharges"`
	TotalPayments  decimal.Decimal             `json:"totalPayments"`
	Months         [MonthsPerYear]PaymentMonth `json:"months"`
	AuditFields
}

// PaymentKey builds the identity of a yearly payment record.
func PaymentKey(apartmentID string, year int) string {
	return apartmentID + "#" + strconv.Itoa(year)
}

// Key returns the identity of the payment record.
func (p Payment) Key() string {
	return PaymentKey(p.ApartmentID, p.Year)
}
