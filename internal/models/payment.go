package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMonth is one element of the monthly jsonb column.
type PaymentMonth struct {
	Month   int             `json:"month"`
	Charge  decimal.Decimal `json:"charge"`
	Payment decimal.Decimal `json:"payment"`
}

// Payment is the persisted yearly payment row. Monthly is stored as jsonb.
type Payment struct {
	PaymentID      string          `db:"payment_id"`
	ApartmentID    string          `db:"apartment_id"`
	Year           int             `db:"year"`
	DateFrom       time.Time       `db:"date_from"`
	DateTo         time.Time       `db:"date_to"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	ClosingBalance decimal.Decimal `db:"closing_balance"`
	TotalCharges   decimal.Decimal `db:"total_charges"`
	TotalPayments  decimal.Decimal `db:"total_payments"`
	Monthly        []byte          `db:"monthly"`
	AuditFields
}
