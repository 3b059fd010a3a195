package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Charge is the persisted charge row.
type Charge struct {
	ChargeID       string          `db:"charge_id"`
	ApartmentID    string          `db:"apartment_id"`
	Period         string          `db:"period"`
	ExternalLineNo int             `db:"external_line_no"`
	DateFrom       time.Time       `db:"date_from"`
	DateTo         time.Time       `db:"date_to"`
	Description    string          `db:"description"`
	Quantity       decimal.Decimal `db:"quantity"`
	Unit           string          `db:"unit"`
	UnitPrice      decimal.Decimal `db:"unit_price"`
	TotalAmount    decimal.Decimal `db:"total_amount"`
	AuditFields
}

// ChargeNotification is the persisted charge_notifications row.
type ChargeNotification struct {
	NotificationID string          `db:"notification_id"`
	ApartmentID    string          `db:"apartment_id"`
	ExternalID     string          `db:"external_id"`
	LineNo         int             `db:"line_no"`
	Description    string          `db:"description"`
	Quantity       decimal.Decimal `db:"quantity"`
	Unit           string          `db:"unit"`
	UnitPrice      decimal.Decimal `db:"unit_price"`
	TotalAmount    decimal.Decimal `db:"total_amount"`
	AuditFields
}
