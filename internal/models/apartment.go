package models

import "github.com/shopspring/decimal"

// Apartment is the persisted apartment row.
type Apartment struct {
	ApartmentID         string          `db:"apartment_id"`
	HOAID               string          `db:"hoa_id"`
	ExternalOwnerID     string          `db:"external_owner_id"`
	ExternalApartmentID string          `db:"external_apartment_id"`
	Owner               string          `db:"owner"`
	Email               *string         `db:"email"`
	Address             string          `db:"address"`
	Building            string          `db:"building"`
	Number              string          `db:"number"`
	PostalCode          string          `db:"postal_code"`
	City                string          `db:"city"`
	ShareNumerator      decimal.Decimal `db:"share_numerator"`
	ShareDenominator    decimal.Decimal `db:"share_denominator"`
	IsActive            bool            `db:"is_active"`
	AuditFields
}
