package domain

import "github.com/shopspring/decimal"

// Apartment is one owner's (or tenant's) record for a unit of an HOA.
// Reconciliation identity is (ExternalOwnerID, ExternalApartmentID), never ApartmentID.
type Apartment struct {
	ApartmentID         string          `json:"apartmentID"`
	HOAID               string          `json:"hoaID"`
	ExternalOwnerID     string          `json:"externalOwnerID"`
	ExternalApartmentID string          `json:"externalApartmentID"`
	Owner               string          `json:"owner"`
	Email               *string         `json:"email,omitempty"`
	Address             string          `json:"address"`
	Building            string          `json:"building"`
	Number              string          `json:"number"`
	PostalCode          string          `json:"postalCode"`
	City                string          `json:"city"`
	ShareNumerator      decimal.Decimal `json:"shareNumerator"`
	ShareDenominator    decimal.Decimal `json:"shareDenominator"`
	IsActive            bool            `json:"isActive"`
	AuditFields
}

// ApartmentKey builds the reconciliation identity shared by all importers.
func ApartmentKey(externalOwnerID, externalApartmentID string) string {
	return externalOwnerID + "#" + externalApartmentID
}

// Key returns the reconciliation identity of the apartment.
func (a Apartment) Key() string {
	return ApartmentKey(a.ExternalOwnerID, a.ExternalApartmentID)
}
