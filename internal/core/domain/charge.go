package domain

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Charge is a historical ledger line billed to an apartment for one period.
type Charge struct {
	ChargeID       string          `json:"chargeID"`
	ApartmentID    string          `json:"apartmentID"`
	Period         string          `json:"period"` // YYYYMM
	ExternalLineNo int             `json:"externalLineNo"`
	DateFrom       time.Time       `json:"dateFrom"`
	DateTo         time.Time       `json:"dateTo"`
	Description    string          `json:"description"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	AuditFields
}

// ChargeKey builds the identity of a charge within the HOA.
func ChargeKey(apartmentID, period string, lineNo int) string {
	return apartmentID + "#" + period + "#" + strconv.Itoa(lineNo)
}

// Key returns the identity of the charge.
func (c Charge) Key() string {
	return ChargeKey(c.ApartmentID, c.Period, c.ExternalLineNo)
}
