package domain

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// ChargeNotification is a line of the current billing notice of an apartment.
// Notifications mirror the latest file exactly; rows missing from it are removed.
type ChargeNotification struct {
	NotificationID string          `json:"notificationID"`
	ApartmentID    string          `json:"apartmentID"`
	ExternalID     string          `json:"externalID"`
	LineNo         int             `json:"lineNo"`
	Description    string          `json:"description"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	AuditFields
}

// NotificationKey builds the identity of a notification line.
func NotificationKey(apartmentID string, lineNo int, externalID string) string {
	return apartmentID + "#" + strconv.Itoa(lineNo) + "#" + externalID
}

// Key returns the identity of the notification line.
func (n ChargeNotification) Key() string {
	return NotificationKey(n.ApartmentID, n.LineNo, n.ExternalID)
}
