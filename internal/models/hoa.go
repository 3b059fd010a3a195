package models

// HOA is the persisted homeowners association row.
type HOA struct {
	HOAID      string `db:"hoa_id"`
	ExternalID string `db:"external_id"`
	Name       string `db:"name"`
	AuditFields
}
