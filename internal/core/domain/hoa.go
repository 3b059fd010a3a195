package domain

// HOA represents a homeowners association identified by the code used in the
// property-management exports.
type HOA struct {
	HOAID      string `json:"hoaID"`      // Primary Key (UUID)
	ExternalID string `json:"externalID"` // Code from the export directory name (unique)
	Name       string `json:"name"`       // Display name, defaults to ExternalID on first import
	AuditFields
}
