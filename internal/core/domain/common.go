package domain

import "time"

// AuditFields holds the timestamps maintained by the import pipeline.
// UpdatedAt only moves when a row actually changes.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
