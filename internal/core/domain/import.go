package domain

// FileRole identifies what an uploaded export file contains.
type FileRole string

const (
	RoleApartments    FileRole = "apartments"
	RoleCharges       FileRole = "charges"
	RoleNotifications FileRole = "notifications"
	RolePayments      FileRole = "payments"
)

// UploadedFile is a single file handed over by a transport, Name being "{hoaExternalId}/{filename}".
type UploadedFile struct {
	Name    string
	Content []byte
}

// FileGroup collects the files of one HOA, at most one per role.
type FileGroup struct {
	HOAExternalID string
	Apartments    *UploadedFile
	Charges       *UploadedFile
	Notifications *UploadedFile
	Payments      *UploadedFile
}

// ImportOptions tunes a batch import.
type ImportOptions struct {
	// CleanImport is passed through from the caller; the pipeline only records it.
	CleanImport bool `json:"cleanImport"`
}

// EntityStats summarises what happened to one entity type during an HOA import.
type EntityStats struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Deleted int `json:"deleted"`
	Total   int `json:"total"`
}

// HOAImportResult is the outcome of one HOA's transaction.
type HOAImportResult struct {
	HOAID         string       `json:"hoaId"`
	Apartments    EntityStats  `json:"apartments"`
	Charges       *EntityStats `json:"charges,omitempty"`
	Notifications *EntityStats `json:"notifications,omitempty"`
	Payments      *EntityStats `json:"payments,omitempty"`
	Errors        []string     `json:"errors"`
}

// ImportError reports a failure scoped to one file or one HOA.
type ImportError struct {
	HOAID   string `json:"hoaId,omitempty"`
	File    string `json:"file,omitempty"`
	Message string `json:"message"`
}

// BatchImportResult is returned by the orchestrator for a whole upload.
type BatchImportResult struct {
	Success     bool              `json:"success"`
	CleanImport bool              `json:"cleanImport"`
	Results     []HOAImportResult `json:"results"`
	Errors      []ImportError     `json:"errors"`
}
