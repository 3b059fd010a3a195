package services

import (
	"context"

	"github.com/SscSPs/hoa_billing_app/internal/core/domain"
)

// ImportSvc runs legacy export imports.
type ImportSvc interface {
	// ImportBatch groups files by HOA and imports every HOA in its own transaction.
	// It never returns an error: all failures are reported inside the result.
	ImportBatch(ctx context.Context, files []domain.UploadedFile, opts domain.ImportOptions) domain.BatchImportResult
}
