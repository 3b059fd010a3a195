package dto

import "github.com/SscSPs/hoa_billing_app/internal/core/domain"

// ImportFileRequest is one export file inside a JSON import request.
type ImportFileRequest struct {
	// Name is the logical upload path, "{hoaExternalId}/{filename}".
	Name string `json:"name" binding:"required,uploadpath"`
	// Content is the raw file, base64 encoded (standard alphabet).
	Content string `json:"content" binding:"required,base64"`
	// Gzip marks Content as gzip compressed before base64 encoding.
	Gzip bool `json:"gzip"`
}

// ImportJSONRequest uploads a batch of export files as JSON.
type ImportJSONRequest struct {
	Clean bool                `json:"clean"`
	Files []ImportFileRequest `json:"files" binding:"required,min=1,dive"`
}

// ImportResponse is the batch outcome returned to the caller.
type ImportResponse = domain.BatchImportResult
