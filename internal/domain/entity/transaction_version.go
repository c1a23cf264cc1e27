package entity

import (
	"time"
)

// TransactionVersion is one revision of a processed file, written by the
// pipeline and read here only to resolve where the file lives.
type TransactionVersion struct {
	ID            string    `json:"id"`
	TransactionID string    `json:"transaction_id"`
	VersionNumber int       `json:"version_number"`
	FilesPath     string    `json:"files_path"`
	CreatedAt     time.Time `json:"created_at"`
}
