package model

import "time"

// Document represents a stored file in the system.
// This is a pure domain model with no storage-specific dependencies or tags.
// Documents are immutable after upload; modified versions are always written
// under a freshly generated ID.
type Document struct {
	ID          string    `json:"document_id"`
	Filename    string    `json:"filename"`
	Size        int64     `json:"file_size"`
	FileType    string    `json:"file_type"`
	StoragePath string    `json:"storage_path"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
