package models

import (
	"time"
)

// File defines the file model based on the 'files' table
type File struct {
	ID         int64     `json:"id" db:"id" example:"1"`                                       // Unique identifier for the file
	FileName   string    `json:"fileName" db:"file_name" example:"capa-curso.png"`             // Original file name
	FilePath   string    `json:"-" db:"file_path"`                                             // Storage path (excluded from JSON)
	FileURL    string    `json:"fileUrl" db:"file_url" example:"/uploads/abc123.png"`          // Public URL to access the file
	FileSize   int64     `json:"fileSize" db:"file_size" example:"524288"`                     // File size in bytes
	MimeType   string    `json:"mimeType" db:"mime_type" example:"image/png"`                  // MIME type
	UploadedBy int64     `json:"uploadedBy" db:"uploaded_by" example:"1"`                      // Uploader user ID
	CreatedAt  time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`     // Timestamp when the file was uploaded
}
