package dto

import (
	"time"

	"github.com/brunofarias/jornada-lms/internal/app/models"
)

// FileResponse represents an uploaded file
type FileResponse struct {
	ID        int64     `json:"id"`
	FileName  string    `json:"fileName"`
	FileURL   string    `json:"fileUrl"`
	FileSize  int64     `json:"fileSize"`
	MimeType  string    `json:"mimeType"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromFile converts a models.File to a FileResponse
func FromFile(file *models.File) FileResponse {
	if file == nil {
		return FileResponse{}
	}
	return FileResponse{
		ID:        file.ID,
		FileName:  file.FileName,
		FileURL:   file.FileURL,
		FileSize:  file.FileSize,
		MimeType:  file.MimeType,
		CreatedAt: file.CreatedAt,
	}
}
