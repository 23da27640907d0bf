package dto

import (
	"time"

	"github.com/brunofarias/jornada-lms/internal/app/models"
)

// CertificateResponse represents an issued certificate
type CertificateResponse struct {
	ID            int64     `json:"id"`
	Code          string    `json:"code"`
	UserID        int64     `json:"userId"`
	UserName      *string   `json:"userName,omitempty"`
	CourseID      int64     `json:"courseId"`
	CourseTitle   *string   `json:"courseTitle,omitempty"`
	WorkloadHours *int      `json:"workloadHours,omitempty"`
	FileURL       *string   `json:"fileUrl,omitempty"`
	IssuedAt      time.Time `json:"issuedAt"`
}

// CertificateListResponse represents a list of a user's certificates
type CertificateListResponse struct {
	Certificates []CertificateResponse `json:"certificates"`
}

// CertificateVerifyResponse is the public verification view of a certificate
type CertificateVerifyResponse struct {
	Code          string    `json:"code"`
	HolderName    string    `json:"holderName"`
	CourseTitle   string    `json:"courseTitle"`
	WorkloadHours int       `json:"workloadHours"`
	IssuedAt      time.Time `json:"issuedAt"`
}

// FromCertificate converts a models.Certificate to a CertificateResponse
func FromCertificate(cert *models.Certificate) CertificateResponse {
	if cert == nil {
		return CertificateResponse{}
	}
	resp := CertificateResponse{
		ID:       cert.ID,
		Code:     cert.Code,
		UserID:   cert.UserID,
		CourseID: cert.CourseID,
		IssuedAt: cert.IssuedAt,
	}
	if cert.User != nil {
		name := cert.User.FullName()
		resp.UserName = &name
	}
	if cert.Course != nil {
		resp.CourseTitle = &cert.Course.Title
		resp.WorkloadHours = &cert.Course.WorkloadHours
	}
	if cert.File != nil {
		resp.FileURL = &cert.File.FileURL
	}
	return resp
}
