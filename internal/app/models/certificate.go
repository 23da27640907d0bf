package models

import (
	"time"
)

// Certificate defines the certificate model based on the 'certificates' table
type Certificate struct {
	ID       int64     `json:"id" db:"id" example:"1"`                                  // Unique identifier for the certificate
	UserID   int64     `json:"userId" db:"user_id" example:"1"`                         // Certified user ID
	CourseID int64     `json:"courseId" db:"course_id" example:"1"`                     // Completed course ID
	Code     string    `json:"code" db:"code" example:"9f1b2c3d-4e5f-6a7b-8c9d-0e1f2a3b4c5d"` // Public verification code
	FileID   *int64    `json:"fileId,omitempty" db:"file_id" example:"8"`               // Rendered artifact file ID (nullable, the only mutable field)
	IssuedAt time.Time `json:"issuedAt" db:"issued_at" example:"2024-03-01T12:00:00Z"`  // Timestamp of issuance

	// Relations - not stored in DB
	User   *User   `json:"user,omitempty"`   // Certified user details
	Course *Course `json:"course,omitempty"` // Course details
	File   *File   `json:"file,omitempty"`   // Rendered artifact details
}
