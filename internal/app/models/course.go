package models

import (
	"time"
)

// Course defines the course model based on the 'courses' table
type Course struct {
	ID              int64     `json:"id" db:"id" example:"1"`                                           // Unique identifier for the course
	Title           string    `json:"title" db:"title" example:"Fundamentos da Fé"`                     // Course title
	Description     string    `json:"description" db:"description" example:"Curso introdutório"`       // Course description
	Slug            string    `json:"slug" db:"slug" example:"fundamentos-da-fe"`                       // URL-friendly unique slug
	CoverFileID     *int64    `json:"coverFileId,omitempty" db:"cover_file_id" example:"3"`             // Cover image file ID (nullable)
	InstructorID    *int64    `json:"instructorId,omitempty" db:"instructor_id" example:"2"`            // Instructor user ID (nullable, kept on user removal)
	IsPublished     bool      `json:"isPublished" db:"is_published" example:"true"`                     // Whether the course is visible in the catalog
	RequiresApproval bool     `json:"requiresApproval" db:"requires_approval" example:"true"`           // Whether enrollments need a leader's decision
	CertificateText *string   `json:"certificateText,omitempty" db:"certificate_text"`                  // Template text printed on issued certificates (nullable)
	WorkloadHours   int       `json:"workloadHours" db:"workload_hours" example:"40"`                   // Declared workload in hours
	CreatedAt       time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`         // Timestamp when the course was created
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"`         // Timestamp when the course was last updated

	// Relations - not stored in DB
	Instructor *User           `json:"instructor,omitempty"` // Instructor details
	CoverFile  *File           `json:"coverFile,omitempty"`  // Cover image details
	Modules    []*CourseModule `json:"modules,omitempty"`    // Ordered modules of the course
}

// CourseModule defines an ordered section of a course based on the 'course_modules' table
type CourseModule struct {
	ID          int64     `json:"id" db:"id" example:"1"`                                   // Unique identifier for the module
	CourseID    int64     `json:"courseId" db:"course_id" example:"1"`                      // Course this module belongs to
	Title       string    `json:"title" db:"title" example:"Módulo 1 - Introdução"`         // Module title
	Description *string   `json:"description,omitempty" db:"description"`                   // Module description (nullable)
	Position    int       `json:"position" db:"position" example:"1"`                       // Display order within the course
	CreatedAt   time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the module was created
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp when the module was last updated

	// Relations - not stored in DB
	Lessons []*Lesson `json:"lessons,omitempty"` // Ordered lessons of the module
}
