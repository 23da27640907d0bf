package models

import (
	"time"
)

// LessonProgress defines a completed-lesson record based on the 'lesson_progress' table
type LessonProgress struct {
	ID           int64     `json:"id" db:"id" example:"1"`                                     // Unique identifier for the progress record
	EnrollmentID int64     `json:"enrollmentId" db:"enrollment_id" example:"1"`                // Enrollment this record belongs to
	LessonID     int64     `json:"lessonId" db:"lesson_id" example:"4"`                        // Completed lesson ID
	Score        *int      `json:"score,omitempty" db:"score" example:"80"`                    // Quiz score percentage (nullable for non-quiz lessons)
	CompletedAt  time.Time `json:"completedAt" db:"completed_at" example:"2024-02-10T20:15:00Z"` // Timestamp of the first completion

	// Relations - not stored in DB
	Lesson *Lesson `json:"lesson,omitempty"` // Lesson details
}
