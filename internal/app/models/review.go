package models

import (
	"time"
)

// Review defines the course review model based on the 'reviews' table
type Review struct {
	ID        int64     `json:"id" db:"id" example:"1"`                                   // Unique identifier for the review
	UserID    int64     `json:"userId" db:"user_id" example:"1"`                          // Reviewer user ID
	CourseID  int64     `json:"courseId" db:"course_id" example:"1"`                      // Reviewed course ID
	Rating    int       `json:"rating" db:"rating" example:"5"`                           // Star rating (1-5)
	Comment   *string   `json:"comment,omitempty" db:"comment"`                           // Optional written comment (nullable)
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the review was created
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp when the review was last updated

	// Relations - not stored in DB
	User *User `json:"user,omitempty"` // Reviewer details
}
