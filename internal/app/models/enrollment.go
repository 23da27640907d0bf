package models

import (
	"time"
)

// EnrollmentStatus represents the state of an enrollment request
type EnrollmentStatus string

const (
	EnrollmentPending  EnrollmentStatus = "PENDING"
	EnrollmentApproved EnrollmentStatus = "APPROVED"
	EnrollmentRejected EnrollmentStatus = "REJECTED"
)

// IsDecided reports whether the enrollment has left the pending state.
// APPROVED and REJECTED are terminal: a decided enrollment is never re-decided.
func (s EnrollmentStatus) IsDecided() bool {
	return s == EnrollmentApproved || s == EnrollmentRejected
}

// CanTransitionTo reports whether moving from s to target is a legal
// state change. Only PENDING -> APPROVED and PENDING -> REJECTED exist.
func (s EnrollmentStatus) CanTransitionTo(target EnrollmentStatus) bool {
	if s != EnrollmentPending {
		return false
	}
	return target == EnrollmentApproved || target == EnrollmentRejected
}

// Enrollment defines the enrollment model based on the 'enrollments' table
type Enrollment struct {
	ID               int64            `json:"id" db:"id" example:"1"`                                        // Unique identifier for the enrollment
	UserID           int64            `json:"userId" db:"user_id" example:"1"`                               // Enrolled user ID
	CourseID         int64            `json:"courseId" db:"course_id" example:"1"`                           // Course ID
	Status           EnrollmentStatus `json:"status" db:"status" example:"PENDING"`                          // Enrollment status (PENDING, APPROVED, REJECTED)
	CompletedLessons int              `json:"completedLessons" db:"completed_lessons" example:"3"`           // Number of distinct lessons completed
	TotalLessons     int              `json:"totalLessons" db:"total_lessons" example:"12"`                  // Lesson count snapshot used for the progress percentage
	ProgressPercent  int              `json:"progressPercent" db:"progress_percent" example:"25"`            // Rounded completion percentage (0-100)
	DecidedBy        *int64           `json:"decidedBy,omitempty" db:"decided_by" example:"2"`               // User who approved or rejected (nullable)
	DecisionReason   *string          `json:"decisionReason,omitempty" db:"decision_reason"`                 // Reason given on rejection (nullable)
	DecidedAt        *time.Time       `json:"decidedAt,omitempty" db:"decided_at"`                           // Timestamp of the approval or rejection (nullable)
	CompletedAt      *time.Time       `json:"completedAt,omitempty" db:"completed_at"`                       // Timestamp the course reached 100% (nullable, set once)
	CreatedAt        time.Time        `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`      // Timestamp when the enrollment was requested
	UpdatedAt        time.Time        `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"`      // Timestamp when the enrollment was last updated

	// Relations - not stored in DB
	User    *User   `json:"user,omitempty"`    // Enrolled user details
	Course  *Course `json:"course,omitempty"`  // Course details
	Decider *User   `json:"decider,omitempty"` // Details of the user who decided
}

// IsCompleted reports whether the enrolled user finished the course.
func (e *Enrollment) IsCompleted() bool {
	return e.CompletedAt != nil
}
