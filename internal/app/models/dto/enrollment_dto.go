package dto

import (
	"time"

	"github.com/brunofarias/jornada-lms/internal/app/models"
)

// --- Request DTOs ---

// EnrollRequest represents the request to enroll in a course
type EnrollRequest struct {
	// Empty struct, uses authenticated user and path course ID
}

// RejectEnrollmentRequest carries the reason shown to the student
type RejectEnrollmentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// EnrollmentFilterRequest represents enrollment list filter parameters
type EnrollmentFilterRequest struct {
	Status   *string `form:"status,omitempty"`
	CourseID *int64  `form:"courseId,omitempty"`
	Page     int     `form:"page,default=1" binding:"min=1"`
	PageSize int     `form:"pageSize,default=10" binding:"min=1,max=100"`
}

// --- Response DTOs ---

// EnrollmentResponse represents enrollment state and progress
type EnrollmentResponse struct {
	ID               int64      `json:"id"`
	UserID           int64      `json:"userId"`
	UserName         *string    `json:"userName,omitempty"`
	CourseID         int64      `json:"courseId"`
	CourseTitle      *string    `json:"courseTitle,omitempty"`
	Status           string     `json:"status"`
	CompletedLessons int        `json:"completedLessons"`
	TotalLessons     int        `json:"totalLessons"`
	ProgressPercent  int        `json:"progressPercent"`
	DecidedBy        *int64     `json:"decidedBy,omitempty"`
	DecisionReason   *string    `json:"decisionReason,omitempty"`
	DecidedAt        *time.Time `json:"decidedAt,omitempty"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// EnrollmentListResponse represents a paginated list of enrollments
type EnrollmentListResponse struct {
	Enrollments []EnrollmentResponse `json:"enrollments"`
	PaginationInfo
}

// FromEnrollment converts a models.Enrollment to an EnrollmentResponse
func FromEnrollment(enrollment *models.Enrollment) EnrollmentResponse {
	if enrollment == nil {
		return EnrollmentResponse{}
	}
	resp := EnrollmentResponse{
		ID:               enrollment.ID,
		UserID:           enrollment.UserID,
		CourseID:         enrollment.CourseID,
		Status:           string(enrollment.Status),
		CompletedLessons: enrollment.CompletedLessons,
		TotalLessons:     enrollment.TotalLessons,
		ProgressPercent:  enrollment.ProgressPercent,
		DecidedBy:        enrollment.DecidedBy,
		DecisionReason:   enrollment.DecisionReason,
		DecidedAt:        enrollment.DecidedAt,
		CompletedAt:      enrollment.CompletedAt,
		CreatedAt:        enrollment.CreatedAt,
	}
	if enrollment.User != nil {
		name := enrollment.User.FullName()
		resp.UserName = &name
	}
	if enrollment.Course != nil {
		resp.CourseTitle = &enrollment.Course.Title
	}
	return resp
}
