package dto

import (
	"time"

	"github.com/brunofarias/jornada-lms/internal/app/models"
)

// --- Request DTOs ---

// CreateCourseRequest represents course creation data
type CreateCourseRequest struct {
	Title            string  `json:"title" binding:"required"`
	Description      string  `json:"description" binding:"required"`
	Slug             string  `json:"slug" binding:"required"`
	InstructorID     *int64  `json:"instructorId,omitempty" binding:"omitempty,gt=0"`
	RequiresApproval bool    `json:"requiresApproval"`
	CertificateText  *string `json:"certificateText,omitempty"`
	WorkloadHours    int     `json:"workloadHours" binding:"min=0"`
}

// UpdateCourseRequest represents course update data
type UpdateCourseRequest struct {
	Title            string  `json:"title" binding:"required"`
	Description      string  `json:"description" binding:"required"`
	InstructorID     *int64  `json:"instructorId,omitempty" binding:"omitempty,gt=0"`
	RequiresApproval bool    `json:"requiresApproval"`
	CertificateText  *string `json:"certificateText,omitempty"`
	WorkloadHours    int     `json:"workloadHours" binding:"min=0"`
}

// PublishCourseRequest toggles catalog visibility
type PublishCourseRequest struct {
	IsPublished bool `json:"isPublished"`
}

// CreateModuleRequest represents course module creation data
type CreateModuleRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description,omitempty"`
	Position    int     `json:"position" binding:"min=0"`
}

// UpdateModuleRequest represents course module update data
type UpdateModuleRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description,omitempty"`
	Position    int     `json:"position" binding:"min=0"`
}

// CourseFilterRequest represents catalog filter parameters
type CourseFilterRequest struct {
	InstructorID *int64  `form:"instructorId,omitempty"`
	Search       *string `form:"search,omitempty"` // Matches title or description
	Published    *bool   `form:"published,omitempty"`
	Page         int     `form:"page,default=1" binding:"min=1"`
	PageSize     int     `form:"pageSize,default=10" binding:"min=1,max=100"`
}

// --- Response DTOs ---

// CourseResponse represents basic course information
type CourseResponse struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Slug             string    `json:"slug"`
	CoverFileID      *int64    `json:"coverFileId,omitempty"`
	CoverURL         *string   `json:"coverUrl,omitempty"`
	InstructorID     *int64    `json:"instructorId,omitempty"`
	InstructorName   *string   `json:"instructorName,omitempty"`
	IsPublished      bool      `json:"isPublished"`
	RequiresApproval bool      `json:"requiresApproval"`
	WorkloadHours    int       `json:"workloadHours"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// CourseDetailResponse extends CourseResponse with its modules and lessons
type CourseDetailResponse struct {
	CourseResponse
	Modules []ModuleResponse `json:"modules"`
}

// ModuleResponse represents a course module with its lessons
type ModuleResponse struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Description *string          `json:"description,omitempty"`
	Position    int              `json:"position"`
	Lessons     []LessonResponse `json:"lessons,omitempty"`
}

// CourseListResponse represents a paginated course catalog page
type CourseListResponse struct {
	Courses []CourseResponse `json:"courses"`
	PaginationInfo
}

// FromCourse converts a models.Course to a CourseResponse
func FromCourse(course *models.Course) CourseResponse {
	if course == nil {
		return CourseResponse{}
	}
	resp := CourseResponse{
		ID:               course.ID,
		Title:            course.Title,
		Description:      course.Description,
		Slug:             course.Slug,
		CoverFileID:      course.CoverFileID,
		InstructorID:     course.InstructorID,
		IsPublished:      course.IsPublished,
		RequiresApproval: course.RequiresApproval,
		WorkloadHours:    course.WorkloadHours,
		CreatedAt:        course.CreatedAt,
		UpdatedAt:        course.UpdatedAt,
	}
	if course.Instructor != nil {
		name := course.Instructor.FullName()
		resp.InstructorName = &name
	}
	if course.CoverFile != nil {
		resp.CoverURL = &course.CoverFile.FileURL
	}
	return resp
}

// FromModule converts a models.CourseModule to a ModuleResponse
func FromModule(module *models.CourseModule) ModuleResponse {
	if module == nil {
		return ModuleResponse{}
	}
	resp := ModuleResponse{
		ID:          module.ID,
		Title:       module.Title,
		Description: module.Description,
		Position:    module.Position,
	}
	for _, lesson := range module.Lessons {
		resp.Lessons = append(resp.Lessons, FromLesson(lesson))
	}
	return resp
}
