package dto

import (
	"time"

	"github.com/brunofarias/jornada-lms/internal/app/models"
)

// CompleteLessonResponse represents the state of an enrollment after a
// lesson completion was recorded
type CompleteLessonResponse struct {
	LessonID          int64   `json:"lessonId"`
	CompletedLessons  int     `json:"completedLessons"`
	TotalLessons      int     `json:"totalLessons"`
	ProgressPercent   int     `json:"progressPercent"`
	CourseCompleted   bool    `json:"courseCompleted"`
	CertificateCode   *string `json:"certificateCode,omitempty"`
	AlreadyCompleted  bool    `json:"alreadyCompleted"` // True when the lesson had been completed before
}

// LessonProgressResponse represents a single completed-lesson record
type LessonProgressResponse struct {
	LessonID    int64     `json:"lessonId"`
	LessonTitle *string   `json:"lessonTitle,omitempty"`
	Score       *int      `json:"score,omitempty"`
	CompletedAt time.Time `json:"completedAt"`
}

// EnrollmentProgressResponse represents the full progress view of an enrollment
type EnrollmentProgressResponse struct {
	EnrollmentID     int64                    `json:"enrollmentId"`
	CourseID         int64                    `json:"courseId"`
	CompletedLessons int                      `json:"completedLessons"`
	TotalLessons     int                      `json:"totalLessons"`
	ProgressPercent  int                      `json:"progressPercent"`
	CompletedAt      *time.Time               `json:"completedAt,omitempty"`
	Lessons          []LessonProgressResponse `json:"lessons"`
}

// FromLessonProgress converts a models.LessonProgress to a LessonProgressResponse
func FromLessonProgress(progress *models.LessonProgress) LessonProgressResponse {
	if progress == nil {
		return LessonProgressResponse{}
	}
	resp := LessonProgressResponse{
		LessonID:    progress.LessonID,
		Score:       progress.Score,
		CompletedAt: progress.CompletedAt,
	}
	if progress.Lesson != nil {
		resp.LessonTitle = &progress.Lesson.Title
	}
	return resp
}
