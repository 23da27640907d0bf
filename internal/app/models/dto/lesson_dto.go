package dto

import (
	"time"

	"github.com/brunofarias/jornada-lms/internal/app/models"
)

// --- Request DTOs ---

// CreateLessonRequest represents lesson creation data
type CreateLessonRequest struct {
	Title    string            `json:"title" binding:"required"`
	Type     models.LessonType `json:"type" binding:"required"`
	Content  *string           `json:"content,omitempty"`
	Position int               `json:"position" binding:"min=0"`
}

// UpdateLessonRequest represents lesson update data
type UpdateLessonRequest struct {
	Title    string  `json:"title" binding:"required"`
	Content  *string `json:"content,omitempty"`
	Position int     `json:"position" binding:"min=0"`
}

// CreateQuestionRequest represents quiz question creation data.
// AnswerType only applies to subjective questions and defaults to TEXT.
type CreateQuestionRequest struct {
	Statement  string                `json:"statement" binding:"required"`
	AnswerType *string               `json:"answerType,omitempty" binding:"omitempty,oneof=TEXT FILE"`
	Position   int                   `json:"position" binding:"min=0"`
	Options    []CreateOptionRequest `json:"options,omitempty" binding:"omitempty,dive"`
}

// CreateOptionRequest represents an answer option for an objective question
type CreateOptionRequest struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
	Position  int    `json:"position" binding:"min=0"`
}

// SubmitQuizRequest represents a student's answers to an objective quiz
type SubmitQuizRequest struct {
	Answers []QuizAnswer `json:"answers" binding:"required,min=1,dive"`
}

// QuizAnswer pairs a question with the chosen option
type QuizAnswer struct {
	QuestionID int64 `json:"questionId" binding:"required,gt=0"`
	OptionID   int64 `json:"optionId" binding:"required,gt=0"`
}

// SubmitSubjectiveRequest represents a student's answers to a subjective quiz
type SubmitSubjectiveRequest struct {
	Answers []SubjectiveAnswerInput `json:"answers" binding:"required,min=1,dive"`
}

// SubjectiveAnswerInput carries one answer. Text answers fill Text;
// file answers reference an already uploaded file by FileID.
type SubjectiveAnswerInput struct {
	QuestionID int64   `json:"questionId" binding:"required,gt=0"`
	Text       *string `json:"text,omitempty"`
	FileID     *int64  `json:"fileId,omitempty" binding:"omitempty,gt=0"`
}

// --- Response DTOs ---

// LessonResponse represents basic lesson information
type LessonResponse struct {
	ID          int64     `json:"id"`
	ModuleID    int64     `json:"moduleId"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	Content     *string   `json:"content,omitempty"`
	VideoFileID *int64    `json:"videoFileId,omitempty"`
	VideoURL    *string   `json:"videoUrl,omitempty"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"createdAt"`
}

// QuestionResponse represents a quiz question with its options
type QuestionResponse struct {
	ID         int64            `json:"id"`
	Statement  string           `json:"statement"`
	AnswerType *string          `json:"answerType,omitempty"`
	Position   int              `json:"position"`
	Options    []OptionResponse `json:"options,omitempty"`
}

// OptionResponse represents an answer option shown to students
type OptionResponse struct {
	ID       int64  `json:"id"`
	Text     string `json:"text"`
	Position int    `json:"position"`
}

// QuizResultResponse represents the outcome of a quiz submission
type QuizResultResponse struct {
	Score          int  `json:"score" example:"80"`
	CorrectAnswers int  `json:"correctAnswers" example:"4"`
	TotalQuestions int  `json:"totalQuestions" example:"5"`
	LessonComplete bool `json:"lessonComplete"`
}

// FromLesson converts a models.Lesson to a LessonResponse
func FromLesson(lesson *models.Lesson) LessonResponse {
	if lesson == nil {
		return LessonResponse{}
	}
	resp := LessonResponse{
		ID:          lesson.ID,
		ModuleID:    lesson.ModuleID,
		Title:       lesson.Title,
		Type:        string(lesson.Type),
		Content:     lesson.Content,
		VideoFileID: lesson.VideoFileID,
		Position:    lesson.Position,
		CreatedAt:   lesson.CreatedAt,
	}
	if lesson.VideoFile != nil {
		resp.VideoURL = &lesson.VideoFile.FileURL
	}
	return resp
}

// FromQuestion converts a models.Question to a QuestionResponse
func FromQuestion(question *models.Question) QuestionResponse {
	if question == nil {
		return QuestionResponse{}
	}
	resp := QuestionResponse{
		ID:        question.ID,
		Statement: question.Statement,
		Position:  question.Position,
	}
	if question.AnswerType != nil {
		answerType := string(*question.AnswerType)
		resp.AnswerType = &answerType
	}
	for _, opt := range question.Options {
		resp.Options = append(resp.Options, OptionResponse{
			ID:       opt.ID,
			Text:     opt.Text,
			Position: opt.Position,
		})
	}
	return resp
}
