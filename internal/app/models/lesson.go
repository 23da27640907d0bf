package models

import (
	"time"
)

// Lesson defines the lesson model based on the 'lessons' table
type Lesson struct {
	ID          int64      `json:"id" db:"id" example:"1"`                                   // Unique identifier for the lesson
	ModuleID    int64      `json:"moduleId" db:"module_id" example:"1"`                      // Module this lesson belongs to
	Title       string     `json:"title" db:"title" example:"Aula 1 - Boas-vindas"`          // Lesson title
	Type        LessonType `json:"type" db:"type" example:"VIDEO"`                           // Lesson type (VIDEO, TEXT, OBJECTIVE_QUIZ, SUBJECTIVE_QUIZ)
	Content     *string    `json:"content,omitempty" db:"content"`                           // Text content or video URL (nullable)
	VideoFileID *int64     `json:"videoFileId,omitempty" db:"video_file_id" example:"5"`     // Uploaded video file ID (nullable)
	Position    int        `json:"position" db:"position" example:"1"`                       // Display order within the module
	CreatedAt   time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the lesson was created
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp when the lesson was last updated

	// Relations - not stored in DB
	VideoFile *File       `json:"videoFile,omitempty"` // Uploaded video details
	Questions []*Question `json:"questions,omitempty"` // Quiz questions when the lesson is a quiz
}

// AnswerType represents how a subjective question is answered
type AnswerType string

const (
	AnswerTypeText AnswerType = "TEXT"
	AnswerTypeFile AnswerType = "FILE"
)

// IsValid reports whether the answer type is one of the known values.
func (t AnswerType) IsValid() bool {
	return t == AnswerTypeText || t == AnswerTypeFile
}

// Question defines a quiz question based on the 'questions' table
type Question struct {
	ID         int64       `json:"id" db:"id" example:"1"`                                   // Unique identifier for the question
	LessonID   int64       `json:"lessonId" db:"lesson_id" example:"1"`                      // Quiz lesson this question belongs to
	Statement  string      `json:"statement" db:"statement" example:"Qual é o tema central?"` // Question statement
	AnswerType *AnswerType `json:"answerType,omitempty" db:"answer_type" example:"TEXT"`     // How subjective questions are answered (nil for objective)
	Position   int         `json:"position" db:"position" example:"1"`                       // Display order within the lesson
	CreatedAt  time.Time   `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the question was created
	UpdatedAt  time.Time   `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp when the question was last updated

	// Relations - not stored in DB
	Options []*QuestionOption `json:"options,omitempty"` // Answer options for objective questions
}

// SubjectiveAnswer defines a stored free-form answer based on the
// 'subjective_answers' table
type SubjectiveAnswer struct {
	ID           int64     `json:"id" db:"id" example:"1"`                                   // Unique identifier for the answer
	QuestionID   int64     `json:"questionId" db:"question_id" example:"1"`                  // Question being answered
	EnrollmentID int64     `json:"enrollmentId" db:"enrollment_id" example:"1"`              // Enrollment the answer belongs to
	AnswerText   *string   `json:"answerText,omitempty" db:"answer_text"`                    // Free-text answer (nullable for file answers)
	FileID       *int64    `json:"fileId,omitempty" db:"file_id" example:"9"`                // Uploaded answer file ID (nullable for text answers)
	CreatedAt    time.Time `json:"createdAt" db:"created_at" example:"2024-02-10T20:15:00Z"` // Timestamp of the submission
}

// QuestionOption defines an answer option based on the 'question_options' table
type QuestionOption struct {
	ID         int64  `json:"id" db:"id" example:"1"`                   // Unique identifier for the option
	QuestionID int64  `json:"questionId" db:"question_id" example:"1"`  // Question this option belongs to
	Text       string `json:"text" db:"text" example:"A graça de Deus"` // Option text
	IsCorrect  bool   `json:"-" db:"is_correct"`                        // Whether this option is the correct answer (hidden from students)
	Position   int    `json:"position" db:"position" example:"1"`       // Display order within the question
}
