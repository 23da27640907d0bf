package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/brunofarias/jornada-lms/internal/app/models"
	"github.com/brunofarias/jornada-lms/internal/app/models/dto"
	"github.com/brunofarias/jornada-lms/internal/app/repositories"
	"github.com/brunofarias/jornada-lms/internal/pkg/apperrors"
	"github.com/brunofarias/jornada-lms/internal/pkg/filestorage"
)

// LessonService handles lesson content and quizzes
type LessonService struct {
	lessonRepo      *repositories.LessonRepository
	courseRepo      *repositories.CourseRepository
	enrollmentRepo  *repositories.EnrollmentRepository
	fileRepo        *repositories.FileRepository
	storage         filestorage.FileStorage
	notifier        *NotificationService
	progressService *ProgressService
	logger          zerolog.Logger
}

// NewLessonService creates a new LessonService
func NewLessonService(
	lessonRepo *repositories.LessonRepository,
	courseRepo *repositories.CourseRepository,
	enrollmentRepo *repositories.EnrollmentRepository,
	fileRepo *repositories.FileRepository,
	storage filestorage.FileStorage,
	notifier *NotificationService,
	progressService *ProgressService,
	logger zerolog.Logger,
) *LessonService {
	return &LessonService{
		lessonRepo:      lessonRepo,
		courseRepo:      courseRepo,
		enrollmentRepo:  enrollmentRepo,
		fileRepo:        fileRepo,
		storage:         storage,
		notifier:        notifier,
		progressService: progressService,
		logger:          logger,
	}
}

// Create adds a lesson to a module and notifies enrolled students when
// the course is published
func (s *LessonService) Create(ctx context.Context, moduleID int64, req *dto.CreateLessonRequest) (*models.Lesson, error) {
	module, err := s.courseRepo.GetModuleByID(ctx, moduleID)
	if err != nil {
		return nil, err
	}

	lesson := &models.Lesson{
		ModuleID: moduleID,
		Title:    req.Title,
		Type:     req.Type,
		Content:  req.Content,
		Position: req.Position,
	}
	id, err := s.lessonRepo.Create(ctx, lesson)
	if err != nil {
		return nil, err
	}
	lesson.ID = id

	s.fanOutNewLesson(ctx, module.CourseID, lesson)
	return lesson, nil
}

// fanOutNewLesson notifies every approved student of a published course
// about new content. Best effort: a failed notification is logged, the
// lesson stays created.
func (s *LessonService) fanOutNewLesson(ctx context.Context, courseID int64, lesson *models.Lesson) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil || !course.IsPublished {
		return
	}

	userIDs, err := s.enrollmentRepo.GetApprovedUserIDsByCourse(ctx, courseID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("courseID", courseID).Msg("Failed to list students for new-lesson fan-out")
		return
	}

	actionURL := fmt.Sprintf("/courses/%s/lessons/%d", course.Slug, lesson.ID)
	for _, userID := range userIDs {
		n := &models.Notification{
			UserID:    userID,
			Type:      models.NotificationNewLesson,
			Title:     "Nova aula disponível",
			Message:   fmt.Sprintf("A aula %s foi adicionada ao curso %s.", lesson.Title, course.Title),
			ActionURL: &actionURL,
		}
		if err := s.notifier.Notify(ctx, n); err != nil {
			s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to deliver new-lesson notification")
		}
	}
}

// GetByID retrieves a lesson
func (s *LessonService) GetByID(ctx context.Context, lessonID int64) (*models.Lesson, error) {
	return s.lessonRepo.GetByID(ctx, lessonID)
}

// Update replaces the editable fields of a lesson
func (s *LessonService) Update(ctx context.Context, lessonID int64, req *dto.UpdateLessonRequest) (*models.Lesson, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	lesson.Title = req.Title
	lesson.Content = req.Content
	lesson.Position = req.Position

	if err := s.lessonRepo.Update(ctx, lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// Delete removes a lesson
func (s *LessonService) Delete(ctx context.Context, lessonID int64) error {
	return s.lessonRepo.Delete(ctx, lessonID)
}

// UploadVideo stores a lesson video and links it to the lesson
func (s *LessonService) UploadVideo(ctx context.Context, lessonID, uploaderID int64, fileHeader *multipart.FileHeader) (*models.File, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if lesson.Type != models.LessonTypeVideo {
		return nil, apperrors.NewBadRequestError("only video lessons accept a video upload")
	}

	fileURL, err := s.storage.SaveFileWithPath(fileHeader, "lessons")
	if err != nil {
		return nil, err
	}

	file := &models.File{
		FileName:   filepath.Base(fileHeader.Filename),
		FilePath:   s.storage.GetFullPath(fileURL),
		FileURL:    fileURL,
		FileSize:   fileHeader.Size,
		MimeType:   fileHeader.Header.Get("Content-Type"),
		UploadedBy: uploaderID,
	}
	fileID, err := s.fileRepo.Create(ctx, file)
	if err != nil {
		if delErr := s.storage.DeleteFile(fileURL); delErr != nil {
			s.logger.Warn().Err(delErr).Str("fileURL", fileURL).Msg("Failed to remove orphaned lesson video")
		}
		return nil, err
	}
	file.ID = fileID

	lesson.VideoFileID = &fileID
	if err := s.lessonRepo.Update(ctx, lesson); err != nil {
		return nil, err
	}
	return file, nil
}

// --- Quizzes ---

// AddQuestion adds a question to a quiz lesson. Objective questions
// must carry at least one correct option.
func (s *LessonService) AddQuestion(ctx context.Context, lessonID int64, req *dto.CreateQuestionRequest) (*models.Question, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if !lesson.Type.IsQuiz() {
		return nil, apperrors.NewBadRequestError("lesson is not a quiz")
	}

	question := &models.Question{
		LessonID:  lessonID,
		Statement: req.Statement,
		Position:  req.Position,
	}
	if lesson.Type == models.LessonTypeSubjectiveQuiz {
		answerType := models.AnswerTypeText
		if req.AnswerType != nil {
			answerType = models.AnswerType(*req.AnswerType)
		}
		if !answerType.IsValid() {
			return nil, apperrors.NewBadRequestError("invalid answer type")
		}
		question.AnswerType = &answerType
	}
	if lesson.Type == models.LessonTypeObjectiveQuiz {
		hasCorrect := false
		for _, opt := range req.Options {
			question.Options = append(question.Options, &models.QuestionOption{
				Text:      opt.Text,
				IsCorrect: opt.IsCorrect,
				Position:  opt.Position,
			})
			if opt.IsCorrect {
				hasCorrect = true
			}
		}
		if !hasCorrect {
			return nil, apperrors.ErrNoCorrectOption
		}
	}

	id, err := s.lessonRepo.CreateQuestion(ctx, question)
	if err != nil {
		return nil, err
	}
	question.ID = id
	return question, nil
}

// GetQuestions retrieves a quiz lesson's questions
func (s *LessonService) GetQuestions(ctx context.Context, lessonID int64) ([]*models.Question, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if !lesson.Type.IsQuiz() {
		return nil, apperrors.NewBadRequestError("lesson is not a quiz")
	}
	return s.lessonRepo.GetQuestionsByLesson(ctx, lessonID)
}

// DeleteQuestion removes a quiz question with its options
func (s *LessonService) DeleteQuestion(ctx context.Context, questionID int64) error {
	return s.lessonRepo.DeleteQuestion(ctx, questionID)
}

// SubmitQuiz grades an objective quiz submission and records the lesson
// completion with the score through the lifecycle chain
func (s *LessonService) SubmitQuiz(ctx context.Context, userID, lessonID int64, req *dto.SubmitQuizRequest) (*dto.QuizResultResponse, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if lesson.Type != models.LessonTypeObjectiveQuiz {
		return nil, apperrors.NewBadRequestError("lesson is not an objective quiz")
	}

	questions, err := s.lessonRepo.GetQuestionsByLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, apperrors.NewBadRequestError("quiz has no questions")
	}

	chosen := make(map[int64]int64, len(req.Answers))
	for _, answer := range req.Answers {
		chosen[answer.QuestionID] = answer.OptionID
	}

	correct := 0
	for _, question := range questions {
		optionID, answered := chosen[question.ID]
		if !answered {
			continue
		}
		for _, opt := range question.Options {
			if opt.ID == optionID && opt.IsCorrect {
				correct++
				break
			}
		}
	}

	score := CompletionPercent(correct, len(questions))
	completion, err := s.progressService.CompleteLesson(ctx, userID, lessonID, &score)
	if err != nil {
		return nil, err
	}

	return &dto.QuizResultResponse{
		Score:          score,
		CorrectAnswers: correct,
		TotalQuestions: len(questions),
		LessonComplete: completion != nil,
	}, nil
}

// SubmitSubjective stores a student's answers to a subjective quiz and
// records the lesson completion. Subjective answers are not graded, so
// the completion carries no score.
func (s *LessonService) SubmitSubjective(ctx context.Context, userID, lessonID int64, req *dto.SubmitSubjectiveRequest) (*dto.CompleteLessonResponse, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if lesson.Type != models.LessonTypeSubjectiveQuiz {
		return nil, apperrors.NewBadRequestError("lesson is not a subjective quiz")
	}

	questions, err := s.lessonRepo.GetQuestionsByLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, apperrors.NewBadRequestError("quiz has no questions")
	}
	byID := make(map[int64]*models.Question, len(questions))
	for _, question := range questions {
		byID[question.ID] = question
	}

	courseID, err := s.lessonRepo.GetCourseIDByLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	enrollment, err := s.enrollmentRepo.GetByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if enrollment.Status != models.EnrollmentApproved {
		return nil, apperrors.ErrEnrollmentNotApproved
	}

	for _, answer := range req.Answers {
		question, ok := byID[answer.QuestionID]
		if !ok {
			return nil, apperrors.NewBadRequestError("question does not belong to this lesson")
		}
		answerType := models.AnswerTypeText
		if question.AnswerType != nil {
			answerType = *question.AnswerType
		}
		switch answerType {
		case models.AnswerTypeText:
			if answer.Text == nil || *answer.Text == "" {
				return nil, apperrors.NewBadRequestError("question requires a text answer")
			}
		case models.AnswerTypeFile:
			if answer.FileID == nil {
				return nil, apperrors.NewBadRequestError("question requires a file answer")
			}
		}
		record := &models.SubjectiveAnswer{
			QuestionID:   answer.QuestionID,
			EnrollmentID: enrollment.ID,
			AnswerText:   answer.Text,
			FileID:       answer.FileID,
		}
		if _, err := s.lessonRepo.UpsertSubjectiveAnswer(ctx, record); err != nil {
			return nil, err
		}
	}

	return s.progressService.CompleteLesson(ctx, userID, lessonID, nil)
}
