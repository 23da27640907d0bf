package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/brunofarias/jornada-lms/internal/app/models"
	"github.com/brunofarias/jornada-lms/internal/db"
	"github.com/brunofarias/jornada-lms/internal/pkg/apperrors"
	"github.com/brunofarias/jornada-lms/internal/pkg/dberrors"
	"github.com/brunofarias/jornada-lms/internal/pkg/logger"
)

// LessonRepository handles database operations for lessons, questions and options
type LessonRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewLessonRepository creates a new LessonRepository
func NewLessonRepository(q db.Querier) *LessonRepository {
	return &LessonRepository{
		db: q,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const lessonColumns = `id, module_id, title, type, content, video_file_id, position, created_at, updated_at`

func scanLesson(row pgx.Row) (*models.Lesson, error) {
	var l models.Lesson
	err := row.Scan(
		&l.ID, &l.ModuleID, &l.Title, &l.Type, &l.Content, &l.VideoFileID,
		&l.Position, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create inserts a new lesson and returns its ID
func (r *LessonRepository) Create(ctx context.Context, lesson *models.Lesson) (int64, error) {
	query := `
		INSERT INTO lessons (module_id, title, type, content, video_file_id, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query,
		lesson.ModuleID, lesson.Title, lesson.Type, lesson.Content, lesson.VideoFileID, lesson.Position,
	).Scan(&id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrModuleNotFound
		}
		logger.Error().Err(err).Int64("moduleID", lesson.ModuleID).Msg("Error creating lesson")
		return 0, fmt.Errorf("error creating lesson: %w", err)
	}
	return id, nil
}

// GetByID retrieves a lesson by ID
func (r *LessonRepository) GetByID(ctx context.Context, id int64) (*models.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE id = $1`
	lesson, err := scanLesson(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLessonNotFound
		}
		logger.Error().Err(err).Int64("lessonID", id).Msg("Error retrieving lesson")
		return nil, fmt.Errorf("error retrieving lesson: %w", err)
	}
	return lesson, nil
}

// GetByModule retrieves a module's lessons ordered by position
func (r *LessonRepository) GetByModule(ctx context.Context, moduleID int64) ([]*models.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE module_id = $1 ORDER BY position, id`
	rows, err := r.db.Query(ctx, query, moduleID)
	if err != nil {
		return nil, fmt.Errorf("error listing lessons: %w", err)
	}
	defer rows.Close()

	var lessons []*models.Lesson
	for rows.Next() {
		var l models.Lesson
		err := rows.Scan(
			&l.ID, &l.ModuleID, &l.Title, &l.Type, &l.Content, &l.VideoFileID,
			&l.Position, &l.CreatedAt, &l.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning lesson row: %w", err)
		}
		lessons = append(lessons, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lesson rows: %w", err)
	}
	return lessons, nil
}

// GetCourseIDByLesson resolves the course a lesson belongs to
func (r *LessonRepository) GetCourseIDByLesson(ctx context.Context, lessonID int64) (int64, error) {
	var courseID int64
	err := r.db.QueryRow(ctx, `
		SELECT m.course_id
		FROM lessons l
		JOIN course_modules m ON m.id = l.module_id
		WHERE l.id = $1`, lessonID).Scan(&courseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrLessonNotFound
		}
		return 0, fmt.Errorf("error resolving lesson course: %w", err)
	}
	return courseID, nil
}

// Update replaces the editable fields of a lesson
func (r *LessonRepository) Update(ctx context.Context, lesson *models.Lesson) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE lessons SET title = $1, content = $2, video_file_id = $3, position = $4, updated_at = NOW()
		WHERE id = $5`,
		lesson.Title, lesson.Content, lesson.VideoFileID, lesson.Position, lesson.ID)
	if err != nil {
		logger.Error().Err(err).Int64("lessonID", lesson.ID).Msg("Error updating lesson")
		return fmt.Errorf("error updating lesson: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLessonNotFound
	}
	return nil
}

// Delete removes a lesson and its questions (ON DELETE CASCADE)
func (r *LessonRepository) Delete(ctx context.Context, lessonID int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM lessons WHERE id = $1`, lessonID)
	if err != nil {
		logger.Error().Err(err).Int64("lessonID", lessonID).Msg("Error deleting lesson")
		return fmt.Errorf("error deleting lesson: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLessonNotFound
	}
	return nil
}

// --- Questions ---

// CreateQuestion inserts a quiz question with its options in one call
func (r *LessonRepository) CreateQuestion(ctx context.Context, question *models.Question) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO questions (lesson_id, statement, answer_type, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id`,
		question.LessonID, question.Statement, question.AnswerType, question.Position,
	).Scan(&id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrLessonNotFound
		}
		logger.Error().Err(err).Int64("lessonID", question.LessonID).Msg("Error creating question")
		return 0, fmt.Errorf("error creating question: %w", err)
	}

	for _, opt := range question.Options {
		_, err := r.db.Exec(ctx, `
			INSERT INTO question_options (question_id, text, is_correct, position)
			VALUES ($1, $2, $3, $4)`,
			id, opt.Text, opt.IsCorrect, opt.Position)
		if err != nil {
			return 0, fmt.Errorf("error creating question option: %w", err)
		}
	}
	return id, nil
}

// GetQuestionsByLesson retrieves a quiz lesson's questions with options
func (r *LessonRepository) GetQuestionsByLesson(ctx context.Context, lessonID int64) ([]*models.Question, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, lesson_id, statement, answer_type, position, created_at, updated_at
		FROM questions WHERE lesson_id = $1
		ORDER BY position, id`, lessonID)
	if err != nil {
		return nil, fmt.Errorf("error listing questions: %w", err)
	}
	defer rows.Close()

	var questions []*models.Question
	for rows.Next() {
		var q models.Question
		err := rows.Scan(&q.ID, &q.LessonID, &q.Statement, &q.AnswerType, &q.Position, &q.CreatedAt, &q.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning question row: %w", err)
		}
		questions = append(questions, &q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating question rows: %w", err)
	}

	for _, q := range questions {
		options, err := r.getOptions(ctx, q.ID)
		if err != nil {
			return nil, err
		}
		q.Options = options
	}
	return questions, nil
}

func (r *LessonRepository) getOptions(ctx context.Context, questionID int64) ([]*models.QuestionOption, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, question_id, text, is_correct, position
		FROM question_options WHERE question_id = $1
		ORDER BY position, id`, questionID)
	if err != nil {
		return nil, fmt.Errorf("error listing question options: %w", err)
	}
	defer rows.Close()

	var options []*models.QuestionOption
	for rows.Next() {
		var o models.QuestionOption
		err := rows.Scan(&o.ID, &o.QuestionID, &o.Text, &o.IsCorrect, &o.Position)
		if err != nil {
			return nil, fmt.Errorf("error scanning option row: %w", err)
		}
		options = append(options, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating option rows: %w", err)
	}
	return options, nil
}

// UpsertSubjectiveAnswer stores a member's answer to a subjective question.
// Resubmitting replaces the previous answer for the same enrollment.
func (r *LessonRepository) UpsertSubjectiveAnswer(ctx context.Context, answer *models.SubjectiveAnswer) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO subjective_answers (question_id, enrollment_id, answer_text, file_id, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (question_id, enrollment_id)
		DO UPDATE SET answer_text = EXCLUDED.answer_text, file_id = EXCLUDED.file_id
		RETURNING id`,
		answer.QuestionID, answer.EnrollmentID, answer.AnswerText, answer.FileID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error saving subjective answer: %w", err)
	}
	return id, nil
}

// DeleteQuestion removes a question and its options (ON DELETE CASCADE)
func (r *LessonRepository) DeleteQuestion(ctx context.Context, questionID int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM questions WHERE id = $1`, questionID)
	if err != nil {
		return fmt.Errorf("error deleting question: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrQuestionNotFound
	}
	return nil
}
