package repositories

import (
	"context"
	"fmt"

	"github.com/brunofarias/jornada-lms/internal/app/models"
	"github.com/brunofarias/jornada-lms/internal/db"
	"github.com/brunofarias/jornada-lms/internal/pkg/logger"
)

// ProgressRepository handles database operations for lesson progress records
type ProgressRepository struct {
	db db.Querier
}

// NewProgressRepository creates a new ProgressRepository
func NewProgressRepository(q db.Querier) *ProgressRepository {
	return &ProgressRepository{db: q}
}

// Upsert records a lesson completion. The unique (enrollment_id,
// lesson_id) constraint makes the call idempotent: a repeat completion
// inserts nothing and returns inserted=false, leaving the original
// completion timestamp untouched.
func (r *ProgressRepository) Upsert(ctx context.Context, enrollmentID, lessonID int64, score *int) (inserted bool, err error) {
	query := `
		INSERT INTO lesson_progress (enrollment_id, lesson_id, score, completed_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (enrollment_id, lesson_id) DO NOTHING`

	cmdTag, err := r.db.Exec(ctx, query, enrollmentID, lessonID, score)
	if err != nil {
		logger.Error().Err(err).
			Int64("enrollmentID", enrollmentID).
			Int64("lessonID", lessonID).
			Msg("Error recording lesson completion")
		return false, fmt.Errorf("error recording lesson completion: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// CountByEnrollment counts the distinct lessons completed under an
// enrollment. The aggregator recomputes from this table instead of
// incrementing a counter, so concurrent completions cannot lose updates.
func (r *ProgressRepository) CountByEnrollment(ctx context.Context, enrollmentID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM lesson_progress WHERE enrollment_id = $1`, enrollmentID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting completed lessons: %w", err)
	}
	return count, nil
}

// GetByEnrollment retrieves an enrollment's progress records with lesson titles
func (r *ProgressRepository) GetByEnrollment(ctx context.Context, enrollmentID int64) ([]*models.LessonProgress, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.enrollment_id, p.lesson_id, p.score, p.completed_at, l.title
		FROM lesson_progress p
		JOIN lessons l ON l.id = p.lesson_id
		WHERE p.enrollment_id = $1
		ORDER BY p.completed_at`, enrollmentID)
	if err != nil {
		return nil, fmt.Errorf("error listing lesson progress: %w", err)
	}
	defer rows.Close()

	var records []*models.LessonProgress
	for rows.Next() {
		var p models.LessonProgress
		var lessonTitle string
		err := rows.Scan(&p.ID, &p.EnrollmentID, &p.LessonID, &p.Score, &p.CompletedAt, &lessonTitle)
		if err != nil {
			return nil, fmt.Errorf("error scanning progress row: %w", err)
		}
		p.Lesson = &models.Lesson{ID: p.LessonID, Title: lessonTitle}
		records = append(records, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating progress rows: %w", err)
	}
	return records, nil
}

// IsLessonCompleted reports whether a lesson was already completed under an enrollment
func (r *ProgressRepository) IsLessonCompleted(ctx context.Context, enrollmentID, lessonID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM lesson_progress WHERE enrollment_id = $1 AND lesson_id = $2)`,
		enrollmentID, lessonID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking lesson completion: %w", err)
	}
	return exists, nil
}
