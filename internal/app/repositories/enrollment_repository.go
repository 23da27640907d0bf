package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/brunofarias/jornada-lms/internal/app/models"
	"github.com/brunofarias/jornada-lms/internal/db"
	"github.com/brunofarias/jornada-lms/internal/pkg/apperrors"
	"github.com/brunofarias/jornada-lms/internal/pkg/dberrors"
	"github.com/brunofarias/jornada-lms/internal/pkg/logger"
)

// EnrollmentRepository handles database operations for enrollments
type EnrollmentRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(q db.Querier) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: q,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const enrollmentColumns = `id, user_id, course_id, status, completed_lessons, total_lessons, progress_percent, decided_by, decision_reason, decided_at, completed_at, created_at, updated_at`

func scanEnrollment(row pgx.Row) (*models.Enrollment, error) {
	var e models.Enrollment
	err := row.Scan(
		&e.ID, &e.UserID, &e.CourseID, &e.Status,
		&e.CompletedLessons, &e.TotalLessons, &e.ProgressPercent,
		&e.DecidedBy, &e.DecisionReason, &e.DecidedAt, &e.CompletedAt,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a new enrollment and returns its ID.
// The unique (user_id, course_id) constraint rejects double enrollment.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) (int64, error) {
	query := `
		INSERT INTO enrollments (user_id, course_id, status, total_lessons, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query,
		enrollment.UserID, enrollment.CourseID, enrollment.Status, enrollment.TotalLessons,
	).Scan(&id)
	if err != nil {
		// The only unique constraint on this insert is (user_id, course_id)
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrAlreadyEnrolled
		}
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).
			Int64("userID", enrollment.UserID).
			Int64("courseID", enrollment.CourseID).
			Msg("Error creating enrollment")
		return 0, fmt.Errorf("error creating enrollment: %w", err)
	}
	return id, nil
}

// GetByID retrieves an enrollment by ID
func (r *EnrollmentRepository) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE id = $1`
	enrollment, err := scanEnrollment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		logger.Error().Err(err).Int64("enrollmentID", id).Msg("Error retrieving enrollment")
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}
	return enrollment, nil
}

// GetByIDForUpdate retrieves an enrollment with a row lock. Must run
// inside a transaction; concurrent deciders and progress writers
// serialize on this lock.
func (r *EnrollmentRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE id = $1 FOR UPDATE`
	enrollment, err := scanEnrollment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error locking enrollment: %w", err)
	}
	return enrollment, nil
}

// GetByUserAndCourse retrieves a user's enrollment in a course
func (r *EnrollmentRepository) GetByUserAndCourse(ctx context.Context, userID, courseID int64) (*models.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE user_id = $1 AND course_id = $2`
	enrollment, err := scanEnrollment(r.db.QueryRow(ctx, query, userID, courseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}
	return enrollment, nil
}

// UpdateDecision records an approval or rejection. The status guard in
// the WHERE clause makes the transition one-way: a decided row is
// never written again, regardless of interleaving.
func (r *EnrollmentRepository) UpdateDecision(ctx context.Context, enrollmentID int64, status models.EnrollmentStatus, decidedBy int64, reason *string) error {
	query := `
		UPDATE enrollments
		SET status = $1, decided_by = $2, decision_reason = $3, decided_at = NOW(), updated_at = NOW()
		WHERE id = $4 AND status = $5`

	cmdTag, err := r.db.Exec(ctx, query, status, decidedBy, reason, enrollmentID, models.EnrollmentPending)
	if err != nil {
		logger.Error().Err(err).Int64("enrollmentID", enrollmentID).Msg("Error recording enrollment decision")
		return fmt.Errorf("error recording decision: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Either the row is gone or it was already decided
		var status models.EnrollmentStatus
		err := r.db.QueryRow(ctx, `SELECT status FROM enrollments WHERE id = $1`, enrollmentID).Scan(&status)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrEnrollmentNotFound
		}
		return apperrors.ErrEnrollmentAlreadyDecided
	}
	return nil
}

// UpdateProgress writes the aggregated progress counters. completedAt
// is only set when the row does not carry one yet, keeping the first
// completion timestamp stable across re-completions.
func (r *EnrollmentRepository) UpdateProgress(ctx context.Context, enrollmentID int64, completedLessons, totalLessons, progressPercent int, completedAt *time.Time) error {
	query := `
		UPDATE enrollments
		SET completed_lessons = $1, total_lessons = $2, progress_percent = $3,
		    completed_at = COALESCE(completed_at, $4), updated_at = NOW()
		WHERE id = $5`

	cmdTag, err := r.db.Exec(ctx, query, completedLessons, totalLessons, progressPercent, completedAt, enrollmentID)
	if err != nil {
		logger.Error().Err(err).Int64("enrollmentID", enrollmentID).Msg("Error updating enrollment progress")
		return fmt.Errorf("error updating progress: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}
	return nil
}

// GetAll retrieves enrollments with filtering and pagination
func (r *EnrollmentRepository) GetAll(ctx context.Context, status *string, courseID, userID *int64, page, pageSize int) ([]*models.Enrollment, int64, error) {
	builder := r.sb.Select(
		"e.id", "e.user_id", "e.course_id", "e.status",
		"e.completed_lessons", "e.total_lessons", "e.progress_percent",
		"e.decided_by", "e.decision_reason", "e.decided_at", "e.completed_at",
		"e.created_at", "e.updated_at",
		"u.first_name", "u.last_name", "c.title",
		"COUNT(*) OVER() AS total_count",
	).
		From("enrollments e").
		Join("users u ON u.id = e.user_id").
		Join("courses c ON c.id = e.course_id")

	if status != nil && *status != "" {
		builder = builder.Where(squirrel.Eq{"e.status": *status})
	}
	if courseID != nil {
		builder = builder.Where(squirrel.Eq{"e.course_id": *courseID})
	}
	if userID != nil {
		builder = builder.Where(squirrel.Eq{"e.user_id": *userID})
	}
	builder = builder.OrderBy("e.created_at DESC").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize))

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list enrollments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing enrollments")
		return nil, 0, fmt.Errorf("error listing enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	var total int64
	for rows.Next() {
		var e models.Enrollment
		var firstName, lastName, courseTitle string
		err := rows.Scan(
			&e.ID, &e.UserID, &e.CourseID, &e.Status,
			&e.CompletedLessons, &e.TotalLessons, &e.ProgressPercent,
			&e.DecidedBy, &e.DecisionReason, &e.DecidedAt, &e.CompletedAt,
			&e.CreatedAt, &e.UpdatedAt,
			&firstName, &lastName, &courseTitle,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning enrollment row: %w", err)
		}
		e.User = &models.User{ID: e.UserID, FirstName: firstName, LastName: lastName}
		e.Course = &models.Course{ID: e.CourseID, Title: courseTitle}
		enrollments = append(enrollments, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating enrollment rows: %w", err)
	}
	return enrollments, total, nil
}

// GetApprovedUserIDsByCourse returns the user IDs with an approved
// enrollment in a course. Used to fan out new-lesson notifications.
func (r *EnrollmentRepository) GetApprovedUserIDsByCourse(ctx context.Context, courseID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id FROM enrollments WHERE course_id = $1 AND status = $2`,
		courseID, models.EnrollmentApproved)
	if err != nil {
		return nil, fmt.Errorf("error listing approved enrollments: %w", err)
	}
	defer rows.Close()

	var userIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning user ID: %w", err)
		}
		userIDs = append(userIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user ID rows: %w", err)
	}
	return userIDs, nil
}

// GetPendingOlderThan returns pending enrollments requested before the
// cutoff, joined with user and course data for the reminder job.
func (r *EnrollmentRepository) GetPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*models.Enrollment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT e.id, e.user_id, e.course_id, e.created_at, u.first_name, u.last_name, c.title
		FROM enrollments e
		JOIN users u ON u.id = e.user_id
		JOIN courses c ON c.id = e.course_id
		WHERE e.status = $1 AND e.created_at < $2
		ORDER BY e.created_at`, models.EnrollmentPending, cutoff)
	if err != nil {
		return nil, fmt.Errorf("error listing stale pending enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		var e models.Enrollment
		var firstName, lastName, courseTitle string
		err := rows.Scan(&e.ID, &e.UserID, &e.CourseID, &e.CreatedAt, &firstName, &lastName, &courseTitle)
		if err != nil {
			return nil, fmt.Errorf("error scanning pending enrollment row: %w", err)
		}
		e.Status = models.EnrollmentPending
		e.User = &models.User{ID: e.UserID, FirstName: firstName, LastName: lastName}
		e.Course = &models.Course{ID: e.CourseID, Title: courseTitle}
		enrollments = append(enrollments, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pending enrollment rows: %w", err)
	}
	return enrollments, nil
}
