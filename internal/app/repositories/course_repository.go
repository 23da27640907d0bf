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

// CourseRepository handles database operations for courses and their modules
type CourseRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(q db.Querier) *CourseRepository {
	return &CourseRepository{
		db: q,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const courseColumns = `id, title, description, slug, cover_file_id, instructor_id, is_published, requires_approval, certificate_text, workload_hours, created_at, updated_at`

func scanCourse(row pgx.Row) (*models.Course, error) {
	var c models.Course
	err := row.Scan(
		&c.ID, &c.Title, &c.Description, &c.Slug, &c.CoverFileID, &c.InstructorID,
		&c.IsPublished, &c.RequiresApproval, &c.CertificateText, &c.WorkloadHours,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new course and returns its ID
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) (int64, error) {
	query := `
		INSERT INTO courses (title, description, slug, cover_file_id, instructor_id, is_published, requires_approval, certificate_text, workload_hours, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query,
		course.Title, course.Description, course.Slug, course.CoverFileID, course.InstructorID,
		course.IsPublished, course.RequiresApproval, course.CertificateText, course.WorkloadHours,
	).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "courses_slug_key") {
			return 0, apperrors.ErrResourceAlreadyExists
		}
		logger.Error().Err(err).Str("slug", course.Slug).Msg("Error creating course")
		return 0, fmt.Errorf("error creating course: %w", err)
	}
	return id, nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`
	course, err := scanCourse(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error retrieving course")
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return course, nil
}

// GetBySlug retrieves a course by its slug
func (r *CourseRepository) GetBySlug(ctx context.Context, slug string) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE slug = $1`
	course, err := scanCourse(r.db.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return course, nil
}

// Update replaces the editable fields of a course
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	query := `
		UPDATE courses
		SET title = $1, description = $2, cover_file_id = $3, instructor_id = $4,
		    requires_approval = $5, certificate_text = $6, workload_hours = $7, updated_at = NOW()
		WHERE id = $8`

	cmdTag, err := r.db.Exec(ctx, query,
		course.Title, course.Description, course.CoverFileID, course.InstructorID,
		course.RequiresApproval, course.CertificateText, course.WorkloadHours, course.ID,
	)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", course.ID).Msg("Error updating course")
		return fmt.Errorf("error updating course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// SetPublished toggles catalog visibility
func (r *CourseRepository) SetPublished(ctx context.Context, courseID int64, published bool) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE courses SET is_published = $1, updated_at = NOW() WHERE id = $2`,
		published, courseID)
	if err != nil {
		return fmt.Errorf("error updating course visibility: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// Delete removes a course. Fails when enrollments reference it.
func (r *CourseRepository) Delete(ctx context.Context, courseID int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, courseID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseHasEnrollments
		}
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error deleting course")
		return fmt.Errorf("error deleting course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// HasEnrollments reports whether any enrollment references the course
func (r *CourseRepository) HasEnrollments(ctx context.Context, courseID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM enrollments WHERE course_id = $1)`, courseID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking course enrollments: %w", err)
	}
	return exists, nil
}

// CountLessons returns the number of lessons across all modules of a course
func (r *CourseRepository) CountLessons(ctx context.Context, courseID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM lessons l
		JOIN course_modules m ON m.id = l.module_id
		WHERE m.course_id = $1`, courseID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting course lessons: %w", err)
	}
	return count, nil
}

// GetAll retrieves courses with filtering and pagination
func (r *CourseRepository) GetAll(ctx context.Context, instructorID *int64, search *string, published *bool, page, pageSize int) ([]*models.Course, int64, error) {
	builder := r.sb.Select(courseColumns, "COUNT(*) OVER() AS total_count").From("courses")
	if instructorID != nil {
		builder = builder.Where(squirrel.Eq{"instructor_id": *instructorID})
	}
	if search != nil && *search != "" {
		pattern := "%" + *search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"title": pattern},
			squirrel.ILike{"description": pattern},
		})
	}
	if published != nil {
		builder = builder.Where(squirrel.Eq{"is_published": *published})
	}
	builder = builder.OrderBy("created_at DESC").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize))

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing courses")
		return nil, 0, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	var total int64
	for rows.Next() {
		var c models.Course
		err := rows.Scan(
			&c.ID, &c.Title, &c.Description, &c.Slug, &c.CoverFileID, &c.InstructorID,
			&c.IsPublished, &c.RequiresApproval, &c.CertificateText, &c.WorkloadHours,
			&c.CreatedAt, &c.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating course rows: %w", err)
	}
	return courses, total, nil
}

// --- Modules ---

// CreateModule inserts a new module into a course
func (r *CourseRepository) CreateModule(ctx context.Context, module *models.CourseModule) (int64, error) {
	query := `
		INSERT INTO course_modules (course_id, title, description, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query,
		module.CourseID, module.Title, module.Description, module.Position,
	).Scan(&id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", module.CourseID).Msg("Error creating course module")
		return 0, fmt.Errorf("error creating module: %w", err)
	}
	return id, nil
}

// GetModuleByID retrieves a module by ID
func (r *CourseRepository) GetModuleByID(ctx context.Context, moduleID int64) (*models.CourseModule, error) {
	var m models.CourseModule
	err := r.db.QueryRow(ctx, `
		SELECT id, course_id, title, description, position, created_at, updated_at
		FROM course_modules WHERE id = $1`, moduleID,
	).Scan(&m.ID, &m.CourseID, &m.Title, &m.Description, &m.Position, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrModuleNotFound
		}
		return nil, fmt.Errorf("error retrieving module: %w", err)
	}
	return &m, nil
}

// GetModulesByCourse retrieves a course's modules ordered by position
func (r *CourseRepository) GetModulesByCourse(ctx context.Context, courseID int64) ([]*models.CourseModule, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, course_id, title, description, position, created_at, updated_at
		FROM course_modules WHERE course_id = $1
		ORDER BY position, id`, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing course modules: %w", err)
	}
	defer rows.Close()

	var modules []*models.CourseModule
	for rows.Next() {
		var m models.CourseModule
		err := rows.Scan(&m.ID, &m.CourseID, &m.Title, &m.Description, &m.Position, &m.CreatedAt, &m.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning module row: %w", err)
		}
		modules = append(modules, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating module rows: %w", err)
	}
	return modules, nil
}

// UpdateModule replaces the editable fields of a module
func (r *CourseRepository) UpdateModule(ctx context.Context, module *models.CourseModule) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE course_modules SET title = $1, description = $2, position = $3, updated_at = $4
		WHERE id = $5`,
		module.Title, module.Description, module.Position, time.Now(), module.ID)
	if err != nil {
		logger.Error().Err(err).Int64("moduleID", module.ID).Msg("Error updating course module")
		return fmt.Errorf("error updating module: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrModuleNotFound
	}
	return nil
}

// DeleteModule removes a module and its lessons (ON DELETE CASCADE)
func (r *CourseRepository) DeleteModule(ctx context.Context, moduleID int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM course_modules WHERE id = $1`, moduleID)
	if err != nil {
		logger.Error().Err(err).Int64("moduleID", moduleID).Msg("Error deleting course module")
		return fmt.Errorf("error deleting module: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrModuleNotFound
	}
	return nil
}
