package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/brunofarias/jornada-lms/internal/app/models"
	"github.com/brunofarias/jornada-lms/internal/db"
	"github.com/brunofarias/jornada-lms/internal/pkg/apperrors"
	"github.com/brunofarias/jornada-lms/internal/pkg/dberrors"
	"github.com/brunofarias/jornada-lms/internal/pkg/logger"
)

// ReviewRepository handles database operations for course reviews
type ReviewRepository struct {
	db db.Querier
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(q db.Querier) *ReviewRepository {
	return &ReviewRepository{db: q}
}

// Create inserts a course review. One review per user per course.
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) (int64, error) {
	query := `
		INSERT INTO reviews (user_id, course_id, rating, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query, review.UserID, review.CourseID, review.Rating, review.Comment).Scan(&id)
	if err != nil {
		// The only unique constraint on this insert is (user_id, course_id)
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrReviewAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", review.CourseID).Msg("Error creating review")
		return 0, fmt.Errorf("error creating review: %w", err)
	}
	return id, nil
}

// GetByID retrieves a review by ID
func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	var rv models.Review
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, course_id, rating, comment, created_at, updated_at
		FROM reviews WHERE id = $1`, id,
	).Scan(&rv.ID, &rv.UserID, &rv.CourseID, &rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrReviewNotFound
		}
		return nil, fmt.Errorf("error retrieving review: %w", err)
	}
	return &rv, nil
}

// GetAllByCourse retrieves a course's reviews with reviewer names,
// paginated, plus the course-wide average rating
func (r *ReviewRepository) GetAllByCourse(ctx context.Context, courseID int64, page, pageSize int) ([]*models.Review, int64, float64, error) {
	offset := (page - 1) * pageSize
	rows, err := r.db.Query(ctx, `
		SELECT rv.id, rv.user_id, rv.course_id, rv.rating, rv.comment, rv.created_at, rv.updated_at,
		       u.first_name, u.last_name,
		       COUNT(*) OVER() AS total_count,
		       AVG(rv.rating) OVER() AS average_rating
		FROM reviews rv
		JOIN users u ON u.id = rv.user_id
		WHERE rv.course_id = $1
		ORDER BY rv.created_at DESC
		LIMIT $2 OFFSET $3`, courseID, pageSize, offset)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error listing reviews")
		return nil, 0, 0, fmt.Errorf("error listing reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*models.Review
	var total int64
	var average float64
	for rows.Next() {
		var rv models.Review
		var firstName, lastName string
		err := rows.Scan(
			&rv.ID, &rv.UserID, &rv.CourseID, &rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt,
			&firstName, &lastName, &total, &average,
		)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("error scanning review row: %w", err)
		}
		rv.User = &models.User{ID: rv.UserID, FirstName: firstName, LastName: lastName}
		reviews = append(reviews, &rv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, fmt.Errorf("error iterating review rows: %w", err)
	}
	return reviews, total, average, nil
}

// Delete removes a review, scoped to its author
func (r *ReviewRepository) Delete(ctx context.Context, reviewID, userID int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM reviews WHERE id = $1 AND user_id = $2`, reviewID, userID)
	if err != nil {
		logger.Error().Err(err).Int64("reviewID", reviewID).Msg("Error deleting review")
		return fmt.Errorf("error deleting review: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrReviewNotFound
	}
	return nil
}
