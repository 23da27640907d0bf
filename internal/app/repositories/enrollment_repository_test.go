package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/brunofarias/jornada-lms/internal/app/models"
	"github.com/brunofarias/jornada-lms/internal/pkg/apperrors"
)

// errQuerier fails every operation with a fixed error, so repository
// error mapping can be exercised without a database.
type errQuerier struct {
	err error
}

func (q errQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, q.err
}

func (q errQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, q.err
}

func (q errQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return errRow{err: q.err}
}

type errRow struct {
	err error
}

func (r errRow) Scan(dest ...any) error {
	return r.err
}

// The unique constraint raised by Postgres carries the name from the
// migration; the mapping must not depend on spelling it out.
func uniqueViolation(constraint string) *pgconn.PgError {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func TestEnrollmentCreateMapsUniqueViolation(t *testing.T) {
	repo := NewEnrollmentRepository(errQuerier{err: uniqueViolation("enrollments_user_course_key")})

	_, err := repo.Create(context.Background(), &models.Enrollment{
		UserID: 5, CourseID: 1, Status: models.EnrollmentPending,
	})
	if !errors.Is(err, apperrors.ErrAlreadyEnrolled) {
		t.Fatalf("got %v, want ErrAlreadyEnrolled", err)
	}
}

func TestEnrollmentCreateMapsForeignKeyViolation(t *testing.T) {
	repo := NewEnrollmentRepository(errQuerier{err: &pgconn.PgError{Code: "23503"}})

	_, err := repo.Create(context.Background(), &models.Enrollment{
		UserID: 5, CourseID: 999, Status: models.EnrollmentPending,
	})
	if !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("got %v, want ErrCourseNotFound", err)
	}
}

func TestReviewCreateMapsUniqueViolation(t *testing.T) {
	repo := NewReviewRepository(errQuerier{err: uniqueViolation("reviews_user_course_key")})

	_, err := repo.Create(context.Background(), &models.Review{
		UserID: 5, CourseID: 1, Rating: 5,
	})
	if !errors.Is(err, apperrors.ErrReviewAlreadyExists) {
		t.Fatalf("got %v, want ErrReviewAlreadyExists", err)
	}
}
