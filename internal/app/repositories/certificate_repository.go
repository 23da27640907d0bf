package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/brunofarias/jornada-lms/internal/app/models"
	"github.com/brunofarias/jornada-lms/internal/db"
	"github.com/brunofarias/jornada-lms/internal/pkg/apperrors"
	"github.com/brunofarias/jornada-lms/internal/pkg/logger"
)

// CertificateRepository handles database operations for certificates
type CertificateRepository struct {
	db db.Querier
}

// NewCertificateRepository creates a new CertificateRepository
func NewCertificateRepository(q db.Querier) *CertificateRepository {
	return &CertificateRepository{db: q}
}

// Insert issues a certificate. The unique (user_id, course_id)
// constraint plus ON CONFLICT DO NOTHING makes issuance idempotent:
// the second and later attempts insert nothing and report issued=false.
func (r *CertificateRepository) Insert(ctx context.Context, userID, courseID int64, code string) (issued bool, err error) {
	query := `
		INSERT INTO certificates (user_id, course_id, code, issued_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, course_id) DO NOTHING`

	cmdTag, err := r.db.Exec(ctx, query, userID, courseID, code)
	if err != nil {
		logger.Error().Err(err).
			Int64("userID", userID).
			Int64("courseID", courseID).
			Msg("Error issuing certificate")
		return false, fmt.Errorf("error issuing certificate: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// GetByUserAndCourse retrieves a user's certificate for a course
func (r *CertificateRepository) GetByUserAndCourse(ctx context.Context, userID, courseID int64) (*models.Certificate, error) {
	var c models.Certificate
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, course_id, code, file_id, issued_at
		FROM certificates WHERE user_id = $1 AND course_id = $2`,
		userID, courseID,
	).Scan(&c.ID, &c.UserID, &c.CourseID, &c.Code, &c.FileID, &c.IssuedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCertificateNotFound
		}
		return nil, fmt.Errorf("error retrieving certificate: %w", err)
	}
	return &c, nil
}

// GetByID retrieves a certificate with its course and artifact data
func (r *CertificateRepository) GetByID(ctx context.Context, id int64) (*models.Certificate, error) {
	var c models.Certificate
	var courseTitle string
	var workloadHours int
	var fileURL *string
	err := r.db.QueryRow(ctx, `
		SELECT ct.id, ct.user_id, ct.course_id, ct.code, ct.file_id, ct.issued_at,
		       co.title, co.workload_hours, f.file_url
		FROM certificates ct
		JOIN courses co ON co.id = ct.course_id
		LEFT JOIN files f ON f.id = ct.file_id
		WHERE ct.id = $1`, id,
	).Scan(&c.ID, &c.UserID, &c.CourseID, &c.Code, &c.FileID, &c.IssuedAt,
		&courseTitle, &workloadHours, &fileURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCertificateNotFound
		}
		logger.Error().Err(err).Int64("certificateID", id).Msg("Error retrieving certificate")
		return nil, fmt.Errorf("error retrieving certificate: %w", err)
	}
	c.Course = &models.Course{ID: c.CourseID, Title: courseTitle, WorkloadHours: workloadHours}
	if c.FileID != nil && fileURL != nil {
		c.File = &models.File{ID: *c.FileID, FileURL: *fileURL}
	}
	return &c, nil
}

// AttachFile links a rendered artifact file to a certificate. The file
// reference is the only mutable part of an issued certificate.
func (r *CertificateRepository) AttachFile(ctx context.Context, certificateID, fileID int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE certificates SET file_id = $2 WHERE id = $1`, certificateID, fileID)
	if err != nil {
		logger.Error().Err(err).Int64("certificateID", certificateID).Msg("Error attaching certificate file")
		return fmt.Errorf("error attaching certificate file: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCertificateNotFound
	}
	return nil
}

// GetByCode retrieves a certificate by its public verification code,
// joined with the holder and course for the verification view
func (r *CertificateRepository) GetByCode(ctx context.Context, code string) (*models.Certificate, error) {
	var c models.Certificate
	var firstName, lastName, courseTitle string
	var workloadHours int
	err := r.db.QueryRow(ctx, `
		SELECT ct.id, ct.user_id, ct.course_id, ct.code, ct.issued_at,
		       u.first_name, u.last_name, co.title, co.workload_hours
		FROM certificates ct
		JOIN users u ON u.id = ct.user_id
		JOIN courses co ON co.id = ct.course_id
		WHERE ct.code = $1`, code,
	).Scan(&c.ID, &c.UserID, &c.CourseID, &c.Code, &c.IssuedAt,
		&firstName, &lastName, &courseTitle, &workloadHours)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCertificateNotFound
		}
		logger.Error().Err(err).Str("code", code).Msg("Error retrieving certificate by code")
		return nil, fmt.Errorf("error retrieving certificate: %w", err)
	}
	c.User = &models.User{ID: c.UserID, FirstName: firstName, LastName: lastName}
	c.Course = &models.Course{ID: c.CourseID, Title: courseTitle, WorkloadHours: workloadHours}
	return &c, nil
}

// GetAllByUser retrieves all certificates of a user with course data
func (r *CertificateRepository) GetAllByUser(ctx context.Context, userID int64) ([]*models.Certificate, error) {
	rows, err := r.db.Query(ctx, `
		SELECT ct.id, ct.user_id, ct.course_id, ct.code, ct.file_id, ct.issued_at,
		       co.title, co.workload_hours, f.file_url
		FROM certificates ct
		JOIN courses co ON co.id = ct.course_id
		LEFT JOIN files f ON f.id = ct.file_id
		WHERE ct.user_id = $1
		ORDER BY ct.issued_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing certificates: %w", err)
	}
	defer rows.Close()

	var certificates []*models.Certificate
	for rows.Next() {
		var c models.Certificate
		var courseTitle string
		var workloadHours int
		var fileURL *string
		err := rows.Scan(&c.ID, &c.UserID, &c.CourseID, &c.Code, &c.FileID, &c.IssuedAt,
			&courseTitle, &workloadHours, &fileURL)
		if err != nil {
			return nil, fmt.Errorf("error scanning certificate row: %w", err)
		}
		c.Course = &models.Course{ID: c.CourseID, Title: courseTitle, WorkloadHours: workloadHours}
		if c.FileID != nil && fileURL != nil {
			c.File = &models.File{ID: *c.FileID, FileURL: *fileURL}
		}
		certificates = append(certificates, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating certificate rows: %w", err)
	}
	return certificates, nil
}
