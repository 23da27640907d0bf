package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/brunofarias/jornada-lms/internal/app/models"
	"github.com/brunofarias/jornada-lms/internal/app/models/dto"
	"github.com/brunofarias/jornada-lms/internal/pkg/apperrors"
	"github.com/brunofarias/jornada-lms/internal/pkg/email"
)

// ProgressService records lesson completions and drives the enrollment
// lifecycle chain: progress write, aggregation, certificate issuance and
// notification, all inside one transaction. Email and WebSocket delivery
// happen after commit and never affect the outcome.
type ProgressService struct {
	tx           TxRunner
	stores       *Stores      // pool-bound, for reads outside transactions
	txStores     StoreFactory // binds stores to a transaction
	emailService email.EmailService
	notifier     *NotificationService
	baseURL      string
	logger       zerolog.Logger
}

// NewProgressService creates a new ProgressService
func NewProgressService(
	tx TxRunner,
	stores *Stores,
	txStores StoreFactory,
	emailService email.EmailService,
	notifier *NotificationService,
	baseURL string,
	logger zerolog.Logger,
) *ProgressService {
	return &ProgressService{
		tx:           tx,
		stores:       stores,
		txStores:     txStores,
		emailService: emailService,
		notifier:     notifier,
		baseURL:      baseURL,
		logger:       logger,
	}
}

// CompletionPercent computes the rounded progress percentage. An empty
// course reports zero rather than dividing by zero.
func CompletionPercent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// CompleteLesson records that a user finished a lesson and runs the rest
// of the lifecycle chain. Completing an already-completed lesson is a
// no-op for the progress table but still reports the current state.
func (s *ProgressService) CompleteLesson(ctx context.Context, userID, lessonID int64, score *int) (*dto.CompleteLessonResponse, error) {
	var result dto.CompleteLessonResponse
	var certNotification *models.Notification
	var holder *models.User
	var courseTitle string

	err := s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		stores := s.txStores(tx)

		courseID, err := stores.Lessons.GetCourseIDByLesson(ctx, lessonID)
		if err != nil {
			return err
		}

		enrollment, err := stores.Enrollments.GetByUserAndCourse(ctx, userID, courseID)
		if err != nil {
			return err
		}
		if enrollment.Status != models.EnrollmentApproved {
			return apperrors.ErrEnrollmentNotApproved
		}

		// Serialize concurrent completions on the enrollment row
		enrollment, err = stores.Enrollments.GetByIDForUpdate(ctx, enrollment.ID)
		if err != nil {
			return err
		}

		inserted, err := stores.Progress.Upsert(ctx, enrollment.ID, lessonID, score)
		if err != nil {
			return err
		}
		result.AlreadyCompleted = !inserted

		// Recompute from the progress table; incrementing a counter
		// would lose updates under concurrency
		completed, err := stores.Progress.CountByEnrollment(ctx, enrollment.ID)
		if err != nil {
			return err
		}
		total, err := stores.Courses.CountLessons(ctx, courseID)
		if err != nil {
			return err
		}
		percent := CompletionPercent(completed, total)
		courseCompleted := total > 0 && completed >= total

		var completedAt *time.Time
		firstCompletion := courseCompleted && enrollment.CompletedAt == nil
		if firstCompletion {
			now := time.Now()
			completedAt = &now
		}

		if err := stores.Enrollments.UpdateProgress(ctx, enrollment.ID, completed, total, percent, completedAt); err != nil {
			return err
		}

		result.LessonID = lessonID
		result.CompletedLessons = completed
		result.TotalLessons = total
		result.ProgressPercent = percent
		result.CourseCompleted = courseCompleted

		if !firstCompletion {
			return nil
		}

		course, err := stores.Courses.GetByID(ctx, courseID)
		if err != nil {
			return err
		}
		courseTitle = course.Title

		// Courses without a certificate template complete without
		// issuing anything.
		if course.CertificateText == nil {
			return nil
		}

		// Issue the certificate. The unique constraint makes this
		// idempotent, so a racing completion issues at most one.
		code := uuid.New().String()
		issued, err := stores.Certificates.Insert(ctx, userID, courseID, code)
		if err != nil {
			return err
		}
		if !issued {
			cert, err := stores.Certificates.GetByUserAndCourse(ctx, userID, courseID)
			if err != nil {
				return err
			}
			code = cert.Code
		}
		result.CertificateCode = &code

		holder, err = stores.Users.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		if issued {
			actionURL := fmt.Sprintf("/certificates/%s", code)
			certNotification = &models.Notification{
				UserID:    userID,
				Type:      models.NotificationCertificateReady,
				Title:     "Certificado disponível",
				Message:   fmt.Sprintf("Parabéns! Você concluiu o curso %s e seu certificado já está disponível.", courseTitle),
				ActionURL: &actionURL,
			}
			id, err := stores.Notifications.Create(ctx, certNotification)
			if err != nil {
				return err
			}
			certNotification.ID = id
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Post-commit delivery, best effort
	if certNotification != nil {
		s.notifier.PushStored(certNotification)
		certificateURL := fmt.Sprintf("%s/certificates/%s", s.baseURL, *result.CertificateCode)
		if err := s.emailService.SendCertificateReadyEmail(holder.Email, holder.FullName(), courseTitle, certificateURL); err != nil {
			s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to send certificate email")
		}
	}

	return &result, nil
}

// GetProgress returns the full progress view of a user's enrollment in a course
func (s *ProgressService) GetProgress(ctx context.Context, userID, courseID int64) (*dto.EnrollmentProgressResponse, error) {
	enrollment, err := s.stores.Enrollments.GetByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	records, err := s.stores.Progress.GetByEnrollment(ctx, enrollment.ID)
	if err != nil {
		return nil, err
	}

	resp := &dto.EnrollmentProgressResponse{
		EnrollmentID:     enrollment.ID,
		CourseID:         enrollment.CourseID,
		CompletedLessons: enrollment.CompletedLessons,
		TotalLessons:     enrollment.TotalLessons,
		ProgressPercent:  enrollment.ProgressPercent,
		CompletedAt:      enrollment.CompletedAt,
		Lessons:          make([]dto.LessonProgressResponse, 0, len(records)),
	}
	for _, record := range records {
		resp.Lessons = append(resp.Lessons, dto.FromLessonProgress(record))
	}
	return resp, nil
}
