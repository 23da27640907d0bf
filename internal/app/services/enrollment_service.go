package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/brunofarias/jornada-lms/internal/app/models"
	"github.com/brunofarias/jornada-lms/internal/pkg/apperrors"
	"github.com/brunofarias/jornada-lms/internal/pkg/email"
)

// EnrollmentService handles enrollment requests and the approval gate.
// Decisions are one-way: a pending enrollment becomes approved or
// rejected exactly once and is never re-decided.
type EnrollmentService struct {
	tx           TxRunner
	stores       *Stores
	txStores     StoreFactory
	emailService email.EmailService
	notifier     *NotificationService
	logger       zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(
	tx TxRunner,
	stores *Stores,
	txStores StoreFactory,
	emailService email.EmailService,
	notifier *NotificationService,
	logger zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		tx:           tx,
		stores:       stores,
		txStores:     txStores,
		emailService: emailService,
		notifier:     notifier,
		logger:       logger,
	}
}

// Enroll requests enrollment in a published course. Courses that do not
// require a decision are approved on the spot; the rest stay pending
// until a leader decides.
func (s *EnrollmentService) Enroll(ctx context.Context, userID, courseID int64) (*models.Enrollment, error) {
	course, err := s.stores.Courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !course.IsPublished {
		return nil, apperrors.ErrCourseNotPublished
	}

	status := models.EnrollmentPending
	if !course.RequiresApproval {
		status = models.EnrollmentApproved
	}

	total, err := s.stores.Courses.CountLessons(ctx, courseID)
	if err != nil {
		return nil, err
	}

	enrollment := &models.Enrollment{
		UserID:       userID,
		CourseID:     courseID,
		Status:       status,
		TotalLessons: total,
	}
	id, err := s.stores.Enrollments.Create(ctx, enrollment)
	if err != nil {
		return nil, err
	}
	enrollment.ID = id

	s.logger.Info().
		Int64("userID", userID).
		Int64("courseID", courseID).
		Str("status", string(status)).
		Msg("Enrollment created")
	return enrollment, nil
}

// Approve moves a pending enrollment to approved. The decision and its
// notification commit together; email and WebSocket push follow after
// commit, best effort.
func (s *EnrollmentService) Approve(ctx context.Context, enrollmentID, deciderID int64) (*models.Enrollment, error) {
	return s.decide(ctx, enrollmentID, deciderID, models.EnrollmentApproved, nil)
}

// Reject moves a pending enrollment to rejected with a reason the
// student can read.
func (s *EnrollmentService) Reject(ctx context.Context, enrollmentID, deciderID int64, reason string) (*models.Enrollment, error) {
	return s.decide(ctx, enrollmentID, deciderID, models.EnrollmentRejected, &reason)
}

func (s *EnrollmentService) decide(ctx context.Context, enrollmentID, deciderID int64, status models.EnrollmentStatus, reason *string) (*models.Enrollment, error) {
	decider, err := s.stores.Users.GetByID(ctx, deciderID)
	if err != nil {
		return nil, err
	}
	if !decider.Role.CanApproveEnrollments() {
		return nil, apperrors.ErrPermissionDenied
	}

	var enrollment *models.Enrollment
	var student *models.User
	var course *models.Course
	var notification *models.Notification

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		stores := s.txStores(tx)

		current, err := stores.Enrollments.GetByIDForUpdate(ctx, enrollmentID)
		if err != nil {
			return err
		}
		if !current.Status.CanTransitionTo(status) {
			return apperrors.ErrEnrollmentAlreadyDecided
		}

		if err := stores.Enrollments.UpdateDecision(ctx, enrollmentID, status, deciderID, reason); err != nil {
			return err
		}

		student, err = stores.Users.GetByID(ctx, current.UserID)
		if err != nil {
			return err
		}
		course, err = stores.Courses.GetByID(ctx, current.CourseID)
		if err != nil {
			return err
		}

		notification = s.decisionNotification(current.UserID, course, status, reason)
		id, err := stores.Notifications.Create(ctx, notification)
		if err != nil {
			return err
		}
		notification.ID = id

		enrollment, err = stores.Enrollments.GetByID(ctx, enrollmentID)
		return err
	})
	if err != nil {
		return nil, err
	}

	// Post-commit delivery, best effort
	s.notifier.PushStored(notification)
	if status == models.EnrollmentApproved {
		if err := s.emailService.SendEnrollmentApprovedEmail(student.Email, student.FullName(), course.Title); err != nil {
			s.logger.Warn().Err(err).Int64("enrollmentID", enrollmentID).Msg("Failed to send approval email")
		}
	} else {
		var reasonText string
		if reason != nil {
			reasonText = *reason
		}
		if err := s.emailService.SendEnrollmentRejectedEmail(student.Email, student.FullName(), course.Title, reasonText); err != nil {
			s.logger.Warn().Err(err).Int64("enrollmentID", enrollmentID).Msg("Failed to send rejection email")
		}
	}

	s.logger.Info().
		Int64("enrollmentID", enrollmentID).
		Int64("deciderID", deciderID).
		Str("status", string(status)).
		Msg("Enrollment decided")
	return enrollment, nil
}

func (s *EnrollmentService) decisionNotification(userID int64, course *models.Course, status models.EnrollmentStatus, reason *string) *models.Notification {
	actionURL := fmt.Sprintf("/courses/%s", course.Slug)
	if status == models.EnrollmentApproved {
		return &models.Notification{
			UserID:    userID,
			Type:      models.NotificationEnrollmentApproved,
			Title:     "Matrícula aprovada",
			Message:   fmt.Sprintf("Sua matrícula no curso %s foi aprovada. Bons estudos!", course.Title),
			ActionURL: &actionURL,
		}
	}
	message := fmt.Sprintf("Sua matrícula no curso %s foi recusada.", course.Title)
	if reason != nil && *reason != "" {
		message = fmt.Sprintf("%s Motivo: %s", message, *reason)
	}
	return &models.Notification{
		UserID:  userID,
		Type:    models.NotificationEnrollmentRejected,
		Title:   "Matrícula recusada",
		Message: message,
	}
}

// GetByID retrieves an enrollment
func (s *EnrollmentService) GetByID(ctx context.Context, enrollmentID int64) (*models.Enrollment, error) {
	return s.stores.Enrollments.GetByID(ctx, enrollmentID)
}

// GetAll retrieves enrollments with filtering and pagination
func (s *EnrollmentService) GetAll(ctx context.Context, status *string, courseID, userID *int64, page, pageSize int) ([]*models.Enrollment, int64, error) {
	return s.stores.Enrollments.GetAll(ctx, status, courseID, userID, page, pageSize)
}

// GetMine retrieves the authenticated user's enrollments
func (s *EnrollmentService) GetMine(ctx context.Context, userID int64, page, pageSize int) ([]*models.Enrollment, int64, error) {
	return s.stores.Enrollments.GetAll(ctx, nil, nil, &userID, page, pageSize)
}
