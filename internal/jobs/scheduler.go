package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/brunofarias/jornada-lms/internal/app/models"
	"github.com/brunofarias/jornada-lms/internal/app/repositories"
	"github.com/brunofarias/jornada-lms/internal/app/services"
	"github.com/brunofarias/jornada-lms/internal/config"
)

// Scheduler runs the recurring maintenance jobs: expired refresh token
// cleanup and reminders for enrollments waiting too long on a decision.
type Scheduler struct {
	cron                *cron.Cron
	cfg                 *config.Config
	tokenRepo           *repositories.TokenRepository
	enrollmentRepo      *repositories.EnrollmentRepository
	userRepo            *repositories.UserRepository
	notificationService *services.NotificationService
	logger              zerolog.Logger
}

// NewScheduler creates a new Scheduler
func NewScheduler(
	cfg *config.Config,
	tokenRepo *repositories.TokenRepository,
	enrollmentRepo *repositories.EnrollmentRepository,
	userRepo *repositories.UserRepository,
	notificationService *services.NotificationService,
	logger zerolog.Logger,
) *Scheduler {
	return &Scheduler{
		cron:                cron.New(),
		cfg:                 cfg,
		tokenRepo:           tokenRepo,
		enrollmentRepo:      enrollmentRepo,
		userRepo:            userRepo,
		notificationService: notificationService,
		logger:              logger,
	}
}

// Start registers the jobs and starts the cron loop
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.Jobs.TokenCleanupSchedule, s.cleanupExpiredTokens); err != nil {
		return fmt.Errorf("invalid token cleanup schedule: %w", err)
	}
	if _, err := s.cron.AddFunc(s.cfg.Jobs.PendingReminderSchedule, s.remindPendingEnrollments); err != nil {
		return fmt.Errorf("invalid pending reminder schedule: %w", err)
	}

	s.cron.Start()
	s.logger.Info().
		Str("tokenCleanup", s.cfg.Jobs.TokenCleanupSchedule).
		Str("pendingReminder", s.cfg.Jobs.PendingReminderSchedule).
		Msg("Job scheduler started")
	return nil
}

// Stop stops the cron loop and waits for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info().Msg("Job scheduler stopped")
}

func (s *Scheduler) cleanupExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	removed, err := s.tokenRepo.CleanupExpired(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Expired token cleanup failed")
		return
	}
	s.logger.Info().Int64("removed", removed).Msg("Expired refresh tokens cleaned up")
}

// remindPendingEnrollments notifies every leader and admin about
// enrollments that have been pending longer than the configured age.
func (s *Scheduler) remindPendingEnrollments() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cutoff := time.Now().AddDate(0, 0, -s.cfg.Jobs.PendingReminderMinAgeDays)
	pending, err := s.enrollmentRepo.GetPendingOlderThan(ctx, cutoff)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list stale pending enrollments")
		return
	}
	if len(pending) == 0 {
		return
	}

	deciders, err := s.listDeciders(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list enrollment deciders")
		return
	}

	actionURL := "/enrollments?status=PENDING"
	message := fmt.Sprintf("Existem %d matrículas aguardando decisão há mais de %d dias",
		len(pending), s.cfg.Jobs.PendingReminderMinAgeDays)
	for _, decider := range deciders {
		n := &models.Notification{
			UserID:    decider.ID,
			Type:      models.NotificationPendingReminder,
			Title:     "Matrículas pendentes",
			Message:   message,
			ActionURL: &actionURL,
		}
		if err := s.notificationService.Notify(ctx, n); err != nil {
			s.logger.Warn().Err(err).Int64("userID", decider.ID).Msg("Failed to notify decider about pending enrollments")
		}
	}

	s.logger.Info().
		Int("pending", len(pending)).
		Int("deciders", len(deciders)).
		Msg("Pending enrollment reminders sent")
}

func (s *Scheduler) listDeciders(ctx context.Context) ([]*models.User, error) {
	var deciders []*models.User
	for _, role := range []string{string(models.RoleLeader), string(models.RoleAdmin)} {
		role := role
		users, _, err := s.userRepo.GetAll(ctx, &role, nil, 1, 500)
		if err != nil {
			return nil, err
		}
		deciders = append(deciders, users...)
	}
	return deciders, nil
}
