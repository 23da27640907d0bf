package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/brunofarias/jornada-lms/internal/app/models"
	"github.com/brunofarias/jornada-lms/internal/app/repositories"
	"github.com/brunofarias/jornada-lms/internal/pkg/apperrors"
	"github.com/brunofarias/jornada-lms/internal/pkg/auth"
)

// UserService handles user profile and administration operations
type UserService struct {
	userRepo *repositories.UserRepository
	tx       TxRunner
	logger   zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo *repositories.UserRepository, tx TxRunner, logger zerolog.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		tx:       tx,
		logger:   logger,
	}
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile updates the authenticated user's basic information
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, firstName, lastName, email string) (*models.User, error) {
	if err := s.userRepo.UpdateProfile(ctx, userID, firstName, lastName, email); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, userID)
}

// UpdatePassword verifies the current password and replaces it
func (s *UserService) UpdatePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.Password, currentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, userID, hashed)
}

// UpdateRole sets a user's role and pastor flag. Admin only, enforced
// at the route level.
func (s *UserService) UpdateRole(ctx context.Context, userID int64, role models.RoleType, isPastor *bool) (*models.User, error) {
	switch role {
	case models.RoleMember, models.RoleLeader, models.RoleAdmin:
	default:
		return nil, apperrors.ErrValidationFailed
	}
	if err := s.userRepo.UpdateRole(ctx, userID, role, isPastor); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, userID)
}

// Deactivate disables a user account without removing its history
func (s *UserService) Deactivate(ctx context.Context, userID int64) error {
	return s.userRepo.SetActive(ctx, userID, false)
}

// Delete removes a user and everything owned by the account in one
// transaction. Courses the user taught survive with the instructor
// cleared by the schema's ON DELETE SET NULL.
func (s *UserService) Delete(ctx context.Context, userID int64) error {
	return s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		repos := repositories.NewRepositories(tx)
		if err := repos.TokenRepository.DeleteAllForUser(ctx, userID); err != nil {
			return err
		}
		if err := repos.NotificationRepository.DeleteAllForUser(ctx, userID); err != nil {
			return err
		}
		if err := repos.UserRepository.Delete(ctx, userID); err != nil {
			return err
		}
		s.logger.Info().Int64("userID", userID).Msg("User deleted")
		return nil
	})
}

// GetAll retrieves users with filtering and pagination
func (s *UserService) GetAll(ctx context.Context, role, search *string, page, pageSize int) ([]*models.User, int64, error) {
	return s.userRepo.GetAll(ctx, role, search, page, pageSize)
}
