package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/brunofarias/jornada-lms/internal/app/models"
	"github.com/brunofarias/jornada-lms/internal/app/repositories"
	"github.com/brunofarias/jornada-lms/internal/pkg/apperrors"
)

// ReviewService handles course reviews. Only enrolled students with an
// approved enrollment may review.
type ReviewService struct {
	reviewRepo      *repositories.ReviewRepository
	enrollmentStore EnrollmentStore
	logger          zerolog.Logger
}

// NewReviewService creates a new ReviewService
func NewReviewService(reviewRepo *repositories.ReviewRepository, enrollmentStore EnrollmentStore, logger zerolog.Logger) *ReviewService {
	return &ReviewService{
		reviewRepo:      reviewRepo,
		enrollmentStore: enrollmentStore,
		logger:          logger,
	}
}

// Create adds a review for a course the user is enrolled in
func (s *ReviewService) Create(ctx context.Context, userID, courseID int64, rating int, comment *string) (*models.Review, error) {
	enrollment, err := s.enrollmentStore.GetByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if enrollment.Status != models.EnrollmentApproved {
		return nil, apperrors.ErrEnrollmentNotApproved
	}

	review := &models.Review{
		UserID:   userID,
		CourseID: courseID,
		Rating:   rating,
		Comment:  comment,
	}
	id, err := s.reviewRepo.Create(ctx, review)
	if err != nil {
		return nil, err
	}
	review.ID = id
	return review, nil
}

// GetAllByCourse retrieves a course's reviews with the average rating
func (s *ReviewService) GetAllByCourse(ctx context.Context, courseID int64, page, pageSize int) ([]*models.Review, int64, float64, error) {
	return s.reviewRepo.GetAllByCourse(ctx, courseID, page, pageSize)
}

// Delete removes the authenticated user's review
func (s *ReviewService) Delete(ctx context.Context, reviewID, userID int64) error {
	return s.reviewRepo.Delete(ctx, reviewID, userID)
}
