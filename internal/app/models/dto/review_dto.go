package dto

import (
	"time"

	"github.com/brunofarias/jornada-lms/internal/app/models"
)

// CreateReviewRequest represents course review data
type CreateReviewRequest struct {
	Rating  int     `json:"rating" binding:"required,min=1,max=5"`
	Comment *string `json:"comment,omitempty"`
}

// ReviewResponse represents a course review
type ReviewResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	UserName  *string   `json:"userName,omitempty"`
	CourseID  int64     `json:"courseId"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReviewListResponse represents a course's reviews with the average rating
type ReviewListResponse struct {
	Reviews       []ReviewResponse `json:"reviews"`
	AverageRating float64          `json:"averageRating"`
	PaginationInfo
}

// FromReview converts a models.Review to a ReviewResponse
func FromReview(review *models.Review) ReviewResponse {
	if review == nil {
		return ReviewResponse{}
	}
	resp := ReviewResponse{
		ID:        review.ID,
		UserID:    review.UserID,
		CourseID:  review.CourseID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
	if review.User != nil {
		name := review.User.FullName()
		resp.UserName = &name
	}
	return resp
}
