package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/brunofarias/jornada-lms/internal/app/models/dto"
	"github.com/brunofarias/jornada-lms/internal/app/services"
	"github.com/brunofarias/jornada-lms/internal/middleware"
	"github.com/brunofarias/jornada-lms/internal/pkg/helpers"
)

// ReviewController handles course reviews
type ReviewController struct {
	reviewService *services.ReviewService
	logger        zerolog.Logger
}

// NewReviewController creates a new ReviewController
func NewReviewController(reviewService *services.ReviewService, logger zerolog.Logger) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
		logger:        logger,
	}
}

// Create reviews a course the caller is enrolled in
// @Summary Review a course
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param request body dto.CreateReviewRequest true "Review data"
// @Success 201 {object} dto.APIResponse{data=dto.ReviewResponse}
// @Failure 403 {object} dto.ErrorResponse "Enrollment not approved"
// @Failure 409 {object} dto.ErrorResponse "Course already reviewed"
// @Security BearerAuth
// @Router /courses/{id}/reviews [post]
func (c *ReviewController) Create(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(ctx)

	var req dto.CreateReviewRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	review, err := c.reviewService.Create(ctx.Request.Context(), userID, courseID, req.Rating, req.Comment)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.FromReview(review)))
}

// GetAllByCourse lists a course's reviews
// @Summary List course reviews
// @Tags reviews
// @Produce json
// @Param id path int true "Course ID"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.ReviewListResponse}
// @Security BearerAuth
// @Router /courses/{id}/reviews [get]
func (c *ReviewController) GetAllByCourse(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var filter dto.PaginationRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid filter parameters").WithDetails(err.Error())))
		return
	}

	reviews, total, average, err := c.reviewService.GetAllByCourse(ctx.Request.Context(), courseID, filter.Page, filter.PageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.ReviewListResponse{
		Reviews:        make([]dto.ReviewResponse, 0, len(reviews)),
		AverageRating:  average,
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
	}
	for _, review := range reviews {
		resp.Reviews = append(resp.Reviews, dto.FromReview(review))
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// Delete removes the caller's review
// @Summary Delete my review
// @Tags reviews
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Review not found"
// @Security BearerAuth
// @Router /reviews/{id} [delete]
func (c *ReviewController) Delete(ctx *gin.Context) {
	reviewID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(ctx)

	if err := c.reviewService.Delete(ctx.Request.Context(), reviewID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Review deleted"}))
}
