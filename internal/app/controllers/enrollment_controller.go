package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/brunofarias/jornada-lms/internal/app/models"
	"github.com/brunofarias/jornada-lms/internal/app/models/dto"
	"github.com/brunofarias/jornada-lms/internal/app/services"
	"github.com/brunofarias/jornada-lms/internal/middleware"
	"github.com/brunofarias/jornada-lms/internal/pkg/helpers"
)

// EnrollmentController handles enrollment requests, the approval gate
// and per-lesson progress
type EnrollmentController struct {
	enrollmentService *services.EnrollmentService
	progressService   *services.ProgressService
	logger            zerolog.Logger
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(
	enrollmentService *services.EnrollmentService,
	progressService *services.ProgressService,
	logger zerolog.Logger,
) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
		progressService:   progressService,
		logger:            logger,
	}
}

// Enroll requests enrollment into a course
// @Summary Enroll in a course
// @Tags enrollments
// @Produce json
// @Param id path int true "Course ID"
// @Success 201 {object} dto.APIResponse{data=dto.EnrollmentResponse}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Already enrolled or course not published"
// @Security BearerAuth
// @Router /courses/{id}/enroll [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(ctx)

	enrollment, err := c.enrollmentService.Enroll(ctx.Request.Context(), userID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.FromEnrollment(enrollment)))
}

// GetMine lists the caller's enrollments
// @Summary List my enrollments
// @Tags enrollments
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentListResponse}
// @Security BearerAuth
// @Router /enrollments/me [get]
func (c *EnrollmentController) GetMine(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	var filter dto.EnrollmentFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid filter parameters").WithDetails(err.Error())))
		return
	}

	enrollments, total, err := c.enrollmentService.GetMine(ctx.Request.Context(), userID, filter.Page, filter.PageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(enrollmentList(enrollments, total, filter.Page, filter.PageSize)))
}

// GetAll lists enrollments for review
// @Summary List enrollments
// @Tags enrollments
// @Produce json
// @Param status query string false "Status filter (PENDING, APPROVED, REJECTED)"
// @Param courseId query int false "Course filter"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentListResponse}
// @Failure 403 {object} dto.ErrorResponse "Leader or admin role required"
// @Security BearerAuth
// @Router /enrollments [get]
func (c *EnrollmentController) GetAll(ctx *gin.Context) {
	var filter dto.EnrollmentFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid filter parameters").WithDetails(err.Error())))
		return
	}

	enrollments, total, err := c.enrollmentService.GetAll(ctx.Request.Context(), filter.Status, filter.CourseID, nil, filter.Page, filter.PageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(enrollmentList(enrollments, total, filter.Page, filter.PageSize)))
}

// GetByID retrieves a single enrollment
// @Summary Get an enrollment
// @Tags enrollments
// @Produce json
// @Param id path int true "Enrollment ID"
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentResponse}
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Security BearerAuth
// @Router /enrollments/{id} [get]
func (c *EnrollmentController) GetByID(ctx *gin.Context) {
	enrollmentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	enrollment, err := c.enrollmentService.GetByID(ctx.Request.Context(), enrollmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromEnrollment(enrollment)))
}

// Approve approves a pending enrollment
// @Summary Approve an enrollment
// @Tags enrollments
// @Produce json
// @Param id path int true "Enrollment ID"
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentResponse}
// @Failure 403 {object} dto.ErrorResponse "Leader or admin role required"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 409 {object} dto.ErrorResponse "Enrollment already decided"
// @Security BearerAuth
// @Router /enrollments/{id}/approve [put]
func (c *EnrollmentController) Approve(ctx *gin.Context) {
	enrollmentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	deciderID, _ := middleware.GetUserID(ctx)

	enrollment, err := c.enrollmentService.Approve(ctx.Request.Context(), enrollmentID, deciderID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromEnrollment(enrollment)))
}

// Reject rejects a pending enrollment with a reason
// @Summary Reject an enrollment
// @Tags enrollments
// @Accept json
// @Produce json
// @Param id path int true "Enrollment ID"
// @Param request body dto.RejectEnrollmentRequest true "Rejection reason"
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentResponse}
// @Failure 403 {object} dto.ErrorResponse "Leader or admin role required"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 409 {object} dto.ErrorResponse "Enrollment already decided"
// @Security BearerAuth
// @Router /enrollments/{id}/reject [put]
func (c *EnrollmentController) Reject(ctx *gin.Context) {
	enrollmentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	deciderID, _ := middleware.GetUserID(ctx)

	var req dto.RejectEnrollmentRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	enrollment, err := c.enrollmentService.Reject(ctx.Request.Context(), enrollmentID, deciderID, req.Reason)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromEnrollment(enrollment)))
}

// CompleteLesson records a lesson completion for the caller
// @Summary Complete a lesson
// @Tags progress
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} dto.APIResponse{data=dto.CompleteLessonResponse}
// @Failure 403 {object} dto.ErrorResponse "Enrollment not approved"
// @Failure 404 {object} dto.ErrorResponse "Lesson or enrollment not found"
// @Security BearerAuth
// @Router /lessons/{id}/complete [post]
func (c *EnrollmentController) CompleteLesson(ctx *gin.Context) {
	lessonID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(ctx)

	result, err := c.progressService.CompleteLesson(ctx.Request.Context(), userID, lessonID, nil)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result))
}

// GetProgress reports the caller's progress in a course
// @Summary Get course progress
// @Tags progress
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentProgressResponse}
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Security BearerAuth
// @Router /courses/{id}/progress [get]
func (c *EnrollmentController) GetProgress(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(ctx)

	progress, err := c.progressService.GetProgress(ctx.Request.Context(), userID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(progress))
}

func enrollmentList(enrollments []*models.Enrollment, total int64, page, pageSize int) dto.EnrollmentListResponse {
	resp := dto.EnrollmentListResponse{
		Enrollments:    make([]dto.EnrollmentResponse, 0, len(enrollments)),
		PaginationInfo: helpers.NewPaginationInfo(total, page, pageSize),
	}
	for _, enrollment := range enrollments {
		resp.Enrollments = append(resp.Enrollments, dto.FromEnrollment(enrollment))
	}
	return resp
}
