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

// NotificationController handles the user's notification inbox
type NotificationController struct {
	notificationService *services.NotificationService
	logger              zerolog.Logger
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService *services.NotificationService, logger zerolog.Logger) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
		logger:              logger,
	}
}

// GetAll lists the caller's notifications
// @Summary List my notifications
// @Tags notifications
// @Produce json
// @Param unreadOnly query bool false "Only unread notifications" default(false)
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.NotificationListResponse}
// @Security BearerAuth
// @Router /notifications [get]
func (c *NotificationController) GetAll(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	var filter dto.NotificationFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid filter parameters").WithDetails(err.Error())))
		return
	}

	notifications, total, unread, err := c.notificationService.GetAll(
		ctx.Request.Context(), userID, filter.UnreadOnly, filter.Page, filter.PageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.NotificationListResponse{
		Notifications:  make([]dto.NotificationResponse, 0, len(notifications)),
		UnreadCount:    unread,
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
	}
	for _, n := range notifications {
		resp.Notifications = append(resp.Notifications, dto.FromNotification(n))
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// MarkAsRead marks one notification as read
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Security BearerAuth
// @Router /notifications/{id}/read [put]
func (c *NotificationController) MarkAsRead(ctx *gin.Context) {
	notificationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(ctx)

	if err := c.notificationService.MarkAsRead(ctx.Request.Context(), notificationID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Notification marked as read"}))
}

// MarkAllAsRead marks every notification of the caller as read
// @Summary Mark all notifications as read
// @Tags notifications
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Security BearerAuth
// @Router /notifications/read-all [put]
func (c *NotificationController) MarkAllAsRead(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	if err := c.notificationService.MarkAllAsRead(ctx.Request.Context(), userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "All notifications marked as read"}))
}

// ClearAll deletes every notification of the caller
// @Summary Clear my notifications
// @Tags notifications
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Security BearerAuth
// @Router /notifications [delete]
func (c *NotificationController) ClearAll(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	if err := c.notificationService.ClearAll(ctx.Request.Context(), userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Notifications cleared"}))
}
