package dto

import (
	"time"

	"github.com/brunofarias/jornada-lms/internal/app/models"
)

// NotificationResponse represents a notification shown to the user
type NotificationResponse struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	ActionURL *string   `json:"actionUrl,omitempty"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// NotificationListResponse represents a paginated list of notifications
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int                    `json:"unreadCount"`
	PaginationInfo
}

// NotificationFilterRequest represents notification list filter parameters
type NotificationFilterRequest struct {
	UnreadOnly bool `form:"unreadOnly,default=false"`
	Page       int  `form:"page,default=1" binding:"min=1"`
	PageSize   int  `form:"pageSize,default=10" binding:"min=1,max=100"`
}

// FromNotification converts a models.Notification to a NotificationResponse
func FromNotification(n *models.Notification) NotificationResponse {
	if n == nil {
		return NotificationResponse{}
	}
	return NotificationResponse{
		ID:        n.ID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		ActionURL: n.ActionURL,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
