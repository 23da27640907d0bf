package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/brunofarias/jornada-lms/internal/app/models"
	"github.com/brunofarias/jornada-lms/internal/pkg/websocket"
)

// EventPusher delivers real-time events to connected clients. Satisfied
// by *websocket.Hub.
type EventPusher interface {
	Push(event *websocket.Event)
}

// NotificationService handles notification operations
type NotificationService struct {
	notificationStore NotificationStore
	hub               EventPusher
	logger            zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationStore NotificationStore, hub EventPusher, logger zerolog.Logger) *NotificationService {
	return &NotificationService{
		notificationStore: notificationStore,
		hub:               hub,
		logger:            logger,
	}
}

// Notify persists a notification and pushes it to the recipient's open
// connections. A failed push is logged and swallowed: delivery is best
// effort, the stored row is the source of truth.
func (s *NotificationService) Notify(ctx context.Context, n *models.Notification) error {
	id, err := s.notificationStore.Create(ctx, n)
	if err != nil {
		return err
	}
	n.ID = id
	s.push(n)
	return nil
}

func (s *NotificationService) push(n *models.Notification) {
	if s.hub == nil {
		return
	}
	event := &websocket.Event{
		UserID:         n.UserID,
		Type:           string(n.Type),
		NotificationID: n.ID,
		Title:          n.Title,
		Message:        n.Message,
		Timestamp:      time.Now(),
	}
	if n.ActionURL != nil {
		event.ActionURL = *n.ActionURL
	}
	s.hub.Push(event)
}

// PushStored pushes an already-persisted notification over WebSocket.
// Used after a transaction commits for rows written inside it.
func (s *NotificationService) PushStored(n *models.Notification) {
	s.push(n)
}

// GetAll retrieves a user's notifications with pagination
func (s *NotificationService) GetAll(ctx context.Context, userID int64, unreadOnly bool, page, pageSize int) ([]*models.Notification, int64, int, error) {
	notifications, total, err := s.notificationStore.GetAllByUser(ctx, userID, unreadOnly, page, pageSize)
	if err != nil {
		return nil, 0, 0, err
	}
	unread, err := s.notificationStore.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, 0, err
	}
	return notifications, total, unread, nil
}

// MarkAsRead marks a single notification as read
func (s *NotificationService) MarkAsRead(ctx context.Context, notificationID, userID int64) error {
	return s.notificationStore.MarkAsRead(ctx, notificationID, userID)
}

// MarkAllAsRead marks all of a user's notifications as read
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID int64) error {
	return s.notificationStore.MarkAllAsRead(ctx, userID)
}

// ClearAll removes all of a user's notifications
func (s *NotificationService) ClearAll(ctx context.Context, userID int64) error {
	return s.notificationStore.DeleteAllForUser(ctx, userID)
}
