package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/brunofarias/jornada-lms/internal/app/models"
	"github.com/brunofarias/jornada-lms/internal/db"
	"github.com/brunofarias/jornada-lms/internal/pkg/apperrors"
	"github.com/brunofarias/jornada-lms/internal/pkg/logger"
)

// NotificationRepository handles database operations for notifications
type NotificationRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(q db.Querier) *NotificationRepository {
	return &NotificationRepository{
		db: q,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a notification and returns its ID
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) (int64, error) {
	query := `
		INSERT INTO notifications (user_id, type, title, message, action_url, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, false, NOW())
		RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query, n.UserID, n.Type, n.Title, n.Message, n.ActionURL).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Int64("userID", n.UserID).Str("type", string(n.Type)).Msg("Error creating notification")
		return 0, fmt.Errorf("error creating notification: %w", err)
	}
	return id, nil
}

// GetAllByUser retrieves a user's notifications with pagination
func (r *NotificationRepository) GetAllByUser(ctx context.Context, userID int64, unreadOnly bool, page, pageSize int) ([]*models.Notification, int64, error) {
	builder := r.sb.Select(
		"id", "user_id", "type", "title", "message", "action_url", "is_read", "created_at",
		"COUNT(*) OVER() AS total_count",
	).
		From("notifications").
		Where(squirrel.Eq{"user_id": userID})
	if unreadOnly {
		builder = builder.Where(squirrel.Eq{"is_read": false})
	}
	builder = builder.OrderBy("created_at DESC").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize))

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list notifications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error listing notifications")
		return nil, 0, fmt.Errorf("error listing notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	var total int64
	for rows.Next() {
		var n models.Notification
		err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.ActionURL, &n.IsRead, &n.CreatedAt, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning notification row: %w", err)
		}
		notifications = append(notifications, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating notification rows: %w", err)
	}
	return notifications, total, nil
}

// CountUnread counts a user's unread notifications
func (r *NotificationRepository) CountUnread(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = false`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting unread notifications: %w", err)
	}
	return count, nil
}

// MarkAsRead marks a single notification as read, scoped to its owner
func (r *NotificationRepository) MarkAsRead(ctx context.Context, notificationID, userID int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2`,
		notificationID, userID)
	if err != nil {
		logger.Error().Err(err).Int64("notificationID", notificationID).Msg("Error marking notification as read")
		return fmt.Errorf("error marking notification as read: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}

// MarkAllAsRead marks all of a user's notifications as read
func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE notifications SET is_read = true WHERE user_id = $1 AND is_read = false`, userID)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error marking all notifications as read")
		return fmt.Errorf("error marking notifications as read: %w", err)
	}
	return nil
}

// DeleteAllForUser removes all of a user's notifications
func (r *NotificationRepository) DeleteAllForUser(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM notifications WHERE user_id = $1`, userID)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error clearing notifications")
		return fmt.Errorf("error clearing notifications: %w", err)
	}
	return nil
}
