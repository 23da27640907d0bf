package models

import (
	"time"
)

// Notification defines the notification model based on the 'notifications' table
type Notification struct {
	ID        int64            `json:"id" db:"id" example:"1"`                                   // Unique identifier for the notification
	UserID    int64            `json:"userId" db:"user_id" example:"1"`                          // Recipient user ID
	Type      NotificationType `json:"type" db:"type" example:"ENROLLMENT_APPROVED"`             // Notification type
	Title     string           `json:"title" db:"title" example:"Matrícula aprovada"`            // Short title
	Message   string           `json:"message" db:"message" example:"Sua matrícula foi aprovada"` // Notification body
	ActionURL *string          `json:"actionUrl,omitempty" db:"action_url"`                      // Link to the related resource (nullable)
	IsRead    bool             `json:"isRead" db:"is_read" example:"false"`                      // Whether the recipient has read it
	CreatedAt time.Time        `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the notification was created
}
