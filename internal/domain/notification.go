package domain

import (
	"context"
	"time"
)

// EventNotification is a broadcast message posted on an event. Immutable once
// created.
// swagger:model EventNotification
type EventNotification struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	CreatedBy string    `json:"created_by"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationRecipient is one delivery record of a notification to one user.
// Created during fan-out; one row per (notification, recipient).
// swagger:model NotificationRecipient
type NotificationRecipient struct {
	ID             string     `json:"id"`
	NotificationID string     `json:"notification_id"`
	UserID         string     `json:"user_id"`
	IsRead         bool       `json:"is_read"`
	ReadAt         *time.Time `json:"read_at"`
	CreatedAt      time.Time  `json:"created_at"`
}

// UserNotification bundles a delivery record with the notification it carries.
// Delivery is pull-based; recipients fetch these.
type UserNotification struct {
	Recipient    *NotificationRecipient `json:"recipient"`
	Notification *EventNotification     `json:"notification"`
}

// NotificationRepository defines the interface for notification storage.
type NotificationRepository interface {
	Create(ctx context.Context, n *EventNotification) error
	ListByEventID(ctx context.Context, eventID string) ([]*EventNotification, error)
	ListByIDs(ctx context.Context, ids []string) ([]*EventNotification, error)
}

// NotificationRecipientRepository defines the interface for delivery-record storage.
type NotificationRecipientRepository interface {
	CreateMany(ctx context.Context, recipients []*NotificationRecipient) error
	GetByID(ctx context.Context, id string) (*NotificationRecipient, error)
	// ListByUserID returns the user's delivery records newest first along with
	// the total count for pagination.
	ListByUserID(ctx context.Context, userID string, params PaginationParams) ([]*NotificationRecipient, int, error)
	MarkRead(ctx context.Context, id string, readAt time.Time) error
}

// NotificationService defines notification operations.
type NotificationService interface {
	ListEventNotifications(ctx context.Context, identity Identity, eventID string) ([]*EventNotification, error)
	// CreateNotification inserts the notification and fans out one delivery
	// record per current participant, excluding the author. If the fan-out
	// insert fails the notification already exists with zero recipients and
	// ErrFanoutIncomplete is returned.
	CreateNotification(ctx context.Context, identity Identity, eventID, title, message string) (*EventNotification, error)
	ListMyNotifications(ctx context.Context, identity Identity, params PaginationParams) ([]*UserNotification, int, error)
	// MarkNotificationRead marks the caller's own delivery record as read.
	// Another user's record yields ErrNotFound.
	MarkNotificationRead(ctx context.Context, identity Identity, recipientID string) error
}
