package repositories

import (
	"context"

	"github.com/trustnest/trustnest_backend/internal/core/domain"
)

// NotificationReader defines read operations for notifications.
type NotificationReader interface {
	// ListNotificationsForUser retrieves a user's notifications, newest first.
	ListNotificationsForUser(ctx context.Context, recipientID string, limit int) ([]domain.Notification, error)
}

// NotificationWriter defines write operations for notifications.
type NotificationWriter interface {
	// SaveNotification persists a notification.
	SaveNotification(ctx context.Context, notification domain.Notification) error

	// MarkNotificationRead flags a notification as read. The recipientID
	// guard stops users from touching notifications that are not theirs.
	MarkNotificationRead(ctx context.Context, notificationID, recipientID string) error
}

// NotificationRepositoryFacade combines all notification-related repository interfaces.
type NotificationRepositoryFacade interface {
	NotificationReader
	NotificationWriter
}
