package services

import (
	"context"

	"github.com/trustnest/trustnest_backend/internal/core/domain"
)

// Notifier delivers notifications fire-and-forget. Implementations must
// never propagate delivery failures to the caller; a bill is successfully
// added even if every notification about it fails.
type Notifier interface {
	Notify(ctx context.Context, notification domain.Notification)
}

// NotificationSvcFacade exposes a user's notification feed.
type NotificationSvcFacade interface {
	// ListForUser retrieves the user's notifications, newest first.
	ListForUser(ctx context.Context, userID string, limit int) ([]domain.Notification, error)

	// MarkRead flags one of the user's notifications as read.
	MarkRead(ctx context.Context, notificationID, userID string) error
}
