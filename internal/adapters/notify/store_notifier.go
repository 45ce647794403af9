// Package notify delivers in-app notifications by persisting them to the
// notification store. Delivery failures are logged and swallowed so that
// producing operations never fail because of a notification.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/trustnest/trustnest_backend/internal/core/domain"
	portsrepo "github.com/trustnest/trustnest_backend/internal/core/ports/repositories"
	portssvc "github.com/trustnest/trustnest_backend/internal/core/ports/services"
	"github.com/trustnest/trustnest_backend/internal/middleware"
)

type storeNotifier struct {
	notificationRepo portsrepo.NotificationWriter
}

// NewStoreNotifier creates a Notifier that writes notifications to the store.
func NewStoreNotifier(notificationRepo portsrepo.NotificationWriter) portssvc.Notifier {
	return &storeNotifier{notificationRepo: notificationRepo}
}

var _ portssvc.Notifier = (*storeNotifier)(nil)

// Notify persists the notification, filling in the ID and timestamp.
func (n *storeNotifier) Notify(ctx context.Context, notification domain.Notification) {
	if notification.RecipientID == "" || notification.RecipientID == notification.SenderID {
		return
	}
	if notification.NotificationID == "" {
		notification.NotificationID = uuid.NewString()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}

	if err := n.notificationRepo.SaveNotification(ctx, notification); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to deliver notification",
			slog.String("type", string(notification.Type)),
			slog.String("recipient_id", notification.RecipientID),
			slog.Any("error", err))
	}
}
