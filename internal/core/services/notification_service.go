package services

import (
	"context"
	"log/slog"

	"github.com/trustnest/trustnest_backend/internal/core/domain"
	portsrepo "github.com/trustnest/trustnest_backend/internal/core/ports/repositories"
	portssvc "github.com/trustnest/trustnest_backend/internal/core/ports/services"
)

const defaultNotificationPageSize = 50

// notificationService implements the NotificationSvcFacade interface.
type notificationService struct {
	BaseService
	notificationRepo portsrepo.NotificationRepositoryFacade
}

// NewNotificationService creates a new notification service.
func NewNotificationService(notificationRepo portsrepo.NotificationRepositoryFacade) portssvc.NotificationSvcFacade {
	return &notificationService{notificationRepo: notificationRepo}
}

var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

// ListForUser retrieves the user's notifications, newest first.
func (s *notificationService) ListForUser(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = defaultNotificationPageSize
	}
	notifications, err := s.notificationRepo.ListNotificationsForUser(ctx, userID, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list notifications", slog.String("user_id", userID))
		return nil, err
	}
	if notifications == nil {
		return []domain.Notification{}, nil
	}
	return notifications, nil
}

// MarkRead flags one of the user's notifications as read.
func (s *notificationService) MarkRead(ctx context.Context, notificationID, userID string) error {
	if err := s.notificationRepo.MarkNotificationRead(ctx, notificationID, userID); err != nil {
		s.LogError(ctx, err, "Failed to mark notification read",
			slog.String("notification_id", notificationID))
		return err
	}
	return nil
}
