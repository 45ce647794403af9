package pgsql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/trustnest/trustnest_backend/internal/apperrors"
	"github.com/trustnest/trustnest_backend/internal/core/domain"
	portsrepo "github.com/trustnest/trustnest_backend/internal/core/ports/repositories"
)

type notificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository creates a new repository for notification data.
func NewNotificationRepository(pool *pgxpool.Pool) portsrepo.NotificationRepositoryFacade {
	return &notificationRepository{pool: pool}
}

var _ portsrepo.NotificationRepositoryFacade = (*notificationRepository)(nil)

// SaveNotification persists a notification.
func (r *notificationRepository) SaveNotification(ctx context.Context, notification domain.Notification) error {
	payloadJSON, err := json.Marshal(notification.Payload)
	if err != nil {
		return fmt.Errorf("failed to encode notification payload: %w", err)
	}

	query := `
		INSERT INTO notifications (notification_id, recipient_id, sender_id, type, message, payload, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = r.pool.Exec(ctx, query,
		notification.NotificationID,
		notification.RecipientID,
		notification.SenderID,
		notification.Type,
		notification.Message,
		payloadJSON,
		notification.Read,
		notification.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save notification %s: %w", notification.NotificationID, err)
	}
	return nil
}

// ListNotificationsForUser retrieves a user's notifications, newest first.
func (r *notificationRepository) ListNotificationsForUser(ctx context.Context, recipientID string, limit int) ([]domain.Notification, error) {
	query := `
		SELECT notification_id, recipient_id, sender_id, type, message, payload, read, created_at
		FROM notifications
		WHERE recipient_id = $1
		ORDER BY created_at DESC
		LIMIT $2;
	`
	rows, err := r.pool.Query(ctx, query, recipientID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications for user %s: %w", recipientID, err)
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var payloadJSON []byte
		err := rows.Scan(
			&n.NotificationID,
			&n.RecipientID,
			&n.SenderID,
			&n.Type,
			&n.Message,
			&payloadJSON,
			&n.Read,
			&n.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification row: %w", err)
		}
		if len(payloadJSON) > 0 {
			if err := json.Unmarshal(payloadJSON, &n.Payload); err != nil {
				return nil, fmt.Errorf("failed to decode notification payload: %w", err)
			}
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading notification rows: %w", err)
	}
	return notifications, nil
}

// MarkNotificationRead flags a notification as read. The recipient guard
// keeps users from touching notifications that are not theirs.
func (r *notificationRepository) MarkNotificationRead(ctx context.Context, notificationID, recipientID string) error {
	query := `UPDATE notifications SET read = TRUE WHERE notification_id = $1 AND recipient_id = $2;`
	tag, err := r.pool.Exec(ctx, query, notificationID, recipientID)
	if err != nil {
		return fmt.Errorf("failed to mark notification %s read: %w", notificationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
