package dto

import (
	"time"

	"github.com/trustnest/trustnest_backend/internal/core/domain"
)

// NotificationResponse defines the data returned for a notification.
type NotificationResponse struct {
	NotificationID string            `json:"notificationID"`
	SenderID       string            `json:"senderID"`
	Type           string            `json:"type"`
	Message        string            `json:"message"`
	Payload        map[string]string `json:"payload,omitempty"`
	Read           bool              `json:"read"`
	CreatedAt      time.Time         `json:"createdAt"`
}

// ToNotificationResponse converts a domain.Notification to NotificationResponse.
func ToNotificationResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		NotificationID: n.NotificationID,
		SenderID:       n.SenderID,
		Type:           string(n.Type),
		Message:        n.Message,
		Payload:        n.Payload,
		Read:           n.Read,
		CreatedAt:      n.CreatedAt,
	}
}

// ToNotificationResponses converts a slice of domain.Notification to []NotificationResponse.
func ToNotificationResponses(notifications []domain.Notification) []NotificationResponse {
	responses := make([]NotificationResponse, len(notifications))
	for i := range notifications {
		responses[i] = ToNotificationResponse(&notifications[i])
	}
	return responses
}
