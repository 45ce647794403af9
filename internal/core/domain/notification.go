package domain

import "time"

// NotificationType identifies the event a notification describes.
type NotificationType string

const (
	NotifyPoolInvite   NotificationType = "POOL_INVITE"
	NotifyInviteAccept NotificationType = "INVITE_ACCEPTED"
	NotifyBillAdded    NotificationType = "BILL_ADDED"
	NotifySplitPaid    NotificationType = "SPLIT_PAID"
	NotifyRated        NotificationType = "USER_RATED"
)

// Notification is a message delivered to a user about activity that
// concerns them. Delivery is fire-and-forget: producers never fail their
// own operation when a notification cannot be stored.
type Notification struct {
	NotificationID string            `json:"notificationID"` // Primary Key (e.g., UUID)
	RecipientID    string            `json:"recipientID"`
	SenderID       string            `json:"senderID"`
	Type           NotificationType  `json:"type"`
	Message        string            `json:"message"`
	Payload        map[string]string `json:"payload,omitempty"` // Entity references, e.g. poolID/billID
	Read           bool              `json:"read"`
	CreatedAt      time.Time         `json:"createdAt"`
}
