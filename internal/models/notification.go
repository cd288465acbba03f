package models

import "time"

type NotificationType string

const (
	NewOfferingType       NotificationType = "newOffering"
	OfferingAcceptedType  NotificationType = "offeringAccepted"
	OfferingRejectedType  NotificationType = "offeringRejected"
	OfferingRescindedType NotificationType = "offeringRescinded"
	NewMessageType        NotificationType = "newMessage"
)

// Notification is a per-user marketplace notification.
type Notification struct {
	ID      string           `json:"_id"`
	UserID  string           `json:"userId"`
	Type    NotificationType `json:"type"`
	Content string           `json:"content"`
	IsRead  bool             `json:"isRead"`
	Date    time.Time        `json:"date"`
}

// MaxNotificationContent mirrors the length cap on notification bodies.
const MaxNotificationContent = 200

func (t NotificationType) String() string {
	return string(t)
}

// IsValid reports whether t is one of the marketplace notification types.
func (t NotificationType) IsValid() bool {
	switch t {
	case NewOfferingType, OfferingAcceptedType, OfferingRejectedType, OfferingRescindedType, NewMessageType:
		return true
	}
	return false
}
