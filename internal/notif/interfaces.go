package notif

import (
	"context"

	"tradeforce/internal/models"
)

// Observer reacts to a stored notification.
type Observer interface {
	Update(ctx context.Context, n *models.Notification) error
	Name() string
}

// Repository is the notification half of the persistence gateway.
// Implemented by dbmongo.NotificationStore and dbmysql.NotificationStore.
type Repository interface {
	// Create stores n and sets its ID.
	Create(ctx context.Context, n *models.Notification) error
	// ByUserID returns userID's notifications, newest first.
	ByUserID(ctx context.Context, userID string) ([]*models.Notification, error)
	MarkAsRead(ctx context.Context, id string) error
	MarkAllAsRead(ctx context.Context, userID string) (int64, error)
}

type PresenceLookup interface {
	HandleOf(ctx context.Context, userID string) (string, bool, error)
}

// Pusher writes a new-notification event to a live connection.
type Pusher interface {
	PushNotification(handle string, n *models.Notification) bool
}
