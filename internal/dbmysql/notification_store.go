package dbmysql

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"tradeforce/internal/models"
)

type NotificationStore struct {
	db *gorm.DB
}

func NewNotificationStore(db *gorm.DB) *NotificationStore {
	return &NotificationStore{db: db}
}

func (s *NotificationStore) Create(ctx context.Context, n *models.Notification) error {
	row := Notification{
		UserID:  n.UserID,
		Type:    n.Type.String(),
		Content: n.Content,
		IsRead:  n.IsRead,
		Date:    n.Date,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	n.ID = row.ID
	return nil
}

func (s *NotificationStore) ByUserID(ctx context.Context, userID string) ([]*models.Notification, error) {
	var rows []Notification
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get user notifications: %w", err)
	}

	out := make([]*models.Notification, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toModel())
	}
	return out, nil
}

func (s *NotificationStore) MarkAsRead(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ?", id).
		Update("is_read", true)
	if result.Error != nil {
		return fmt.Errorf("failed to mark notification as read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ensureExists(ctx, s.db, &Notification{}, "notification", id)
	}
	return nil
}

func (s *NotificationStore) MarkAllAsRead(ctx context.Context, userID string) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark notifications as read: %w", result.Error)
	}
	return result.RowsAffected, nil
}

