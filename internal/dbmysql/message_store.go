package dbmysql

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tradeforce/internal/common"
	"tradeforce/internal/models"
)

type MessageStore struct {
	db *gorm.DB
}

func NewMessageStore(db *gorm.DB) *MessageStore {
	return &MessageStore{db: db}
}

func (s *MessageStore) Insert(ctx context.Context, msg *models.Message) error {
	row := Message{
		FromUserID: msg.FromUserID,
		ToUserID:   msg.ToUserID,
		Content:    msg.Content,
		Date:       msg.Date,
		IsUnread:   msg.IsUnread,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	msg.ID = row.ID
	return nil
}

func (s *MessageStore) FindByID(ctx context.Context, id string) (*models.Message, error) {
	var row Message
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFoundf("message %s not found", id)
		}
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return row.toModel(), nil
}

func (s *MessageStore) FindByParticipant(ctx context.Context, userID string) ([]*models.Message, error) {
	return s.find(s.db.WithContext(ctx).Where("from_user_id = ? OR to_user_id = ?", userID, userID))
}

func (s *MessageStore) FindConversation(ctx context.Context, a, b string) ([]*models.Message, error) {
	return s.find(s.db.WithContext(ctx).
		Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)", a, b, b, a))
}

func (s *MessageStore) FindAll(ctx context.Context) ([]*models.Message, error) {
	return s.find(s.db.WithContext(ctx))
}

func (s *MessageStore) CountUnread(ctx context.Context, fromUserID, toUserID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&Message{}).
		Where("from_user_id = ? AND to_user_id = ? AND is_unread = ?", fromUserID, toUserID, true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to get unread count: %w", err)
	}
	return count, nil
}

func (s *MessageStore) MarkConversationRead(ctx context.Context, fromUserID, toUserID string) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&Message{}).
		Where("from_user_id = ? AND to_user_id = ? AND is_unread = ?", fromUserID, toUserID, true).
		Update("is_unread", false)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark messages as read: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (s *MessageStore) MarkRead(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).
		Model(&Message{}).
		Where("id = ?", id).
		Update("is_unread", false)
	if result.Error != nil {
		return fmt.Errorf("failed to mark message as read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ensureExists(ctx, s.db, &Message{}, "message", id)
	}
	return nil
}

// find runs q oldest first.
func (s *MessageStore) find(q *gorm.DB) ([]*models.Message, error) {
	var rows []Message
	if err := q.Order("date ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}

	out := make([]*models.Message, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toModel())
	}
	return out, nil
}
