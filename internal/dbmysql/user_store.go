package dbmysql

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tradeforce/internal/common"
	"tradeforce/internal/models"
)

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	var u User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFoundf("user %s not found", id)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u.toModel(), nil
}

func (s *UserStore) SetPresence(ctx context.Context, id, socketID string, online bool) error {
	result := s.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"socket_id": socketID,
			"is_online": online,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update presence: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ensureExists(ctx, s.db, &User{}, "user", id)
	}
	return nil
}

func (s *UserStore) ClearPresenceIf(ctx context.Context, id, socketID string) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ? AND socket_id = ?", id, socketID).
		Updates(map[string]interface{}{
			"socket_id": "",
			"is_online": false,
		})

	if result.Error != nil {
		return false, fmt.Errorf("failed to clear presence: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// ensureExists tells an unknown row apart from an update that changed
// nothing, since MySQL reports changed rows rather than matched ones.
func ensureExists(ctx context.Context, db *gorm.DB, model interface{}, kind, id string) error {
	var n int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return fmt.Errorf("failed to look up %s: %w", kind, err)
	}
	if n == 0 {
		return common.NotFoundf("%s %s not found", kind, id)
	}
	return nil
}
