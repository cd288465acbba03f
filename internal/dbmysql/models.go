package dbmysql

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tradeforce/internal/models"
)

type User struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	UserName   string    `gorm:"column:user_name;uniqueIndex;size:50;not null" json:"user_name"`
	FirstName  string    `gorm:"column:first_name;size:100" json:"first_name"`
	LastName   string    `gorm:"column:last_name;size:100" json:"last_name"`
	ProfilePic string    `gorm:"column:profile_pic;size:512" json:"profile_pic"`
	IsOnline   bool      `gorm:"column:is_online;not null" json:"is_online"`
	SocketID   string    `gorm:"column:socket_id;size:64;index" json:"-"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

func (u *User) toModel() *models.User {
	return &models.User{
		ID:         u.ID,
		UserName:   u.UserName,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		ProfilePic: u.ProfilePic,
		IsOnline:   u.IsOnline,
		SocketID:   u.SocketID,
	}
}

type Message struct {
	ID         string    `gorm:"primaryKey;size:36"`
	FromUserID string    `gorm:"column:from_user_id;index:idx_messages_pair,priority:1;size:36;not null"`
	ToUserID   string    `gorm:"column:to_user_id;index:idx_messages_pair,priority:2;index;size:36;not null"`
	Content    string    `gorm:"type:text;not null"`
	Date       time.Time `gorm:"index"`
	IsUnread   bool      `gorm:"column:is_unread;not null"`
}

func (m *Message) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (m *Message) toModel() *models.Message {
	return &models.Message{
		ID:         m.ID,
		FromUserID: m.FromUserID,
		ToUserID:   m.ToUserID,
		Content:    m.Content,
		Date:       m.Date.UTC(),
		IsUnread:   m.IsUnread,
	}
}

type Notification struct {
	ID      string    `gorm:"primaryKey;size:36"`
	UserID  string    `gorm:"column:user_id;not null;index;size:36"`
	Type    string    `gorm:"not null;size:50"`
	Content string    `gorm:"not null;size:255"`
	IsRead  bool      `gorm:"column:is_read;not null"`
	Date    time.Time `gorm:"index"`
}

func (n *Notification) BeforeCreate(*gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

func (n *Notification) toModel() *models.Notification {
	return &models.Notification{
		ID:      n.ID,
		UserID:  n.UserID,
		Type:    models.NotificationType(n.Type),
		Content: n.Content,
		IsRead:  n.IsRead,
		Date:    n.Date.UTC(),
	}
}
