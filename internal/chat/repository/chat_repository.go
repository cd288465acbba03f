package repository

import (
	"context"

	"tradeforce/internal/models"
)

//go:generate mockgen -source=chat_repository.go -destination=../service/mocks/mock_repository.go -package=mocks

// MessageRepository is the message half of the persistence gateway.
// Implemented by dbmongo.MessageStore and dbmysql.MessageStore.
type MessageRepository interface {
	// Insert stores msg and sets its ID.
	Insert(ctx context.Context, msg *models.Message) error
	FindByID(ctx context.Context, id string) (*models.Message, error)
	// FindByParticipant returns every message userID sent or received.
	FindByParticipant(ctx context.Context, userID string) ([]*models.Message, error)
	// FindConversation returns the messages exchanged between a and b in
	// both directions, oldest first.
	FindConversation(ctx context.Context, a, b string) ([]*models.Message, error)
	FindAll(ctx context.Context) ([]*models.Message, error)
	CountUnread(ctx context.Context, fromUserID, toUserID string) (int64, error)
	// MarkConversationRead clears IsUnread on every from->to message and
	// reports how many changed.
	MarkConversationRead(ctx context.Context, fromUserID, toUserID string) (int64, error)
	MarkRead(ctx context.Context, id string) error
}

// UserRepository is the user half of the persistence gateway. Only presence
// fields are ever written.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	SetPresence(ctx context.Context, id, socketID string, online bool) error
	// ClearPresenceIf marks the user offline only while its stored socket id
	// still equals socketID. It reports whether anything changed.
	ClearPresenceIf(ctx context.Context, id, socketID string) (bool, error)
}
