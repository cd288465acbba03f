package service

import (
	"context"

	"go.uber.org/zap"

	"tradeforce/internal/chat/repository"
	"tradeforce/internal/common"
	"tradeforce/internal/models"
)

//go:generate mockgen -source=chat_service.go -destination=mocks/mock_service.go -package=mocks

// ChatService defines the interface exposed to the handler layer
type ChatService interface {
	SendMessage(ctx context.Context, fromUserID, toUserID, content string) (*SendResult, error)
	GetChatList(ctx context.Context, userID string) ([]*models.ChatListEntry, error)
	GetConversation(ctx context.Context, a, b string) ([]*models.Message, error)
	AllMessages(ctx context.Context) ([]*models.Message, error)
	CountUnreadFrom(ctx context.Context, fromUserID, toUserID string) (int64, error)
	UnreadSummary(ctx context.Context, userID string) (map[string]int, error)
	MarkAllAsRead(ctx context.Context, fromUserID, toUserID string) (int64, error)
	MarkOneAsRead(ctx context.Context, messageID string) error
	GetMessage(ctx context.Context, messageID string) (*models.Message, error)
}

// PresenceLookup resolves a user's live connection handle.
type PresenceLookup interface {
	HandleOf(ctx context.Context, userID string) (string, bool, error)
}

// Deliverer pushes a persisted message to a live connection. It reports
// false when the handle is gone or its queue is full.
type Deliverer interface {
	Deliver(handle string, msg *models.Message) bool
}

// SendResult is the durable message plus whether a live push was made.
type SendResult struct {
	Message   *models.Message
	Delivered bool
}

// peerFetchLimit bounds concurrent profile lookups while building a chat list.
const peerFetchLimit = 8

type chatService struct {
	messages  repository.MessageRepository
	users     repository.UserRepository
	presence  PresenceLookup
	deliverer Deliverer
	peerLimit int
	logger    *zap.Logger
}

// Constructor used in DI/wire
func NewChatService(
	messages repository.MessageRepository,
	users repository.UserRepository,
	presence PresenceLookup,
	deliverer Deliverer,
	logger *zap.Logger,
) ChatService {
	return &chatService{
		messages:  messages,
		users:     users,
		presence:  presence,
		deliverer: deliverer,
		peerLimit: peerFetchLimit,
		logger:    logger.Named("chat"),
	}
}

// GetConversation returns both directions of the a/b conversation, oldest first.
func (s *chatService) GetConversation(ctx context.Context, a, b string) ([]*models.Message, error) {
	a, err := common.RequireField("fromUserId", a)
	if err != nil {
		return nil, err
	}
	b, err = common.RequireField("toUserId", b)
	if err != nil {
		return nil, err
	}

	msgs, err := s.messages.FindConversation(ctx, a, b)
	if err != nil {
		return nil, common.PersistenceError("failed to load conversation", err)
	}
	return msgs, nil
}

func (s *chatService) AllMessages(ctx context.Context) ([]*models.Message, error) {
	msgs, err := s.messages.FindAll(ctx)
	if err != nil {
		return nil, common.PersistenceError("failed to load messages", err)
	}
	return msgs, nil
}

func (s *chatService) CountUnreadFrom(ctx context.Context, fromUserID, toUserID string) (int64, error) {
	from, to, err := requirePair(fromUserID, toUserID)
	if err != nil {
		return 0, err
	}

	n, err := s.messages.CountUnread(ctx, from, to)
	if err != nil {
		return 0, common.PersistenceError("failed to count unread messages", err)
	}
	return n, nil
}

// UnreadSummary groups the unread messages addressed to userID by sender.
func (s *chatService) UnreadSummary(ctx context.Context, userID string) (map[string]int, error) {
	userID, err := common.RequireField("userId", userID)
	if err != nil {
		return nil, err
	}

	msgs, err := s.messages.FindByParticipant(ctx, userID)
	if err != nil {
		return nil, common.PersistenceError("failed to load messages", err)
	}
	return CountUnread(msgs, userID), nil
}

// MarkAllAsRead clears the unread flag on every message fromUserID sent to
// toUserID. Messages in the other direction are left alone.
func (s *chatService) MarkAllAsRead(ctx context.Context, fromUserID, toUserID string) (int64, error) {
	from, to, err := requirePair(fromUserID, toUserID)
	if err != nil {
		return 0, err
	}

	n, err := s.messages.MarkConversationRead(ctx, from, to)
	if err != nil {
		return 0, common.PersistenceError("failed to mark messages as read", err)
	}
	s.logger.Debug("conversation marked read",
		zap.String("from_user_id", from),
		zap.String("to_user_id", to),
		zap.Int64("modified", n))
	return n, nil
}

func (s *chatService) MarkOneAsRead(ctx context.Context, messageID string) error {
	messageID, err := common.RequireField("messageId", messageID)
	if err != nil {
		return err
	}

	if err := s.messages.MarkRead(ctx, messageID); err != nil {
		return common.PersistenceError("failed to mark message as read", err)
	}
	return nil
}

func (s *chatService) GetMessage(ctx context.Context, messageID string) (*models.Message, error) {
	messageID, err := common.RequireField("messageId", messageID)
	if err != nil {
		return nil, err
	}

	msg, err := s.messages.FindByID(ctx, messageID)
	if err != nil {
		return nil, common.PersistenceError("failed to load message", err)
	}
	return msg, nil
}

func requirePair(fromUserID, toUserID string) (string, string, error) {
	from, err := common.RequireField("fromUserId", fromUserID)
	if err != nil {
		return "", "", err
	}
	to, err := common.RequireField("toUserId", toUserID)
	if err != nil {
		return "", "", err
	}
	return from, to, nil
}
