package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tradeforce/internal/common"
	"tradeforce/internal/metrics"
	"tradeforce/internal/models"
)

var (
	ErrEmptyContent  = common.NewValidationError("message content is required")
	ErrEmptyFromUser = common.NewValidationError("fromUserId is missing from the request")
	ErrEmptyToUser   = common.NewValidationError("toUserId is missing from the request")
)

// SendMessage persists a message and, if the recipient is online, pushes it
// to their connection. Persisting and resolving the recipient run together;
// a failed lookup only skips delivery.
func (s *chatService) SendMessage(ctx context.Context, fromUserID, toUserID, content string) (*SendResult, error) {
	content = strings.TrimSpace(content)
	fromUserID = strings.TrimSpace(fromUserID)
	toUserID = strings.TrimSpace(toUserID)

	switch {
	case content == "":
		return nil, ErrEmptyContent
	case fromUserID == "":
		return nil, ErrEmptyFromUser
	case toUserID == "":
		return nil, ErrEmptyToUser
	}

	msg := &models.Message{
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Content:    content,
		Date:       time.Now().UTC(),
		IsUnread:   true,
	}

	var (
		handle string
		online bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.messages.Insert(gctx, msg); err != nil {
			return common.PersistenceError("failed to save message", err)
		}
		return nil
	})
	g.Go(func() error {
		h, ok, err := s.presence.HandleOf(gctx, toUserID)
		if err != nil {
			s.logger.Warn("recipient lookup failed, delivery skipped",
				zap.String("to_user_id", toUserID),
				zap.Error(err))
			return nil
		}
		handle, online = h, ok
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	metrics.MessagesPersisted.Inc()

	result := &SendResult{Message: msg}
	if !online {
		metrics.RecordDelivery(metrics.OutcomeOffline)
		return result, nil
	}

	result.Delivered = s.deliverer.Deliver(handle, msg)
	if result.Delivered {
		metrics.RecordDelivery(metrics.OutcomeDelivered)
	} else {
		metrics.RecordDelivery(metrics.OutcomeDropped)
		s.logger.Info("recipient connection unavailable",
			zap.String("to_user_id", toUserID),
			zap.String("handle", handle))
	}
	return result, nil
}
