// Package presence maps user identities to their current live connection.
//
// The mapping lives on the user record in the store, so the registry itself
// holds no state. Concurrent binds for one user race with last-write-wins.
package presence

import (
	"context"
	"time"

	"go.uber.org/zap"

	"tradeforce/internal/chat/repository"
	"tradeforce/internal/common"
	"tradeforce/internal/config"
	"tradeforce/internal/models"
)

type Registry struct {
	users   repository.UserRepository
	timeout time.Duration
	logger  *zap.Logger
}

func NewRegistry(users repository.UserRepository, cfg *config.Config, logger *zap.Logger) *Registry {
	return &Registry{
		users:   users,
		timeout: cfg.Chat.LookupDeadline(),
		logger:  logger.Named("presence"),
	}
}

// Bind records handle as userID's live connection and marks the user online.
// A previous handle is overwritten.
func (r *Registry) Bind(ctx context.Context, userID, handle string) error {
	if userID == "" {
		return common.NewValidationError("userId is required")
	}
	if handle == "" {
		return common.NewValidationError("connection handle is required")
	}

	ctx, cancel := r.bounded(ctx)
	defer cancel()

	if err := r.users.SetPresence(ctx, userID, handle, true); err != nil {
		return err
	}
	r.logger.Debug("user bound", zap.String("user_id", userID), zap.String("handle", handle))
	return nil
}

// Unbind marks userID offline whatever connection it was bound to.
func (r *Registry) Unbind(ctx context.Context, userID string) error {
	if userID == "" {
		return common.NewValidationError("userId is required")
	}

	ctx, cancel := r.bounded(ctx)
	defer cancel()

	if err := r.users.SetPresence(ctx, userID, "", false); err != nil {
		return err
	}
	r.logger.Debug("user unbound", zap.String("user_id", userID))
	return nil
}

// Release unbinds userID only if handle is still its live connection. A
// connection that was superseded by a newer one closing is a no-op.
func (r *Registry) Release(ctx context.Context, userID, handle string) error {
	if userID == "" || handle == "" {
		return nil
	}

	ctx, cancel := r.bounded(ctx)
	defer cancel()

	cleared, err := r.users.ClearPresenceIf(ctx, userID, handle)
	if err != nil {
		return err
	}
	if !cleared {
		r.logger.Debug("stale release ignored", zap.String("user_id", userID), zap.String("handle", handle))
	}
	return nil
}

// HandleOf returns the live connection handle of userID. ok is false when
// the user is offline or has no handle.
func (r *Registry) HandleOf(ctx context.Context, userID string) (string, bool, error) {
	user, err := r.UserInfo(ctx, userID)
	if err != nil {
		return "", false, err
	}
	if !user.IsOnline || user.SocketID == "" {
		return "", false, nil
	}
	return user.SocketID, true, nil
}

func (r *Registry) IsLive(ctx context.Context, userID string) bool {
	_, ok, err := r.HandleOf(ctx, userID)
	return err == nil && ok
}

func (r *Registry) UserInfo(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, common.NewValidationError("userId is required")
	}

	ctx, cancel := r.bounded(ctx)
	defer cancel()

	return r.users.FindByID(ctx, userID)
}

func (r *Registry) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}
