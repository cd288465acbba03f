package notif

import (
	"context"

	"go.uber.org/zap"

	"tradeforce/internal/metrics"
	"tradeforce/internal/models"
)

// LiveObserver pushes a notification to the recipient's live connection,
// if there is one.
type LiveObserver struct {
	presence PresenceLookup
	pusher   Pusher
	logger   *zap.Logger
}

func NewLiveObserver(presence PresenceLookup, pusher Pusher, logger *zap.Logger) *LiveObserver {
	return &LiveObserver{
		presence: presence,
		pusher:   pusher,
		logger:   logger,
	}
}

func (o *LiveObserver) Name() string {
	return "live_observer"
}

func (o *LiveObserver) Update(ctx context.Context, n *models.Notification) error {
	handle, ok, err := o.presence.HandleOf(ctx, n.UserID)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if !o.pusher.PushNotification(handle, n) {
		o.logger.Debug("notification push dropped",
			zap.String("user_id", n.UserID),
			zap.String("notification_id", n.ID))
	}
	return nil
}

// MetricsObserver counts dispatched notifications by type.
type MetricsObserver struct{}

func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{}
}

func (MetricsObserver) Name() string {
	return "metrics_observer"
}

func (MetricsObserver) Update(_ context.Context, n *models.Notification) error {
	metrics.NotificationsDispatched.WithLabelValues(n.Type.String()).Inc()
	return nil
}
