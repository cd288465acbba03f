package notif

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"tradeforce/internal/common"
	"tradeforce/internal/config"
	"tradeforce/internal/models"
)

const observerTimeout = 5 * time.Second

// NotificationManager fans stored notifications out to observers, either
// inline or through a fixed pool of workers.
type NotificationManager struct {
	observers    map[string]Observer
	eventChannel chan *models.Notification
	workerPool   int
	ctx          context.Context
	cancel       context.CancelFunc
	mu           sync.RWMutex
	wg           sync.WaitGroup
	logger       *zap.Logger
}

func NewNotificationManager(workerPoolSize, bufferSize int, logger *zap.Logger) *NotificationManager {
	if workerPoolSize <= 0 {
		workerPoolSize = 1
	}
	if bufferSize <= 0 {
		bufferSize = 256
	}
	ctx, cancel := context.WithCancel(context.Background())

	nm := &NotificationManager{
		observers:    make(map[string]Observer),
		eventChannel: make(chan *models.Notification, bufferSize),
		workerPool:   workerPoolSize,
		ctx:          ctx,
		cancel:       cancel,
		logger:       logger,
	}

	for i := 0; i < workerPoolSize; i++ {
		nm.wg.Add(1)
		go nm.processEvents()
	}

	return nm
}

func (nm *NotificationManager) Subscribe(observer Observer) {
	nm.mu.Lock()
	defer nm.mu.Unlock()
	nm.observers[observer.Name()] = observer
	nm.logger.Debug("observer subscribed", zap.String("observer", observer.Name()))
}

func (nm *NotificationManager) Notify(ctx context.Context, n *models.Notification) {
	nm.mu.RLock()
	observers := make([]Observer, 0, len(nm.observers))
	for _, obs := range nm.observers {
		observers = append(observers, obs)
	}
	nm.mu.RUnlock()

	for _, observer := range observers {
		if err := observer.Update(ctx, n); err != nil {
			nm.logger.Warn("observer update failed",
				zap.String("observer", observer.Name()),
				zap.String("user_id", n.UserID),
				zap.Error(err))
		}
	}
}

// NotifyAsync queues n for the workers. A full queue drops it.
func (nm *NotificationManager) NotifyAsync(n *models.Notification) {
	select {
	case <-nm.ctx.Done():
		return
	default:
	}

	select {
	case nm.eventChannel <- n:
	default:
		nm.logger.Warn("notification channel full, dropping event",
			zap.String("type", n.Type.String()),
			zap.String("user_id", n.UserID))
	}
}

func (nm *NotificationManager) processEvents() {
	defer nm.wg.Done()

	for {
		select {
		case n := <-nm.eventChannel:
			ctx, cancel := context.WithTimeout(nm.ctx, observerTimeout)
			nm.Notify(ctx, n)
			cancel()
		case <-nm.ctx.Done():
			return
		}
	}
}

// Shutdown stops the workers. Queued events that were not picked up are dropped.
func (nm *NotificationManager) Shutdown() {
	nm.cancel()
	nm.wg.Wait()
	nm.logger.Info("notification manager shutdown complete")
}

type NotificationService struct {
	manager  *NotificationManager
	repo     Repository
	presence PresenceLookup
	pusher   Pusher
	logger   *zap.Logger
}

func NewNotificationService(
	cfg *config.Config,
	repo Repository,
	presence PresenceLookup,
	pusher Pusher,
	logger *zap.Logger,
) *NotificationService {
	logger = logger.Named("notif")
	manager := NewNotificationManager(cfg.Notification.Workers, cfg.Notification.ChannelBufferSize, logger)

	if cfg.Notification.Enabled {
		manager.Subscribe(NewLiveObserver(presence, pusher, logger))
		manager.Subscribe(NewMetricsObserver())
	}

	return &NotificationService{
		manager:  manager,
		repo:     repo,
		presence: presence,
		pusher:   pusher,
		logger:   logger,
	}
}

// SendNotification stores a notification for userID and hands it to the
// observers in the background.
func (s *NotificationService) SendNotification(ctx context.Context, userID string, typ models.NotificationType, content string) (*models.Notification, error) {
	n := &models.Notification{
		UserID:  userID,
		Type:    typ,
		Content: content,
		Date:    time.Now().UTC(),
	}
	if err := s.validate(n); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, common.PersistenceError("failed to store notification", err)
	}

	s.manager.NotifyAsync(n)
	s.logger.Debug("notification stored",
		zap.String("type", typ.String()),
		zap.String("user_id", userID),
		zap.String("notification_id", n.ID))
	return n, nil
}

// NotifyRecipient signals userID's live connection that something new is
// waiting. An offline user is not an error.
func (s *NotificationService) NotifyRecipient(ctx context.Context, userID string) error {
	userID, err := common.RequireField("userId", userID)
	if err != nil {
		return err
	}

	handle, ok, err := s.presence.HandleOf(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if !s.pusher.PushNotification(handle, nil) {
		s.logger.Debug("recipient signal dropped", zap.String("user_id", userID))
	}
	return nil
}

func (s *NotificationService) GetUserNotifications(ctx context.Context, userID string) ([]*models.Notification, error) {
	userID, err := common.RequireField("userId", userID)
	if err != nil {
		return nil, err
	}

	list, err := s.repo.ByUserID(ctx, userID)
	if err != nil {
		return nil, common.PersistenceError("failed to get notifications", err)
	}
	return list, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, notificationID string) error {
	notificationID, err := common.RequireField("notificationId", notificationID)
	if err != nil {
		return err
	}

	if err := s.repo.MarkAsRead(ctx, notificationID); err != nil {
		return common.PersistenceError("failed to mark notification as read", err)
	}
	return nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID string) (int64, error) {
	userID, err := common.RequireField("userId", userID)
	if err != nil {
		return 0, err
	}

	n, err := s.repo.MarkAllAsRead(ctx, userID)
	if err != nil {
		return 0, common.PersistenceError("failed to mark notifications as read", err)
	}
	return n, nil
}

func (s *NotificationService) validate(n *models.Notification) error {
	if _, err := common.RequireField("userId", n.UserID); err != nil {
		return err
	}
	if !n.Type.IsValid() {
		return common.NewValidationError("unknown notification type")
	}
	return common.ValidateContent(n.Content, models.MaxNotificationContent)
}

func (s *NotificationService) Shutdown() {
	s.manager.Shutdown()
}
