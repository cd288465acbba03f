package wire

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tradeforce/internal/admin"
	"tradeforce/internal/chat/handler"
	"tradeforce/internal/chat/repository"
	"tradeforce/internal/chat/service"
	"tradeforce/internal/config"
	"tradeforce/internal/dbmongo"
	"tradeforce/internal/dbmysql"
	"tradeforce/internal/notif"
	"tradeforce/internal/presence"
)

// Application is everything cmd/chat-svc needs to serve.
type Application struct {
	Config        *config.Config
	Logger        *zap.Logger
	Stores        *Stores
	Hub           *handler.Hub
	WS            *handler.WSServer
	Messages      *handler.MessageHandler
	Notifications *notif.NotificationHandler
	Admin         *admin.Server
}

// Stores is the persistence gateway selected by Store.Driver.
type Stores struct {
	Messages      repository.MessageRepository
	Users         repository.UserRepository
	Notifications notif.Repository
	Ping          admin.PingFunc
}

func ProvideStores(cfg *config.Config, logger *zap.Logger) (*Stores, func(), error) {
	switch cfg.Store.Driver {
	case config.DriverMySQL:
		db, err := dbmysql.NewMySQL(cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := dbmysql.Migrate(db); err != nil {
			_ = dbmysql.Close(db)
			return nil, nil, err
		}
		cleanup := func() {
			if err := dbmysql.Close(db); err != nil {
				logger.Warn("failed to close MySQL", zap.Error(err))
			}
		}
		return &Stores{
			Messages:      dbmysql.NewMessageStore(db),
			Users:         dbmysql.NewUserStore(db),
			Notifications: dbmysql.NewNotificationStore(db),
			Ping:          func(ctx context.Context) error { return dbmysql.Ping(ctx, db) },
		}, cleanup, nil

	case config.DriverMongo:
		mc, err := dbmongo.NewMongoConnection(cfg)
		if err != nil {
			return nil, nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := dbmongo.EnsureIndexes(ctx, mc); err != nil {
			logger.Warn("index creation failed", zap.Error(err))
		}
		logger.Info("connected to MongoDB", zap.String("database", cfg.MongoDB.Database))
		cleanup := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := mc.Close(ctx); err != nil {
				logger.Warn("failed to close MongoDB", zap.Error(err))
			}
		}
		return &Stores{
			Messages:      dbmongo.NewMessageStore(mc),
			Users:         dbmongo.NewUserStore(mc),
			Notifications: dbmongo.NewNotificationStore(mc),
			Ping:          mc.Ping,
		}, cleanup, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func ProvideMessageRepository(s *Stores) repository.MessageRepository { return s.Messages }

func ProvideUserRepository(s *Stores) repository.UserRepository { return s.Users }

func ProvideNotificationRepository(s *Stores) notif.Repository { return s.Notifications }

func ProvideNotificationService(
	cfg *config.Config,
	repo notif.Repository,
	registry *presence.Registry,
	hub *handler.Hub,
	logger *zap.Logger,
) (*notif.NotificationService, func()) {
	svc := notif.NewNotificationService(cfg, repo, registry, hub, logger)
	return svc, svc.Shutdown
}

func ProvideAdminServer(s *Stores, logger *zap.Logger) *admin.Server {
	return admin.NewServer(s.Ping, logger)
}

var (
	_ repository.MessageRepository = (*dbmongo.MessageStore)(nil)
	_ repository.UserRepository    = (*dbmongo.UserStore)(nil)
	_ notif.Repository             = (*dbmongo.NotificationStore)(nil)
	_ repository.MessageRepository = (*dbmysql.MessageStore)(nil)
	_ repository.UserRepository    = (*dbmysql.UserStore)(nil)
	_ notif.Repository             = (*dbmysql.NotificationStore)(nil)

	_ service.PresenceLookup = (*presence.Registry)(nil)
	_ service.Deliverer      = (*handler.Hub)(nil)
	_ handler.Presence       = (*presence.Registry)(nil)
	_ handler.Notifier       = (*notif.NotificationService)(nil)
)
