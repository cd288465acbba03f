//go:build wireinject
// +build wireinject

package wire

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"tradeforce/internal/chat/handler"
	"tradeforce/internal/chat/service"
	"tradeforce/internal/config"
	"tradeforce/internal/notif"
	"tradeforce/internal/presence"
)

var storeSet = wire.NewSet(
	ProvideStores,
	ProvideMessageRepository,
	ProvideUserRepository,
	ProvideNotificationRepository,
)

var chatSet = wire.NewSet(
	handler.NewHub,
	presence.NewRegistry,
	service.NewChatService,
	handler.NewManager,
	handler.NewWSServer,
	handler.NewMessageHandler,
	wire.Bind(new(service.PresenceLookup), new(*presence.Registry)),
	wire.Bind(new(service.Deliverer), new(*handler.Hub)),
	wire.Bind(new(handler.Presence), new(*presence.Registry)),
	wire.Bind(new(handler.Notifier), new(*notif.NotificationService)),
)

var notifSet = wire.NewSet(
	ProvideNotificationService,
	notif.NewNotificationHandler,
)

func InitializeApplication(cfg *config.Config, logger *zap.Logger) (*Application, func(), error) {
	wire.Build(
		storeSet,
		chatSet,
		notifSet,
		ProvideAdminServer,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil, nil
}
