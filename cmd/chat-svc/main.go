package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"tradeforce/internal/config"
	"tradeforce/internal/logging"
	"tradeforce/internal/wire"
)

func main() {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, flush, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer flush()

	app, cleanup, err := wire.InitializeApplication(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize chat service", zap.Error(err))
	}
	defer cleanup()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      newRouter(app),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	adminLis, err := net.Listen("tcp", net.JoinHostPort(cfg.Server.Host, cfg.Server.AdminPort))
	if err != nil {
		logger.Fatal("failed to listen on admin port", zap.String("port", cfg.Server.AdminPort), zap.Error(err))
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Info("chat service listening",
			zap.String("addr", srv.Addr),
			zap.String("store", cfg.Store.Driver),
			zap.Bool("auth", cfg.Auth.Enabled))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	go func() {
		if err := app.Admin.Serve(adminLis); err != nil {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("shutting down chat service", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.Error("server failed, shutting down", zap.Error(err))
	}

	app.Admin.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("http shutdown incomplete", zap.Error(err))
	}
	logger.Info("chat service stopped")
}
