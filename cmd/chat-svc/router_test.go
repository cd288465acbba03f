package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tradeforce/internal/chat/handler"
	"tradeforce/internal/config"
	"tradeforce/internal/notif"
	"tradeforce/internal/wire"
)

func testApp(ping func(context.Context) error, auth bool) *wire.Application {
	logger := zap.NewNop()
	cfg := &config.Config{
		Store: config.StoreConfig{Driver: config.DriverMongo},
		Auth:  config.AuthConfig{Enabled: auth, JWTSecret: "s3cret"},
		Chat:  config.ChatConfig{AllowedOrigins: []string{"https://tradeforce.example"}},
	}
	return &wire.Application{
		Config:        cfg,
		Logger:        logger,
		Stores:        &wire.Stores{Ping: ping},
		Hub:           handler.NewHub(logger),
		WS:            &handler.WSServer{},
		Messages:      handler.NewMessageHandler(nil, logger),
		Notifications: notif.NewNotificationHandler(nil, logger),
	}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		ping       func(context.Context) error
		wantStatus int
		wantBody   string
	}{
		{name: "store up", ping: func(context.Context) error { return nil }, wantStatus: http.StatusOK, wantBody: "ok"},
		{name: "store down", ping: func(context.Context) error { return errors.New("no reachable servers") }, wantStatus: http.StatusServiceUnavailable, wantBody: "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newRouter(testApp(tt.ping, true)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body["status"])
			assert.Equal(t, "mongo", body["store"])
		})
	}
}

func TestAPIRequiresTokenWhenAuthEnabled(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(testApp(nil, true)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/messages/allMsgs", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/messages/markAllAsRead", nil)
	req.Header.Set("Origin", "https://tradeforce.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	rec := httptest.NewRecorder()

	newRouter(testApp(nil, true)).ServeHTTP(rec, req)

	assert.Equal(t, "https://tradeforce.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(testApp(nil, false)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "chat_live_connections")
}
