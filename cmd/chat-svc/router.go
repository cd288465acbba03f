package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tradeforce/internal/common"
	"tradeforce/internal/metrics"
	"tradeforce/internal/wire"
)

func newRouter(app *wire.Application) http.Handler {
	r := mux.NewRouter()
	r.Use(metrics.HTTPMiddleware(app.Logger))

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/api/health", healthHandler(app)).Methods(http.MethodGet)
	r.Handle("/ws", app.WS)

	api := r.PathPrefix("/api").Subrouter()
	if app.Config.Auth.Enabled {
		api.Use(common.AuthMiddleware([]byte(app.Config.Auth.JWTSecret)))
	}
	app.Messages.RegisterRoutes(api)
	app.Notifications.RegisterRoutes(api)

	return cors.Handler(cors.Options{
		AllowedOrigins:   app.Config.Chat.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "auth-token"},
		AllowCredentials: false,
		MaxAge:           300,
	})(r)
}

func healthHandler(app *wire.Application) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		body := map[string]interface{}{
			"status":      "ok",
			"store":       app.Config.Store.Driver,
			"connections": app.Hub.Count(),
		}
		if err := app.Stores.Ping(ctx); err != nil {
			body["status"] = "degraded"
			common.WriteJSON(w, http.StatusServiceUnavailable, body)
			return
		}
		common.WriteJSON(w, http.StatusOK, body)
	}
}
