// Package metrics provides Prometheus metrics for the chat service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LiveConnections tracks sockets currently bound to a user.
	LiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_live_connections",
			Help: "Number of live connections bound to a user",
		},
	)

	// PresenceBinds counts connection bind attempts by outcome.
	PresenceBinds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_presence_binds_total",
			Help: "Total number of presence bind attempts",
		},
		[]string{"outcome"},
	)

	// EventsHandled counts inbound live events by name and outcome.
	EventsHandled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_events_total",
			Help: "Total number of live events handled",
		},
		[]string{"event", "outcome"},
	)

	// MessagesPersisted counts messages written to the store.
	MessagesPersisted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_messages_persisted_total",
			Help: "Total number of messages persisted",
		},
	)

	// Deliveries counts live delivery attempts: delivered, offline, dropped.
	Deliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_deliveries_total",
			Help: "Total number of live message delivery attempts",
		},
		[]string{"outcome"},
	)

	// NotificationsDispatched counts notifications handed to observers.
	NotificationsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_notifications_dispatched_total",
			Help: "Total number of notifications dispatched",
		},
		[]string{"type"},
	)

	// HTTPRequestDuration tracks REST latency per route template.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chat_http_request_duration_seconds",
			Help:    "Duration of REST requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

const (
	OutcomeOK        = "ok"
	OutcomeError     = "error"
	OutcomeDelivered = "delivered"
	OutcomeOffline   = "offline"
	OutcomeDropped   = "dropped"
)

// RecordBind records a bind attempt and, on success, one more live connection.
func RecordBind(err error) {
	if err != nil {
		PresenceBinds.WithLabelValues(OutcomeError).Inc()
		return
	}
	PresenceBinds.WithLabelValues(OutcomeOK).Inc()
	LiveConnections.Inc()
}

func RecordDisconnect() {
	LiveConnections.Dec()
}

func RecordEvent(event string, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	EventsHandled.WithLabelValues(event, outcome).Inc()
}

func RecordDelivery(outcome string) {
	Deliveries.WithLabelValues(outcome).Inc()
}
