package handler

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"tradeforce/internal/models"
)

var (
	ErrQueueFull  = errors.New("send queue full")
	ErrConnClosed = errors.New("connection closed")
)

// Conn is one live client connection as seen by the hub.
type Conn interface {
	// ID is the opaque handle stored by the presence registry.
	ID() string
	// Send queues frame without blocking. It fails with ErrQueueFull or
	// ErrConnClosed.
	Send(frame OutFrame) error
	// Close flushes queued frames and then closes the connection.
	Close() error
}

// Hub indexes live connections by handle.
type Hub struct {
	mu     sync.RWMutex
	conns  map[string]Conn
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		conns:  make(map[string]Conn),
		logger: logger.Named("hub"),
	}
}

func (h *Hub) Add(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c.ID()] = c
}

// Remove drops c if it is still the connection registered under its handle.
func (h *Hub) Remove(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if cur, ok := h.conns[c.ID()]; ok && cur == c {
		delete(h.conns, c.ID())
	}
}

func (h *Hub) Get(handle string) (Conn, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.conns[handle]
	return c, ok
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// SendTo queues frame on the connection named by handle. A full queue drops
// the frame.
func (h *Hub) SendTo(handle string, frame OutFrame) bool {
	c, ok := h.Get(handle)
	if !ok {
		return false
	}
	if err := c.Send(frame); err != nil {
		h.logger.Warn("dropping frame",
			zap.String("handle", handle),
			zap.String("event", string(frame.Event)),
			zap.Error(err))
		return false
	}
	return true
}

// BroadcastExcept queues frame on every connection other than exceptHandle.
func (h *Hub) BroadcastExcept(exceptHandle string, frame OutFrame) int {
	h.mu.RLock()
	targets := make([]Conn, 0, len(h.conns))
	for id, c := range h.conns {
		if id != exceptHandle {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	sent := 0
	for _, c := range targets {
		if err := c.Send(frame); err != nil {
			h.logger.Warn("dropping broadcast frame",
				zap.String("handle", c.ID()),
				zap.String("event", string(frame.Event)),
				zap.Error(err))
			continue
		}
		sent++
	}
	return sent
}

// Deliver pushes a stored chat message to the recipient's connection.
func (h *Hub) Deliver(handle string, msg *models.Message) bool {
	return h.SendTo(handle, OutFrame{
		Event: EventAddMessageResponse,
		Data:  AddMessageResponse{ChatMsg: msg},
	})
}

// PushNotification sends new-notification to handle. n may be nil for a bare
// "you have something new" signal.
func (h *Hub) PushNotification(handle string, n *models.Notification) bool {
	return h.SendTo(handle, OutFrame{
		Event: EventNewNotification,
		Data:  NotificationPush{Notification: n},
	})
}
