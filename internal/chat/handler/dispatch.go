package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tradeforce/internal/chat/service"
	"tradeforce/internal/common"
	"tradeforce/internal/config"
	"tradeforce/internal/metrics"
	"tradeforce/internal/models"
)

//go:generate mockgen -source=dispatch.go -destination=mocks/mock_dispatch.go -package=mocks

// Presence is the part of the presence registry the session manager drives.
type Presence interface {
	Bind(ctx context.Context, userID, handle string) error
	Unbind(ctx context.Context, userID string) error
	Release(ctx context.Context, userID, handle string) error
	HandleOf(ctx context.Context, userID string) (string, bool, error)
	UserInfo(ctx context.Context, userID string) (*models.User, error)
}

// Notifier signals a user's live connection that something new is waiting.
type Notifier interface {
	NotifyRecipient(ctx context.Context, userID string) error
}

type eventHandler func(ctx context.Context, s *Session, data json.RawMessage) error

// Manager owns the session lifecycle and routes bound sessions' events.
type Manager struct {
	hub      *Hub
	chat     service.ChatService
	presence Presence
	notifier Notifier
	timeout  time.Duration
	handlers map[EventName]eventHandler
	logger   *zap.Logger
}

func NewManager(hub *Hub, chat service.ChatService, presence Presence, notifier Notifier, cfg *config.Config, logger *zap.Logger) *Manager {
	m := &Manager{
		hub:      hub,
		chat:     chat,
		presence: presence,
		notifier: notifier,
		timeout:  cfg.Chat.LookupDeadline(),
		logger:   logger.Named("session"),
	}
	m.handlers = map[EventName]eventHandler{
		EventChatList:        m.handleChatList,
		EventAddMessage:      m.handleAddMessage,
		EventStatusChange:    m.handleStatusChange,
		EventNotifyRecipient: m.handleNotifyRecipient,
		EventLogout:          m.handleLogout,
	}
	return m
}

// Connect binds conn to userID. On failure the session never becomes bound
// and the caller must close the connection. conn is registered with the hub
// before the bind so a delivery resolving the new handle always finds it.
func (m *Manager) Connect(ctx context.Context, conn Conn, userID string) (*Session, error) {
	s := newSession(conn)

	userID, err := common.RequireField("userId", userID)
	if err == nil {
		m.hub.Add(conn)
		ctx, cancel := m.bounded(ctx)
		err = m.presence.Bind(ctx, userID, conn.ID())
		cancel()
		if err != nil {
			m.hub.Remove(conn)
		}
	}
	metrics.RecordBind(err)
	if err != nil {
		s.close()
		m.logger.Info("connection refused", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	s.bind(userID)
	m.logger.Info("user connected", zap.String("user_id", userID), zap.String("handle", conn.ID()))
	return s, nil
}

// Dispatch runs the handler for frame. Handler failures are reported to the
// originating connection only.
func (m *Manager) Dispatch(ctx context.Context, s *Session, frame Frame) {
	if s.State() != StateBound {
		return
	}

	h, ok := m.handlers[frame.Event]
	if !ok {
		m.reply(s, EventError, ErrorReply{
			Error:   true,
			Message: fmt.Sprintf("unknown event %q", frame.Event),
			Event:   frame.Event,
		})
		metrics.RecordEvent("unknown", common.ErrValidation)
		return
	}

	ctx, cancel := m.bounded(ctx)
	defer cancel()

	err := h(ctx, s, frame.Data)
	metrics.RecordEvent(string(frame.Event), err)
	if err != nil {
		m.logger.Debug("event failed",
			zap.String("event", string(frame.Event)),
			zap.String("user_id", s.UserID()),
			zap.Error(err))
	}
}

// Disconnect runs the offline side effects for a session that ended without
// logging out: its presence is released and everyone else is told.
func (m *Manager) Disconnect(ctx context.Context, s *Session) {
	m.hub.Remove(s.conn)
	if !s.close() {
		return
	}

	ctx, cancel := m.bounded(ctx)
	defer cancel()

	if err := m.presence.Release(ctx, s.UserID(), s.Handle()); err != nil {
		m.logger.Warn("failed to release presence", zap.String("user_id", s.UserID()), zap.Error(err))
	}
	m.broadcastOffline(ctx, s)
	m.logger.Info("user disconnected", zap.String("user_id", s.UserID()), zap.String("handle", s.Handle()))
}

func (m *Manager) handleChatList(ctx context.Context, s *Session, data json.RawMessage) error {
	var req ChatListRequest
	err := decode(data, &req)
	if err == nil {
		err = m.checkIdentity(s, req.UserID)
	}

	var list []*models.ChatListEntry
	if err == nil {
		list, err = m.chat.GetChatList(ctx, req.UserID)
	}
	if err != nil {
		m.reply(s, EventChatListResponse, ChatListResponse{
			Error:    true,
			Message:  common.MessageOf(err),
			ChatList: []*models.ChatListEntry{},
		})
		return err
	}

	m.reply(s, EventChatListResponse, ChatListResponse{ChatList: list})
	return nil
}

func (m *Manager) handleAddMessage(ctx context.Context, s *Session, data json.RawMessage) error {
	var req AddMessageRequest
	err := decode(data, &req)
	if err == nil {
		err = m.checkIdentity(s, req.FromUserID)
	}

	var result *service.SendResult
	if err == nil {
		result, err = m.chat.SendMessage(ctx, req.FromUserID, req.ToUserID, req.Content)
	}
	if err != nil {
		m.reply(s, EventAddMessageResponse, AddMessageResponse{
			Error:   true,
			Message: common.MessageOf(err),
		})
		return err
	}

	m.reply(s, EventAddMessageAck, AddMessageAck{
		ChatMsg:   result.Message,
		Delivered: result.Delivered,
	})
	return nil
}

func (m *Manager) handleStatusChange(ctx context.Context, s *Session, data json.RawMessage) error {
	var req StatusChangeRequest
	err := decode(data, &req)
	if err == nil {
		err = m.checkIdentity(s, req.UserID)
	}

	var info *models.User
	if err == nil {
		info, err = m.presence.UserInfo(ctx, req.UserID)
	}
	if err != nil {
		m.reply(s, EventStatusChangeResponse, StatusChangeResponse{
			Error:   true,
			Message: fmt.Sprintf("Failed to update the user status to %t", req.Status),
			UserID:  req.UserID,
		})
		return err
	}

	m.hub.BroadcastExcept(s.Handle(), OutFrame{
		Event: EventStatusChangeResponse,
		Data: StatusChangeResponse{
			UserOnline: req.Status,
			UserInfo:   info.Public(),
		},
	})
	return nil
}

func (m *Manager) handleNotifyRecipient(ctx context.Context, s *Session, data json.RawMessage) error {
	var req NotifyRecipientRequest
	err := decode(data, &req)
	if err == nil {
		_, err = common.RequireField("userId", req.UserID)
	}
	if err == nil {
		err = m.notifier.NotifyRecipient(ctx, req.UserID)
	}
	if err != nil {
		msg := "Notification could not be sent"
		if common.KindOf(err) == common.KindValidation {
			msg = common.MessageOf(err)
		}
		m.reply(s, EventNewNotification, NotificationPush{Error: true, Message: msg})
		return err
	}
	return nil
}

// handleLogout unbinds the user, answers, tells everyone else and then closes
// the connection once the queued frames are written. A session that a newer
// connection has superseded only closes itself.
func (m *Manager) handleLogout(ctx context.Context, s *Session, data json.RawMessage) error {
	var req LogoutRequest
	err := decode(data, &req)
	if err == nil {
		_, err = common.RequireField("userId", req.UserID)
	}
	if err == nil {
		err = m.checkIdentity(s, req.UserID)
	}
	var superseded bool
	if err == nil {
		superseded, err = m.unbindIfCurrent(ctx, s)
	}
	if err != nil {
		m.reply(s, EventLogoutResponse, LogoutResponse{
			Error:   true,
			Message: "Failed to set user to offline",
			UserID:  req.UserID,
		})
		return err
	}

	m.reply(s, EventLogoutResponse, LogoutResponse{
		Message: "User is now offline",
		UserID:  s.UserID(),
	})

	m.hub.Remove(s.conn)
	if s.close() && !superseded {
		m.broadcastOffline(ctx, s)
	}
	if err := s.conn.Close(); err != nil {
		m.logger.Debug("close after logout failed", zap.String("user_id", s.UserID()), zap.Error(err))
	}
	m.logger.Info("user logged out", zap.String("user_id", s.UserID()))
	return nil
}

// unbindIfCurrent unbinds the session's user unless another connection now
// holds the binding. It reports whether the session was superseded.
func (m *Manager) unbindIfCurrent(ctx context.Context, s *Session) (bool, error) {
	handle, ok, err := m.presence.HandleOf(ctx, s.UserID())
	if err != nil {
		return false, err
	}
	if ok && handle != s.Handle() {
		m.logger.Debug("logout from superseded connection",
			zap.String("user_id", s.UserID()),
			zap.String("handle", s.Handle()),
			zap.String("current", handle))
		return true, nil
	}
	return false, m.presence.Unbind(ctx, s.UserID())
}

func (m *Manager) broadcastOffline(ctx context.Context, s *Session) {
	resp := StatusChangeResponse{UserOnline: false, UserID: s.UserID()}
	if info, err := m.presence.UserInfo(ctx, s.UserID()); err == nil {
		resp.UserInfo = info.Public()
	} else {
		m.logger.Warn("offline broadcast without user info", zap.String("user_id", s.UserID()), zap.Error(err))
	}
	m.hub.BroadcastExcept(s.Handle(), OutFrame{Event: EventStatusChangeResponse, Data: resp})
}

// checkIdentity rejects payloads acting for a user other than the one bound
// to the session. An empty id is left for the service to reject.
func (m *Manager) checkIdentity(s *Session, claimed string) error {
	if claimed == "" || claimed == s.UserID() {
		return nil
	}
	return common.NewValidationError("userId does not match the connected user")
}

func (m *Manager) reply(s *Session, event EventName, data interface{}) {
	if err := s.send(event, data); err != nil {
		metrics.RecordDelivery(metrics.OutcomeDropped)
		m.logger.Warn("dropping reply",
			zap.String("event", string(event)),
			zap.String("user_id", s.UserID()),
			zap.Error(err))
	}
}

func (m *Manager) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, m.timeout)
}

func decode(data json.RawMessage, dst interface{}) error {
	if len(data) == 0 {
		return common.NewValidationError("event payload is required")
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return common.NewValidationError("malformed event payload")
	}
	return nil
}
