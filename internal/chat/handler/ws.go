package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"tradeforce/internal/common"
	"tradeforce/internal/config"
)

const (
	writeWait          = 5 * time.Second
	defaultPingEvery   = 15 * time.Second
	defaultSendBuffer  = 64
	defaultMaxReadSize = 1 << 16
)

// WSServer upgrades GET /ws?userId=... and runs one session per connection.
type WSServer struct {
	upgrader    websocket.Upgrader
	manager     *Manager
	authEnabled bool
	secret      []byte
	pingEvery   time.Duration
	sendBuffer  int
	readLimit   int64
	logger      *zap.Logger
}

func NewWSServer(manager *Manager, cfg *config.Config, logger *zap.Logger) *WSServer {
	s := &WSServer{
		manager:     manager,
		authEnabled: cfg.Auth.Enabled,
		secret:      []byte(cfg.Auth.JWTSecret),
		pingEvery:   cfg.Chat.PingEvery(),
		sendBuffer:  cfg.Chat.SendBuffer,
		readLimit:   cfg.Chat.MaxMessageSize,
		logger:      logger.Named("ws"),
	}
	if s.pingEvery <= 0 {
		s.pingEvery = defaultPingEvery
	}
	if s.sendBuffer <= 0 {
		s.sendBuffer = defaultSendBuffer
	}
	if s.readLimit <= 0 {
		s.readLimit = defaultMaxReadSize
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(cfg.Chat.AllowedOrigins),
	}
	return s
}

func originChecker(allowed []string) func(r *http.Request) bool {
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if strings.EqualFold(o, origin) {
				return true
			}
		}
		return false
	}
}

func (s *WSServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.URL.Query().Get("userId"))

	if s.authEnabled {
		claims, err := common.ValidToken(s.secret, common.TokenFromRequest(r))
		if err != nil {
			common.WriteError(w, &common.AppError{Kind: common.KindUnauthorized, Message: "Invalid Token"})
			return
		}
		if userID == "" {
			userID = claims.UserID
		}
		if claims.UserID != userID {
			common.WriteError(w, &common.AppError{Kind: common.KindUnauthorized, Message: "token does not belong to userId"})
			return
		}
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}

	c := newWSConn(conn, uuid.NewString(), s.sendBuffer, s.pingEvery, s.logger)
	sess, err := s.manager.Connect(context.Background(), c, userID)
	if err != nil {
		reason := common.MessageOf(err)
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason),
			time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}

	go c.writeLoop()
	s.readLoop(c, sess)

	s.manager.Disconnect(context.Background(), sess)
	_ = c.Close()
	<-c.done
}

func (s *WSServer) readLoop(c *wsConn, sess *Session) {
	c.conn.SetReadLimit(s.readLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("ws read failed", zap.String("user_id", sess.UserID()), zap.Error(err))
			}
			return
		}

		var frame Frame
		if err := json.Unmarshal(data, &frame); err != nil || frame.Event == "" {
			_ = sess.send(EventError, ErrorReply{Error: true, Message: "malformed frame"})
			continue
		}
		s.manager.Dispatch(context.Background(), sess, frame)

		if sess.State() == StateClosed {
			return
		}
	}
}

// wsConn adapts a gorilla connection to Conn. Only writeLoop writes to the
// socket; everyone else goes through the send queue.
type wsConn struct {
	id        string
	conn      *websocket.Conn
	send      chan OutFrame
	closing   chan struct{}
	closeOnce sync.Once
	done      chan struct{}
	pingEvery time.Duration
	logger    *zap.Logger
}

func newWSConn(conn *websocket.Conn, id string, buffer int, pingEvery time.Duration, logger *zap.Logger) *wsConn {
	return &wsConn{
		id:        id,
		conn:      conn,
		send:      make(chan OutFrame, buffer),
		closing:   make(chan struct{}),
		done:      make(chan struct{}),
		pingEvery: pingEvery,
		logger:    logger,
	}
}

func (c *wsConn) ID() string { return c.id }

func (c *wsConn) Send(frame OutFrame) error {
	select {
	case <-c.closing:
		return ErrConnClosed
	default:
	}

	select {
	case c.send <- frame:
		return nil
	default:
		return ErrQueueFull
	}
}

func (c *wsConn) Close() error {
	c.closeOnce.Do(func() { close(c.closing) })
	return nil
}

func (c *wsConn) writeLoop() {
	ticker := time.NewTicker(c.pingEvery)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
		close(c.done)
	}()

	for {
		select {
		case frame := <-c.send:
			if err := c.write(frame); err != nil {
				c.logger.Debug("ws write failed", zap.String("handle", c.id), zap.Error(err))
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-c.closing:
			c.flush()
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}

func (c *wsConn) flush() {
	for {
		select {
		case frame := <-c.send:
			if err := c.write(frame); err != nil {
				return
			}
		default:
			return
		}
	}
}

func (c *wsConn) write(frame OutFrame) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(frame)
}
