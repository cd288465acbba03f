package handler

import (
	"sync/atomic"

	"tradeforce/internal/metrics"
)

type SessionState int32

const (
	StateConnecting SessionState = iota
	StateBound
	StateClosed
)

func (s SessionState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateBound:
		return "bound"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Session is the server side of one live connection. Events for a session
// are handled one at a time in arrival order.
type Session struct {
	conn   Conn
	userID string
	state  atomic.Int32
}

func newSession(conn Conn) *Session {
	s := &Session{conn: conn}
	s.state.Store(int32(StateConnecting))
	return s
}

func (s *Session) UserID() string { return s.userID }

func (s *Session) Handle() string { return s.conn.ID() }

func (s *Session) State() SessionState {
	return SessionState(s.state.Load())
}

func (s *Session) bind(userID string) {
	s.userID = userID
	s.state.Store(int32(StateBound))
}

// close moves the session to Closed and reports whether it was bound, so
// that exactly one caller runs the offline side effects.
func (s *Session) close() bool {
	prev := SessionState(s.state.Swap(int32(StateClosed)))
	if prev == StateBound {
		metrics.RecordDisconnect()
		return true
	}
	return false
}

func (s *Session) send(event EventName, data interface{}) error {
	return s.conn.Send(OutFrame{Event: event, Data: data})
}
