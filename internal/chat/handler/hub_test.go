package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"tradeforce/internal/models"
)

func TestHub_SendTo(t *testing.T) {
	hub := NewHub(zap.NewNop())
	conn := newFakeConn("h1")
	hub.Add(conn)

	assert.True(t, hub.SendTo("h1", OutFrame{Event: EventChatListResponse}))
	assert.False(t, hub.SendTo("missing", OutFrame{Event: EventChatListResponse}))

	conn.full = true
	assert.False(t, hub.SendTo("h1", OutFrame{Event: EventChatListResponse}))
	assert.Len(t, conn.sent(), 1)
}

func TestHub_RemoveOnlyCurrentConn(t *testing.T) {
	hub := NewHub(zap.NewNop())
	old := newFakeConn("h1")
	replacement := newFakeConn("h1")
	hub.Add(old)
	hub.Add(replacement)

	hub.Remove(old)
	got, ok := hub.Get("h1")
	assert.True(t, ok)
	assert.Same(t, replacement, got)

	hub.Remove(replacement)
	assert.Equal(t, 0, hub.Count())
}

func TestHub_BroadcastExcept(t *testing.T) {
	hub := NewHub(zap.NewNop())
	a, b, c := newFakeConn("a"), newFakeConn("b"), newFakeConn("c")
	c.full = true
	for _, conn := range []*fakeConn{a, b, c} {
		hub.Add(conn)
	}

	sent := hub.BroadcastExcept("a", OutFrame{Event: EventStatusChangeResponse})
	assert.Equal(t, 1, sent)
	assert.Empty(t, a.sent())
	assert.Len(t, b.sent(), 1)
	assert.Empty(t, c.sent())
}

func TestHub_Deliver(t *testing.T) {
	hub := NewHub(zap.NewNop())
	conn := newFakeConn("h-bob")
	hub.Add(conn)
	msg := &models.Message{ID: "m1", FromUserID: "alice", ToUserID: "bob"}

	assert.True(t, hub.Deliver("h-bob", msg))
	assert.False(t, hub.Deliver("h-gone", msg))

	out := conn.last(t)
	assert.Equal(t, EventAddMessageResponse, out.Event)
	resp := out.Data.(AddMessageResponse)
	assert.False(t, resp.Error)
	assert.Same(t, msg, resp.ChatMsg)
}

func TestHub_PushNotification(t *testing.T) {
	hub := NewHub(zap.NewNop())
	conn := newFakeConn("h1")
	hub.Add(conn)

	n := &models.Notification{ID: "n1", UserID: "bob", Type: models.NewMessageType}
	assert.True(t, hub.PushNotification("h1", n))

	out := conn.last(t)
	assert.Equal(t, EventNewNotification, out.Event)
	assert.Same(t, n, out.Data.(NotificationPush).Notification)
}

func TestSessionState_String(t *testing.T) {
	assert.Equal(t, "connecting", StateConnecting.String())
	assert.Equal(t, "bound", StateBound.String())
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "unknown", SessionState(9).String())
}
