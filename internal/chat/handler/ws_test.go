package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"tradeforce/internal/common"
	"tradeforce/internal/config"
	"tradeforce/internal/models"
)

type inFrame struct {
	Event EventName       `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func setupWSTest(t *testing.T, cfg *config.Config) (*managerFixture, string) {
	t.Helper()
	f := newManagerFixture(t)
	ws := NewWSServer(f.manager, cfg, zap.NewNop())

	// wait for every session to finish before the mocks are checked
	var wg sync.WaitGroup
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wg.Add(1)
		defer wg.Done()
		ws.ServeHTTP(w, r)
	}))
	t.Cleanup(func() {
		srv.Close()
		wg.Wait()
	})
	return f, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func wsTestConfig() *config.Config {
	return &config.Config{Chat: config.ChatConfig{
		PingInterval:   15,
		LookupTimeout:  1,
		SendBuffer:     8,
		AllowedOrigins: []string{"*"},
	}}
}

func readFrame(t *testing.T, conn *websocket.Conn) inFrame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var f inFrame
	require.NoError(t, conn.ReadJSON(&f))
	return f
}

func TestWSServer_ChatListRoundTrip(t *testing.T) {
	f, url := setupWSTest(t, wsTestConfig())

	released := make(chan struct{})
	f.presence.EXPECT().Bind(gomock.Any(), "alice", gomock.Any()).Return(nil)
	f.chat.EXPECT().GetChatList(gomock.Any(), "alice").Return([]*models.ChatListEntry{
		models.NewChatListEntry(&models.User{ID: "bob", UserName: "bob"}, 1),
	}, nil)
	f.presence.EXPECT().Release(gomock.Any(), "alice", gomock.Any()).
		DoAndReturn(func(context.Context, string, string) error {
			close(released)
			return nil
		})
	f.presence.EXPECT().UserInfo(gomock.Any(), "alice").Return(&models.User{ID: "alice"}, nil).AnyTimes()

	conn, _, err := websocket.DefaultDialer.Dial(url+"?userId=alice", nil)
	require.NoError(t, err)

	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"event": "chat-list",
		"data":  map[string]string{"userId": "alice"},
	}))

	out := readFrame(t, conn)
	assert.Equal(t, EventChatListResponse, out.Event)
	var resp struct {
		Error    bool `json:"error"`
		ChatList []struct {
			ID          string `json:"_id"`
			UnreadCount int    `json:"unreadCount"`
			SocketID    string `json:"socketId"`
		} `json:"chatList"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &resp))
	assert.False(t, resp.Error)
	require.Len(t, resp.ChatList, 1)
	assert.Equal(t, "bob", resp.ChatList[0].ID)
	assert.Equal(t, 1, resp.ChatList[0].UnreadCount)
	assert.Empty(t, resp.ChatList[0].SocketID)

	require.NoError(t, conn.Close())

	select {
	case <-released:
	case <-time.After(2 * time.Second):
		t.Fatal("presence was not released after disconnect")
	}
}

func TestWSServer_MalformedFrame(t *testing.T) {
	f, url := setupWSTest(t, wsTestConfig())
	f.presence.EXPECT().Bind(gomock.Any(), "alice", gomock.Any()).Return(nil)
	f.presence.EXPECT().Release(gomock.Any(), "alice", gomock.Any()).Return(nil).AnyTimes()
	f.presence.EXPECT().UserInfo(gomock.Any(), "alice").Return(&models.User{ID: "alice"}, nil).AnyTimes()

	conn, _, err := websocket.DefaultDialer.Dial(url+"?userId=alice", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))

	out := readFrame(t, conn)
	assert.Equal(t, EventError, out.Event)
}

func TestWSServer_BindFailureClosesConnection(t *testing.T) {
	f, url := setupWSTest(t, wsTestConfig())
	f.presence.EXPECT().Bind(gomock.Any(), "ghost", gomock.Any()).Return(common.NotFoundf("user ghost not found"))

	conn, _, err := websocket.DefaultDialer.Dial(url+"?userId=ghost", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.ClosePolicyViolation))
}

func TestWSServer_LogoutClosesAfterReply(t *testing.T) {
	f, url := setupWSTest(t, wsTestConfig())
	var handle string
	f.presence.EXPECT().Bind(gomock.Any(), "alice", gomock.Any()).DoAndReturn(
		func(ctx context.Context, userID, h string) error {
			handle = h
			return nil
		})
	f.presence.EXPECT().HandleOf(gomock.Any(), "alice").DoAndReturn(
		func(ctx context.Context, userID string) (string, bool, error) {
			return handle, true, nil
		})
	f.presence.EXPECT().Unbind(gomock.Any(), "alice").Return(nil)
	f.presence.EXPECT().UserInfo(gomock.Any(), "alice").Return(&models.User{ID: "alice"}, nil)

	conn, _, err := websocket.DefaultDialer.Dial(url+"?userId=alice", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"event": "logout",
		"data":  map[string]string{"userId": "alice"},
	}))

	out := readFrame(t, conn)
	assert.Equal(t, EventLogoutResponse, out.Event)

	_, _, err = conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure))
}

func TestWSServer_AuthRequired(t *testing.T) {
	cfg := wsTestConfig()
	cfg.Auth = config.AuthConfig{Enabled: true, JWTSecret: "s3cret"}
	f, url := setupWSTest(t, cfg)

	t.Run("missing token", func(t *testing.T) {
		_, resp, err := websocket.DefaultDialer.Dial(url+"?userId=alice", nil)
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("token for another user", func(t *testing.T) {
		tok, err := common.GenerateToken([]byte("s3cret"), "bob", time.Minute)
		require.NoError(t, err)
		_, resp, err := websocket.DefaultDialer.Dial(url+"?userId=alice&token="+tok, nil)
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid token binds the token's user", func(t *testing.T) {
		tok, err := common.GenerateToken([]byte("s3cret"), "alice", time.Minute)
		require.NoError(t, err)
		f.presence.EXPECT().Bind(gomock.Any(), "alice", gomock.Any()).Return(nil)
		f.presence.EXPECT().Release(gomock.Any(), "alice", gomock.Any()).Return(nil).AnyTimes()
		f.presence.EXPECT().UserInfo(gomock.Any(), "alice").Return(&models.User{ID: "alice"}, nil).AnyTimes()

		header := http.Header{}
		header.Set("auth-token", tok)
		conn, _, err := websocket.DefaultDialer.Dial(url, header)
		require.NoError(t, err)
		conn.Close()
	})
}
