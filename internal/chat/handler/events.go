package handler

import (
	"encoding/json"

	"tradeforce/internal/models"
)

type EventName string

const (
	EventChatList             EventName = "chat-list"
	EventChatListResponse     EventName = "chat-list-response"
	EventAddMessage           EventName = "add-message"
	EventAddMessageResponse   EventName = "add-message-response"
	EventAddMessageAck        EventName = "add-message-ack"
	EventStatusChange         EventName = "status-change"
	EventStatusChangeResponse EventName = "status-change-response"
	EventNotifyRecipient      EventName = "notify-recipient"
	EventNewNotification      EventName = "new-notification"
	EventLogout               EventName = "logout"
	EventLogoutResponse       EventName = "logout-response"
	EventError                EventName = "error"
)

// Frame is an inbound client event. Data is decoded by the event's handler.
type Frame struct {
	Event EventName       `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// OutFrame is every server-to-client event.
type OutFrame struct {
	Event EventName   `json:"event"`
	Data  interface{} `json:"data"`
}

type ChatListRequest struct {
	UserID string `json:"userId"`
}

type ChatListResponse struct {
	Error    bool                    `json:"error"`
	Message  string                  `json:"message,omitempty"`
	ChatList []*models.ChatListEntry `json:"chatList"`
}

type AddMessageRequest struct {
	FromUserID string `json:"fromUserId"`
	ToUserID   string `json:"toUserId"`
	Content    string `json:"content"`
}

type AddMessageResponse struct {
	Error   bool            `json:"error"`
	Message string          `json:"message,omitempty"`
	ChatMsg *models.Message `json:"chatMsg,omitempty"`
}

// AddMessageAck tells the sender the message is stored and whether the
// recipient got a live push.
type AddMessageAck struct {
	Error     bool            `json:"error"`
	ChatMsg   *models.Message `json:"chatMsg"`
	Delivered bool            `json:"delivered"`
}

type StatusChangeRequest struct {
	UserID string `json:"userId"`
	Status bool   `json:"status"`
}

type StatusChangeResponse struct {
	Error      bool               `json:"error"`
	Message    string             `json:"message,omitempty"`
	UserOnline bool               `json:"userOnline"`
	UserInfo   *models.PublicUser `json:"userInfo,omitempty"`
	UserID     string             `json:"userId,omitempty"`
}

type NotifyRecipientRequest struct {
	UserID string `json:"userId"`
}

type NotificationPush struct {
	Error        bool                 `json:"error"`
	Message      string               `json:"message,omitempty"`
	Notification *models.Notification `json:"notification,omitempty"`
}

type LogoutRequest struct {
	UserID string `json:"userId"`
}

type LogoutResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

type ErrorReply struct {
	Error   bool      `json:"error"`
	Message string    `json:"message"`
	Event   EventName `json:"event,omitempty"`
}
