package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"tradeforce/internal/chat/service"
	"tradeforce/internal/common"
	"tradeforce/internal/models"
)

// MessageHandler serves the message REST routes under /api/messages.
type MessageHandler struct {
	chat   service.ChatService
	logger *zap.Logger
}

func NewMessageHandler(chat service.ChatService, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{chat: chat, logger: logger.Named("messages-http")}
}

func (h *MessageHandler) RegisterRoutes(r *mux.Router) {
	sub := r.PathPrefix("/messages").Subrouter()
	sub.HandleFunc("", h.conversation).Methods(http.MethodGet)
	sub.HandleFunc("", h.create).Methods(http.MethodPost)
	sub.HandleFunc("/allMsgs", h.all).Methods(http.MethodGet)
	sub.HandleFunc("/unread/{userId}", h.unreadSummary).Methods(http.MethodGet)
	sub.HandleFunc("/unread/{fromUserId}/{toUserId}", h.unreadCount).Methods(http.MethodGet)
	sub.HandleFunc("/markAllAsRead", h.markAllAsRead).Methods(http.MethodPatch)
	sub.HandleFunc("/markOneAsRead", h.markOneAsRead).Methods(http.MethodPatch)
}

type createMessageResponse struct {
	Error     bool            `json:"error"`
	ChatMsg   *models.Message `json:"chatMsg"`
	Delivered bool            `json:"delivered"`
}

type unreadSummaryResponse struct {
	UserID string         `json:"userId"`
	Unread map[string]int `json:"unread"`
	Total  int            `json:"total"`
}

type markAllRequest struct {
	FromUserID string `json:"fromUserId"`
	ToUserID   string `json:"toUserId"`
}

type markOneRequest struct {
	MessageID string `json:"messageId"`
}

func (h *MessageHandler) conversation(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	msgs, err := h.chat.GetConversation(r.Context(), q.Get("fromUserId"), q.Get("toUserId"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, nonNil(msgs))
}

func (h *MessageHandler) all(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.chat.AllMessages(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, nonNil(msgs))
}

func (h *MessageHandler) create(w http.ResponseWriter, r *http.Request) {
	var req AddMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, r, common.NewValidationError("invalid request body"))
		return
	}
	if uid, ok := common.UserIDFromContext(r.Context()); ok && req.FromUserID != "" && req.FromUserID != uid {
		h.fail(w, r, &common.AppError{Kind: common.KindUnauthorized, Message: "fromUserId does not match the token"})
		return
	}

	result, err := h.chat.SendMessage(r.Context(), req.FromUserID, req.ToUserID, req.Content)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusCreated, createMessageResponse{
		ChatMsg:   result.Message,
		Delivered: result.Delivered,
	})
}

func (h *MessageHandler) unreadSummary(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	summary, err := h.chat.UnreadSummary(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	total := 0
	for _, n := range summary {
		total += n
	}
	common.WriteJSON(w, http.StatusOK, unreadSummaryResponse{UserID: userID, Unread: summary, Total: total})
}

func (h *MessageHandler) unreadCount(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	n, err := h.chat.CountUnreadFrom(r.Context(), vars["fromUserId"], vars["toUserId"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]int64{"count": n})
}

func (h *MessageHandler) markAllAsRead(w http.ResponseWriter, r *http.Request) {
	var req markAllRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, r, common.NewValidationError("invalid request body"))
		return
	}
	if uid, ok := common.UserIDFromContext(r.Context()); ok && req.ToUserID != uid {
		h.fail(w, r, &common.AppError{Kind: common.KindUnauthorized, Message: "toUserId does not match the token"})
		return
	}
	n, err := h.chat.MarkAllAsRead(r.Context(), req.FromUserID, req.ToUserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]int64{"modified": n})
}

func (h *MessageHandler) markOneAsRead(w http.ResponseWriter, r *http.Request) {
	var req markOneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, r, common.NewValidationError("invalid request body"))
		return
	}
	if uid, ok := common.UserIDFromContext(r.Context()); ok {
		msg, err := h.chat.GetMessage(r.Context(), req.MessageID)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		if msg.ToUserID != uid {
			h.fail(w, r, &common.AppError{Kind: common.KindUnauthorized, Message: "message is not addressed to the token's user"})
			return
		}
	}
	if err := h.chat.MarkOneAsRead(r.Context(), req.MessageID); err != nil {
		h.fail(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]string{"messageId": req.MessageID})
}

func (h *MessageHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if common.KindOf(err) == common.KindPersistence {
		h.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	common.WriteError(w, err)
}

func nonNil(msgs []*models.Message) []*models.Message {
	if msgs == nil {
		return []*models.Message{}
	}
	return msgs
}
