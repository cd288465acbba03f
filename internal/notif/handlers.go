package notif

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"tradeforce/internal/common"
	"tradeforce/internal/models"
)

// NotificationHandler serves /notifications.
type NotificationHandler struct {
	service *NotificationService
	logger  *zap.Logger
}

func NewNotificationHandler(service *NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		logger:  logger.Named("notif-http"),
	}
}

func (h *NotificationHandler) RegisterRoutes(r *mux.Router) {
	sub := r.PathPrefix("/notifications").Subrouter()
	sub.HandleFunc("", h.create).Methods(http.MethodPost)
	sub.HandleFunc("/users/{userId}", h.listForUser).Methods(http.MethodGet)
	sub.HandleFunc("/users/{userId}/read", h.markAllAsRead).Methods(http.MethodPatch)
	sub.HandleFunc("/{notificationId}/read", h.markAsRead).Methods(http.MethodPatch)
}

type createNotificationRequest struct {
	UserID  string                  `json:"userId"`
	Type    models.NotificationType `json:"type"`
	Content string                  `json:"content"`
}

func (h *NotificationHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, r, common.NewValidationError("invalid request body"))
		return
	}

	n, err := h.service.SendNotification(r.Context(), req.UserID, req.Type, req.Content)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusCreated, n)
}

func (h *NotificationHandler) listForUser(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.GetUserNotifications(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if list == nil {
		list = []*models.Notification{}
	}
	common.WriteJSON(w, http.StatusOK, list)
}

func (h *NotificationHandler) markAsRead(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["notificationId"]
	if err := h.service.MarkAsRead(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]string{"notificationId": id})
}

func (h *NotificationHandler) markAllAsRead(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.MarkAllAsRead(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]int64{"modified": n})
}

func (h *NotificationHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if common.KindOf(err) == common.KindPersistence {
		h.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	common.WriteError(w, err)
}
