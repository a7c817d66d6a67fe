package http

import (
	"net/http"

	"drivehire-backend/internal/domain"
	"drivehire-backend/internal/service"

	"github.com/gorilla/mux"
)

type NotificationHandler struct {
	notifications service.NotificationService
}

func NewNotificationHandler(notifications service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

type notificationListResponse struct {
	Notifications []domain.Notification `json:"notifications"`
	Total         int32                 `json:"total"`
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}
	page, pageSize := pagination(r)
	notifications, total, err := h.notifications.List(r.Context(), principal, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notificationListResponse{Notifications: notifications, Total: total})
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.notifications.MarkAsRead(r.Context(), principal, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"read": true})
}

func (h *NotificationHandler) Register(router *mux.Router) {
	router.HandleFunc("/notifications", h.List).Methods(http.MethodGet)
	router.HandleFunc("/notifications/{id}/read", h.MarkAsRead).Methods(http.MethodPost)
}
