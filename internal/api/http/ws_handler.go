package http

import (
	"net/http"

	"drivehire-backend/internal/domain"
	"drivehire-backend/internal/logger"
	"drivehire-backend/internal/realtime"
	"drivehire-backend/internal/security"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WSHandler upgrades authenticated clients onto the realtime hub.
// Browsers cannot set an Authorization header on a websocket request,
// so the token is also accepted as a query parameter.
type WSHandler struct {
	hub    *realtime.Hub
	tokens security.TokenManager
}

func NewWSHandler(hub *realtime.Hub, tokens security.TokenManager) *WSHandler {
	return &WSHandler{hub: hub, tokens: tokens}
}

func (h *WSHandler) Serve(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		token := r.URL.Query().Get("token")
		if token == "" {
			writeError(w, domain.ErrUnauthorized)
			return
		}
		principal, err = h.tokens.ValidateToken(token)
		if err != nil {
			writeError(w, domain.ErrUnauthorized)
			return
		}
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	client := h.hub.NewClient(principal.UserID, conn)
	go client.WritePump()
	go client.ReadPump()
}

func (h *WSHandler) Register(router *mux.Router) {
	router.HandleFunc("/ws", h.Serve).Methods(http.MethodGet)
}
