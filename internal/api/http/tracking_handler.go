package http

import (
	"net/http"

	"drivehire-backend/internal/service"

	"github.com/gorilla/mux"
)

type TrackingHandler struct {
	tracking service.TrackingService
}

func NewTrackingHandler(tracking service.TrackingService) *TrackingHandler {
	return &TrackingHandler{tracking: tracking}
}

type trackingPayload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Heading   float64 `json:"heading"`
}

func (h *TrackingHandler) Record(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}
	bookingID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var payload trackingPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}
	if err := h.tracking.Record(r.Context(), principal, bookingID, payload.Latitude, payload.Longitude, payload.Heading); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, nil)
}

func (h *TrackingHandler) Latest(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}
	bookingID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	point, err := h.tracking.Latest(r.Context(), principal, bookingID)
	if err != nil {
		writeError(w, err)
		return
	}
	if point == nil {
		writeJSON(w, http.StatusNoContent, nil)
		return
	}
	writeJSON(w, http.StatusOK, point)
}

func (h *TrackingHandler) Register(router *mux.Router) {
	router.HandleFunc("/bookings/{id}/tracking", h.Record).Methods(http.MethodPost)
	router.HandleFunc("/bookings/{id}/tracking", h.Latest).Methods(http.MethodGet)
}
