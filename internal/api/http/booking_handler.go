package http

import (
	"net/http"

	"drivehire-backend/internal/domain"
	"drivehire-backend/internal/service"

	"github.com/gorilla/mux"
)

type BookingHandler struct {
	bookings service.BookingService
}

func NewBookingHandler(bookings service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

type createBookingPayload struct {
	DriverID       int64  `json:"driver_id"`
	ServiceKind    string `json:"service_kind"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	StartTime      string `json:"start_time"`
	PickupLocation string `json:"pickup_location"`
	Destination    string `json:"destination"`
	PassengerCount *int32 `json:"passenger_count"`
	CargoDetail    string `json:"cargo_detail"`
	Notes          string `json:"notes"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var payload createBookingPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}
	booking, driverContact, err := h.bookings.Create(r.Context(), principal, service.CreateBookingRequest{
		DriverID:       payload.DriverID,
		ServiceKind:    domain.ServiceKind(payload.ServiceKind),
		StartDate:      payload.StartDate,
		EndDate:        payload.EndDate,
		StartTime:      payload.StartTime,
		PickupLocation: payload.PickupLocation,
		Destination:    payload.Destination,
		PassengerCount: payload.PassengerCount,
		CargoDetail:    payload.CargoDetail,
		Notes:          payload.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createBookingResponse{Booking: booking, Driver: driverContact})
}

type createBookingResponse struct {
	Booking *domain.Booking        `json:"booking"`
	Driver  *domain.ContactSummary `json:"driver"`
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
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
	detail, err := h.bookings.Get(r.Context(), principal, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

type transitionPayload struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

func (h *BookingHandler) Transition(w http.ResponseWriter, r *http.Request) {
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
	var payload transitionPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}
	booking, err := h.bookings.Transition(r.Context(), principal, id, domain.BookingStatus(payload.Status), payload.Note)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

type cancelPayload struct {
	Reason string `json:"reason"`
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
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
	var payload cancelPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}
	booking, err := h.bookings.Cancel(r.Context(), principal, id, payload.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

type bookingListResponse struct {
	Bookings []domain.Booking `json:"bookings"`
	Total    int32            `json:"total"`
}

func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}
	page, pageSize := pagination(r)
	bookings, total, err := h.bookings.ListMine(r.Context(), principal, r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookingListResponse{Bookings: bookings, Total: total})
}

func (h *BookingHandler) ListForDriver(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}
	page, pageSize := pagination(r)
	bookings, total, err := h.bookings.ListForDriver(r.Context(), principal, r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookingListResponse{Bookings: bookings, Total: total})
}

func (h *BookingHandler) Register(router *mux.Router) {
	router.HandleFunc("/bookings", h.Create).Methods(http.MethodPost)
	router.HandleFunc("/bookings", h.ListMine).Methods(http.MethodGet)
	router.HandleFunc("/bookings/assigned", h.ListForDriver).Methods(http.MethodGet)
	router.HandleFunc("/bookings/{id}", h.Get).Methods(http.MethodGet)
	router.HandleFunc("/bookings/{id}/status", h.Transition).Methods(http.MethodPatch)
	router.HandleFunc("/bookings/{id}/cancel", h.Cancel).Methods(http.MethodPost)
}
