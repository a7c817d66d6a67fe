package http

import (
	"net/http"

	"drivehire-backend/internal/domain"
	"drivehire-backend/internal/service"

	"github.com/gorilla/mux"
)

type DriverHandler struct {
	drivers service.DriverService
}

func NewDriverHandler(drivers service.DriverService) *DriverHandler {
	return &DriverHandler{drivers: drivers}
}

type driverListResponse struct {
	Drivers []domain.Driver `json:"drivers"`
	Total   int32           `json:"total"`
}

func (h *DriverHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	drivers, total, err := h.drivers.ListAvailable(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, driverListResponse{Drivers: drivers, Total: total})
}

func (h *DriverHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	driver, err := h.drivers.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, driver)
}

type setVerifiedPayload struct {
	Verified bool `json:"verified"`
}

func (h *DriverHandler) SetVerified(w http.ResponseWriter, r *http.Request) {
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
	var payload setVerifiedPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}
	if err := h.drivers.SetVerified(r.Context(), principal, id, payload.Verified); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"verified": payload.Verified})
}

type setAcceptingPayload struct {
	Accepting bool `json:"accepting"`
}

func (h *DriverHandler) SetAccepting(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var payload setAcceptingPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}
	if err := h.drivers.SetAccepting(r.Context(), principal, payload.Accepting); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"accepting": payload.Accepting})
}

func (h *DriverHandler) Register(router *mux.Router) {
	router.HandleFunc("/drivers", h.ListAvailable).Methods(http.MethodGet)
	router.HandleFunc("/drivers/me/accepting", h.SetAccepting).Methods(http.MethodPut)
	router.HandleFunc("/drivers/{id}", h.Get).Methods(http.MethodGet)
	router.HandleFunc("/drivers/{id}/verify", h.SetVerified).Methods(http.MethodPut)
}
