package http

import (
	"net/http"

	"drivehire-backend/internal/domain"
	"drivehire-backend/internal/service"

	"github.com/gorilla/mux"
)

type PaymentHandler struct {
	payments service.PaymentService
}

func NewPaymentHandler(payments service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

type submitPaymentPayload struct {
	Kind     string `json:"kind"`
	Method   string `json:"method"`
	Amount   int64  `json:"amount"`
	ProofRef string `json:"proof_ref"`
	Notes    string `json:"notes"`
}

type submitPaymentResponse struct {
	Payment *domain.Payment `json:"payment"`
	Booking *domain.Booking `json:"booking"`
}

func (h *PaymentHandler) Submit(w http.ResponseWriter, r *http.Request) {
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
	var payload submitPaymentPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}
	payment, booking, err := h.payments.Submit(r.Context(), principal, bookingID, service.SubmitPaymentRequest{
		Kind:     domain.PaymentKind(payload.Kind),
		Method:   domain.PaymentMethod(payload.Method),
		Amount:   payload.Amount,
		ProofRef: payload.ProofRef,
		Notes:    payload.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, submitPaymentResponse{Payment: payment, Booking: booking})
}

type verifyPaymentPayload struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note"`
}

func (h *PaymentHandler) Verify(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}
	paymentID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var payload verifyPaymentPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}
	payment, err := h.payments.Verify(r.Context(), principal, paymentID, payload.Approve, payload.Note)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

type paymentHistoryResponse struct {
	Payments []domain.Payment       `json:"payments"`
	Summary  *domain.PaymentSummary `json:"summary"`
}

func (h *PaymentHandler) History(w http.ResponseWriter, r *http.Request) {
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
	payments, summary, err := h.payments.History(r.Context(), principal, bookingID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, paymentHistoryResponse{Payments: payments, Summary: summary})
}

func (h *PaymentHandler) Register(router *mux.Router) {
	router.HandleFunc("/bookings/{id}/payments", h.Submit).Methods(http.MethodPost)
	router.HandleFunc("/bookings/{id}/payments", h.History).Methods(http.MethodGet)
	router.HandleFunc("/payments/{id}/verify", h.Verify).Methods(http.MethodPost)
}
