package http

import (
	"net/http"

	"drivehire-backend/internal/domain"
	"drivehire-backend/internal/service"

	"github.com/gorilla/mux"
)

type ReviewHandler struct {
	reviews service.ReviewService
}

func NewReviewHandler(reviews service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

type addReviewPayload struct {
	Rating  int32  `json:"rating"`
	Comment string `json:"comment"`
}

func (h *ReviewHandler) Add(w http.ResponseWriter, r *http.Request) {
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
	var payload addReviewPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}
	review, err := h.reviews.Add(r.Context(), principal, bookingID, payload.Rating, payload.Comment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

type reviewListResponse struct {
	Reviews []domain.Review `json:"reviews"`
	Total   int32           `json:"total"`
}

func (h *ReviewHandler) ListForDriver(w http.ResponseWriter, r *http.Request) {
	driverID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	page, pageSize := pagination(r)
	reviews, total, err := h.reviews.ListForDriver(r.Context(), driverID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviewListResponse{Reviews: reviews, Total: total})
}

func (h *ReviewHandler) Register(router *mux.Router) {
	router.HandleFunc("/bookings/{id}/review", h.Add).Methods(http.MethodPost)
	router.HandleFunc("/drivers/{id}/reviews", h.ListForDriver).Methods(http.MethodGet)
}
