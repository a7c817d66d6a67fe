package http

import (
	"net/http"

	"drivehire-backend/internal/realtime"
	"drivehire-backend/internal/security"
	"drivehire-backend/internal/service"
	"drivehire-backend/internal/storage"

	"github.com/gorilla/mux"
)

// RouterDeps bundles everything the HTTP surface needs.
type RouterDeps struct {
	Bookings      service.BookingService
	Payments      service.PaymentService
	Reviews       service.ReviewService
	Drivers       service.DriverService
	Notifications service.NotificationService
	Tracking      service.TrackingService
	ProofStore    storage.Store
	MaxFileSizeMB int64
	Hub           *realtime.Hub
	Tokens        security.TokenManager
}

// NewRouter assembles the full route table under /api/v1. Everything
// except the health probe and the websocket endpoint requires a valid
// bearer token; the websocket endpoint does its own token check because
// browser clients pass it as a query parameter.
func NewRouter(deps RouterDeps) *mux.Router {
	root := mux.NewRouter()
	root.Use(LoggingMiddleware)

	root.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := root.PathPrefix("/api/v1").Subrouter()

	NewWSHandler(deps.Hub, deps.Tokens).Register(api)

	authed := api.NewRoute().Subrouter()
	authed.Use(AuthMiddleware(deps.Tokens))

	NewBookingHandler(deps.Bookings).Register(authed)
	NewPaymentHandler(deps.Payments).Register(authed)
	NewReviewHandler(deps.Reviews).Register(authed)
	NewDriverHandler(deps.Drivers).Register(authed)
	NewNotificationHandler(deps.Notifications).Register(authed)
	NewTrackingHandler(deps.Tracking).Register(authed)
	NewProofHandler(deps.ProofStore, deps.MaxFileSizeMB).Register(authed)

	return root
}
