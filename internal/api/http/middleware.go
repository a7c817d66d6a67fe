package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"drivehire-backend/internal/domain"
	"drivehire-backend/internal/logger"
	"drivehire-backend/internal/security"

	"github.com/gorilla/mux"
)

type contextKey string

const principalKey contextKey = "principal"

// AuthMiddleware validates the bearer token and stores the resulting
// principal in the request context.
func AuthMiddleware(tokens security.TokenManager) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeError(w, domain.ErrUnauthorized)
				return
			}
			principal, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeError(w, domain.ErrUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// principalFrom extracts the authenticated principal set by
// AuthMiddleware.
func principalFrom(r *http.Request) (*security.Principal, error) {
	principal, ok := r.Context().Value(principalKey).(*security.Principal)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return principal, nil
}

// LoggingMiddleware logs one line per request with the outcome status.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", recorder.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &domain.ValidationError{Field: name, Msg: "must be a positive integer"}
	}
	return id, nil
}

// pagination reads page/page_size query parameters with defaults.
func pagination(r *http.Request) (page, pageSize int32) {
	page = 1
	pageSize = 20
	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 32); err == nil && v > 0 {
			page = int32(v)
		}
	}
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 32); err == nil && v > 0 && v <= 100 {
			pageSize = int32(v)
		}
	}
	return page, pageSize
}
