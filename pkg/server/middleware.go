package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	archerrors "github.com/NVIDIA/arch-stack/pkg/errors"
)

type contextKey string

const contextKeyRequestID contextKey = "request-id"

// withMiddleware wraps an API handler with request identification, rate
// limiting, and access logging.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		r = r.WithContext(context.WithValue(r.Context(), contextKeyRequestID, requestID))
		w.Header().Set("X-Request-ID", requestID)
		w.Header().Set("X-API-Version", negotiateAPIVersion(r))

		if !s.limiter.Allow() {
			WriteError(w, r, http.StatusTooManyRequests,
				archerrors.ErrCodeRateLimitExceeded, "rate limit exceeded", true, nil)
			return
		}

		start := time.Now()
		next(w, r)
		slog.Debug("handled request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", requestID),
			slog.Duration("duration", time.Since(start)),
		)
	}
}

// requireGet rejects non-GET methods with METHOD_NOT_ALLOWED.
func requireGet(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			WriteError(w, r, http.StatusMethodNotAllowed,
				archerrors.ErrCodeMethodNotAllowed, "method not allowed", false,
				map[string]any{"method": r.Method})
			return
		}
		next(w, r)
	}
}
