// Package httpapi exposes the procurement and supply-chain services over
// HTTP. Routing is chi with wildcard CORS; every response body is JSON.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/sells-group/visionflow/internal/coerce"
	"github.com/sells-group/visionflow/internal/fetch"
	"github.com/sells-group/visionflow/internal/model"
	"github.com/sells-group/visionflow/internal/resilience"
	"github.com/sells-group/visionflow/internal/vision"
)

func corsMiddleware() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("response encode failed", zap.Error(err))
	}
}

// writeError maps service errors onto HTTP statuses. Anything unrecognized is
// an internal error.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var vErr *model.ValidationError
	var rErr *resilience.RetriesExhaustedError
	var mErr *coerce.MalformedResponseError
	var tErr *fetch.TimeoutError
	switch {
	case errors.As(err, &vErr):
		status = http.StatusBadRequest
	case errors.As(err, &rErr):
		status = http.StatusTooManyRequests
	case errors.As(err, &mErr):
		status = http.StatusBadGateway
	case errors.Is(err, vision.ErrNotConfigured):
		status = http.StatusServiceUnavailable
	case errors.As(err, &tErr):
		status = http.StatusGatewayTimeout
	}

	if status == http.StatusInternalServerError {
		zap.L().Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, map[string]string{"detail": err.Error()})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid JSON request: " + err.Error()})
		return false
	}
	return true
}
