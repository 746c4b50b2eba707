package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/fairyhunter13/skillbridge-assessor/internal/adapter/observability"
	"github.com/fairyhunter13/skillbridge-assessor/internal/domain"
)

// errorBody is the flat error shape the frontend reads.
type errorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain sentinels to HTTP statuses. An unexpected error is
// the one case whose own message reaches the caller.
func writeError(w http.ResponseWriter, r *http.Request, err error, details any) {
	status, code, msg := http.StatusInternalServerError, "INTERNAL", "internal server error"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		status, code, msg = http.StatusBadRequest, "INVALID_ARGUMENT", err.Error()
	case errors.Is(err, domain.ErrUpstreamTimeout):
		status, code, msg = http.StatusServiceUnavailable, "UPSTREAM_TIMEOUT", "assessment service timed out"
	case domain.IsGatewayFailure(err):
		status, code, msg = http.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE", "assessment service unavailable"
	}
	if status >= http.StatusInternalServerError {
		observability.LoggerFromContext(r.Context()).Error("request failed",
			slog.String("path", r.URL.Path), slog.Int("status", status), slog.Any("error", err))
	}
	writeJSON(w, status, errorBody{Error: msg, Code: code, Details: details})
}
