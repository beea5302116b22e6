package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"grammarbot/internal/analyzer"
	"grammarbot/internal/service"
	"grammarbot/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status, Detail: msg})
}

// statusFor maps well-known service and analyzer errors to HTTP status codes.
func statusFor(err error) int {
	var he HTTPError
	switch {
	case service.IsStudentNotFound(err):
		return http.StatusNotFound
	case service.IsDuplicateName(err), service.IsInvalidInput(err):
		return http.StatusBadRequest
	case analyzer.IsTooBusy(err):
		return http.StatusTooManyRequests
	case analyzer.IsDependencyUnavailable(err):
		return http.StatusServiceUnavailable
	case analyzer.IsBackendFailure(err):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &he):
		return he.StatusCode()
	default:
		return http.StatusInternalServerError
	}
}
