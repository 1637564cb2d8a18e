// Package httputil centralizes JSON encoding and domain error translation so
// every handler returns the same envelopes.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	dErrors "pawledger/pkg/domain-errors"
)

var statusByCode = map[dErrors.Code]int{
	dErrors.CodeAlreadyInitialized:  http.StatusConflict,
	dErrors.CodeNotFound:            http.StatusNotFound,
	dErrors.CodeFeederNotRegistered: http.StatusForbidden,
	dErrors.CodeUnauthorized:        http.StatusForbidden,
	dErrors.CodeTransferFailed:      http.StatusUnprocessableEntity,
	dErrors.CodeBadRequest:          http.StatusBadRequest,
	dErrors.CodeInvariantViolation:  http.StatusInternalServerError,
	dErrors.CodeInternal:            http.StatusInternalServerError,
}

// ToHTTPStatus maps a domain error code to its HTTP status.
func ToHTTPStatus(code dErrors.Code) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into the JSON error envelope. Internal
// details never leak: 5xx responses carry the code only.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status := ToHTTPStatus(code)

	body := map[string]string{"error": string(code)}
	if status < http.StatusInternalServerError {
		var de *dErrors.Error
		if errors.As(err, &de) {
			body["error_description"] = de.Message
		}
	}
	WriteJSON(w, status, body)
}

// DecodeAndPrepare decodes the JSON request body into T and writes a
// bad_request response on failure.
func DecodeAndPrepare[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "request_id", requestID, "error", err)
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		var zero T
		return zero, false
	}
	return req, true
}
