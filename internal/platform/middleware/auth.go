package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	id "pawledger/pkg/domain"
	"pawledger/pkg/requestcontext"
)

// WalletProofValidator validates a bearer token proving wallet control.
type WalletProofValidator interface {
	Validate(token string) (id.WalletAddress, error)
}

// RequireWalletProof authenticates requests via the Authorization header and
// stores the proven wallet on the request context. Requests without a valid
// proof are rejected; read-only routes are mounted outside this middleware.
func RequireWalletProof(validator WalletProofValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing wallet proof",
					"request_id", requestcontext.RequestID(ctx))
				writeUnauthorized(w, "Missing or invalid Authorization header")
				return
			}

			wallet, err := validator.Validate(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid wallet proof",
					"error", err,
					"request_id", requestcontext.RequestID(ctx))
				writeUnauthorized(w, "Invalid or expired wallet proof")
				return
			}

			next.ServeHTTP(w, r.WithContext(requestcontext.WithWallet(ctx, wallet)))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
}
