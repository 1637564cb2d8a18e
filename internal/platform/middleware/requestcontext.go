package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"pawledger/pkg/requestcontext"
)

// RequestContext stamps every request with a correlation id and the receive
// time. Services read both through the requestcontext package, which keeps
// timestamps consistent across all writes in one operation.
func RequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx = requestcontext.WithRequestID(ctx, requestID)
		ctx = requestcontext.WithTime(ctx, time.Now().UTC())
		w.Header().Set("X-Request-Id", requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
