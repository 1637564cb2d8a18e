// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Values are typically set by middleware but consumed by services; keeping the
// package free of net/http lets the engine stay callable outside a server.
//
// Usage in services (read values):
//
//	wallet := requestcontext.Wallet(ctx)
//	now := requestcontext.Now(ctx)
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithWallet(ctx, "GFEEDER...")
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"

	id "pawledger/pkg/domain"
)

// Context key types (unexported for encapsulation).
type (
	walletKey      struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// Exported context keys for tests that need context.WithValue directly.
var (
	ContextKeyWallet      = walletKey{}
	ContextKeyRequestID   = requestIDKey{}
	ContextKeyRequestTime = requestTimeKey{}
)

// Wallet retrieves the authenticated wallet address from the context.
// Returns the empty address if no proof of control was presented.
func Wallet(ctx context.Context) id.WalletAddress {
	if w, ok := ctx.Value(ContextKeyWallet).(id.WalletAddress); ok {
		return w
	}
	return ""
}

// WithWallet injects an authenticated wallet address into the context.
func WithWallet(ctx context.Context, wallet id.WalletAddress) context.Context {
	return context.WithValue(ctx, ContextKeyWallet, wallet)
}

// RequestID retrieves the request correlation id from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request correlation id into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() if not set (workers, CLI, tests that don't care).
// Every timestamp the engine records flows through here so tests can pin the
// clock with WithTime.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
