// Package identity answers one question: does the caller control the wallet
// it claims to act for? Handlers put the authenticated wallet on the context;
// services check the claimed principal against it before any write.
package identity

import (
	"context"

	dErrors "pawledger/pkg/domain-errors"
	id "pawledger/pkg/domain"
	"pawledger/pkg/requestcontext"
)

// Verifier guards principal-scoped operations.
type Verifier interface {
	// RequireControl returns CodeUnauthorized unless the request was
	// authenticated as principal.
	RequireControl(ctx context.Context, principal id.WalletAddress) error
}

// ContextVerifier trusts the wallet the authentication middleware stored on
// the request context.
type ContextVerifier struct{}

func NewContextVerifier() ContextVerifier { return ContextVerifier{} }

func (ContextVerifier) RequireControl(ctx context.Context, principal id.WalletAddress) error {
	authenticated := requestcontext.Wallet(ctx)
	if authenticated.IsNil() {
		return dErrors.New(dErrors.CodeUnauthorized, "request is not authenticated")
	}
	if authenticated != principal {
		return dErrors.Newf(dErrors.CodeUnauthorized, "caller does not control wallet %s", principal)
	}
	return nil
}
