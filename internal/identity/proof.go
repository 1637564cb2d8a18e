package identity

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	dErrors "pawledger/pkg/domain-errors"
	id "pawledger/pkg/domain"
)

// ProofValidator validates wallet-proof tokens presented on the Authorization
// header. The token subject is the wallet address the caller proves control
// of; tokens are HMAC-signed by the wallet custodian the deployment trusts.
type ProofValidator struct {
	key    []byte
	issuer string
}

func NewProofValidator(key []byte, issuer string) *ProofValidator {
	return &ProofValidator{key: key, issuer: issuer}
}

// Validate parses and verifies the proof token and returns the wallet it
// attests. All failures map to CodeUnauthorized.
func (v *ProofValidator) Validate(token string) (id.WalletAddress, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %s", t.Method.Alg())
		}
		return v.key, nil
	},
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30*time.Second),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", dErrors.Wrap(err, dErrors.CodeUnauthorized, "wallet proof expired")
		}
		return "", dErrors.Wrap(err, dErrors.CodeUnauthorized, "invalid wallet proof")
	}
	subject, err := parsed.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", dErrors.New(dErrors.CodeUnauthorized, "wallet proof has no subject")
	}
	return id.WalletAddress(subject), nil
}

// Issue mints a proof token for wallet, used by tests and the local dev
// token tool.
func (v *ProofValidator) Issue(wallet id.WalletAddress, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    v.issuer,
		Subject:   wallet.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.key)
}
