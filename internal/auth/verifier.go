// AngelaMos | 2026
// verifier.go

package auth

import (
	"context"

	"github.com/agritrace/agritrace-api/internal/middleware"
)

// SessionVerifier checks the token signature, then the account's current
// token version. A role change bumps the version, so tokens issued before
// it stop working.
type SessionVerifier struct {
	tokens  middleware.TokenVerifier
	service *Service
}

func NewSessionVerifier(
	tokens middleware.TokenVerifier,
	service *Service,
) *SessionVerifier {
	return &SessionVerifier{tokens: tokens, service: service}
}

func (v *SessionVerifier) VerifyAccessToken(
	ctx context.Context,
	token string,
) (*middleware.AccessTokenClaims, error) {
	claims, err := v.tokens.VerifyAccessToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if err := v.service.ValidateTokenVersion(
		ctx,
		claims.UserID,
		claims.TokenVersion,
	); err != nil {
		return nil, err
	}

	return claims, nil
}

var _ middleware.TokenVerifier = (*SessionVerifier)(nil)
