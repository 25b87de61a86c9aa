package auth

import (
	"context"

	"go.uber.org/zap"

	domain "carpool-service/internal/domain/user"
	pkgerrors "carpool-service/pkg/errors"
	"carpool-service/pkg/security"
)

// Verifier validates bearer tokens and resolves them to a fresh user
// record, so privileged handlers see current data (e.g. rating) rather
// than claims frozen at issuance.
type Verifier struct {
	repo   UserRepository
	tokens *security.TokenManager
	log    *zap.Logger
}

// NewVerifier creates a token Verifier sharing the auth service's signing
// secret and user repository.
func NewVerifier(r UserRepository, tokens *security.TokenManager, log *zap.Logger) *Verifier {
	return &Verifier{repo: r, tokens: tokens, log: log}
}

// Verify checks the token signature against the shared secret and resolves
// the UID claim to a user record. A malformed token, a bad signature, and a
// user deleted after issuance all report the same unauthenticated class.
func (v *Verifier) Verify(ctx context.Context, token string) (*domain.User, error) {
	uid, err := v.tokens.Verify(token)
	if err != nil {
		v.log.Warn("token verification failed", zap.Error(err))
		return nil, pkgerrors.NewUnauthorizedError("invalid or expired token")
	}

	u, err := v.repo.GetByUID(ctx, uid)
	if err != nil {
		v.log.Error("failed to resolve token user", zap.String("uid", uid), zap.Error(err))
		return nil, pkgerrors.NewInternalError("unable to verify token", err)
	}
	if u == nil {
		v.log.Warn("token references missing user", zap.String("uid", uid))
		return nil, pkgerrors.NewUnauthorizedError("invalid or expired token")
	}

	return u, nil
}
