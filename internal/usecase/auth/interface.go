package auth

import (
	"context"

	domain "carpool-service/internal/domain/user"
)

// UserRepository defines the data access operations the auth service needs.
// It abstracts the data layer, allowing the cached and plain PostgreSQL
// implementations to be used interchangeably.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error                   // Persist a new user
	GetByUID(ctx context.Context, uid string) (*domain.User, error)     // Lookup by external identifier, (nil, nil) on miss
	GetByEmail(ctx context.Context, email string) (*domain.User, error) // Lookup by email, (nil, nil) on miss
}

// Usecase defines the interface for credential issuance operations.
type Usecase interface {
	Register(ctx context.Context, in RegisterRequest) (*RegisterResponse, error)
	Login(ctx context.Context, in LoginRequest) (*LoginResponse, error)
	GetProfile(ctx context.Context, uid string) (*UserProfile, error)
}

// TokenVerifier resolves a bearer token to a fresh user record. It is the
// precondition gate for privileged operations.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*domain.User, error)
}
