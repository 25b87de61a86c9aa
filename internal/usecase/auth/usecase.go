package auth

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/go-playground/validator/v10"

	domain "carpool-service/internal/domain/user"
	pkgerrors "carpool-service/pkg/errors"
	"carpool-service/pkg/security"
)

// Service implements credential issuance: registration with password
// hashing and login with bearer-token issuance.
type Service struct {
	repo     UserRepository
	tokens   *security.TokenManager
	log      *zap.Logger
	validate *validator.Validate
}

// New creates a new auth Service. The token manager carries the injected
// signing secret shared with the verifier.
func New(r UserRepository, tokens *security.TokenManager, log *zap.Logger) *Service {
	return &Service{repo: r, tokens: tokens, log: log, validate: validator.New()}
}

// formatValidationError converts validator.ValidationErrors into a single
// human-readable validation error.
func formatValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrors {
			switch e.Tag() {
			case "required":
				messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
			case "email":
				messages = append(messages, fmt.Sprintf("%s must be a valid email", e.Field()))
			default:
				messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
			}
		}
		return pkgerrors.NewValidationError("", strings.Join(messages, ", "))
	}
	return err
}

func toProfile(u *domain.User) UserProfile {
	return UserProfile{
		UID:         u.UID,
		UserType:    u.UserType,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		Designation: u.Designation,
		Phone:       u.Phone,
		Rating:      u.Rating,
	}
}

// Register creates a new user after validating the request and checking
// email uniqueness. The pre-check gives a friendly conflict message; the
// unique index in storage closes the remaining race window.
func (s *Service) Register(ctx context.Context, in RegisterRequest) (*RegisterResponse, error) {
	s.log.Info("registering user", zap.String("uid", in.UID), zap.String("email", in.Email))

	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("register validation failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	existing, err := s.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		s.log.Error("failed to check existing email", zap.String("email", in.Email), zap.Error(err))
		return nil, pkgerrors.NewInternalError("unable to register user", err)
	}
	if existing != nil {
		s.log.Warn("email already registered", zap.String("email", in.Email))
		return nil, pkgerrors.NewConflictError("user", "user already exists with this email")
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		s.log.Error("failed to hash password", zap.String("uid", in.UID), zap.Error(err))
		return nil, pkgerrors.NewInternalError("unable to register user", err)
	}

	if err := s.repo.Create(ctx, &domain.User{
		UID:          in.UID,
		UserType:     in.UserType,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Designation:  in.Designation,
		Phone:        in.Phone,
		PasswordHash: hash,
	}); err != nil {
		if _, ok := err.(*pkgerrors.ConflictError); ok {
			return nil, err
		}
		s.log.Error("failed to create user", zap.String("uid", in.UID), zap.Error(err))
		return nil, pkgerrors.NewInternalError("unable to register user", err)
	}

	return &RegisterResponse{UID: in.UID}, nil
}

// Login authenticates a user by UID and password. An unknown UID and a
// wrong password produce the same error class and message so callers
// cannot enumerate identifiers.
func (s *Service) Login(ctx context.Context, in LoginRequest) (*LoginResponse, error) {
	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("login validation failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	u, err := s.repo.GetByUID(ctx, in.UID)
	if err != nil {
		s.log.Error("failed to look up user for login", zap.String("uid", in.UID), zap.Error(err))
		return nil, pkgerrors.NewInternalError("unable to log in", err)
	}
	if u == nil {
		s.log.Warn("login with unknown uid", zap.String("uid", in.UID))
		return nil, pkgerrors.NewUnauthorizedError("invalid credentials")
	}

	if !security.CheckPassword(u.PasswordHash, in.Password) {
		s.log.Warn("login with wrong password", zap.String("uid", in.UID))
		return nil, pkgerrors.NewUnauthorizedError("invalid credentials")
	}

	token, err := s.tokens.Issue(u.UID)
	if err != nil {
		s.log.Error("failed to issue token", zap.String("uid", in.UID), zap.Error(err))
		return nil, pkgerrors.NewInternalError("unable to log in", err)
	}

	s.log.Info("user logged in", zap.String("uid", u.UID))
	return &LoginResponse{User: toProfile(u), Token: token}, nil
}

// GetProfile retrieves the public profile for a UID.
func (s *Service) GetProfile(ctx context.Context, uid string) (*UserProfile, error) {
	if uid == "" {
		return nil, pkgerrors.NewValidationError("uid", "uid is required")
	}

	u, err := s.repo.GetByUID(ctx, uid)
	if err != nil {
		s.log.Error("failed to get user profile", zap.String("uid", uid), zap.Error(err))
		return nil, pkgerrors.NewInternalError("unable to fetch user", err)
	}
	if u == nil {
		return nil, pkgerrors.NewNotFoundError("user", "user not found")
	}

	profile := toProfile(u)
	return &profile, nil
}
