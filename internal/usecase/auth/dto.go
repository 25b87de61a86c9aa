package auth

// RegisterRequest represents the payload for registering a new user.
// All eight fields are required; registration never reaches storage when
// any is missing.
type RegisterRequest struct {
	UID         string `validate:"required"`
	UserType    string `validate:"required"`
	FirstName   string `validate:"required"`
	LastName    string `validate:"required"`
	Email       string `validate:"required,email"`
	Designation string `validate:"required"`
	Phone       string `validate:"required"`
	Password    string `validate:"required"`
}

// RegisterResponse represents the response payload after registration.
type RegisterResponse struct {
	UID string
}

// LoginRequest represents the payload for authenticating a user.
type LoginRequest struct {
	UID      string `validate:"required"`
	Password string `validate:"required"`
}

// LoginResponse carries the authenticated user's public profile and the
// issued bearer token.
type LoginResponse struct {
	User  UserProfile
	Token string
}

// UserProfile represents the public view of a user record. The password
// hash never appears here.
type UserProfile struct {
	UID         string
	UserType    string
	FirstName   string
	LastName    string
	Email       string
	Designation string
	Phone       string
	Rating      *float64
}
