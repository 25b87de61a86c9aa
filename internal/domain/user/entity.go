package user

// User represents a registered member of the carpool population.
// UID is the externally chosen identifier used as the authentication key;
// it is distinct from any storage-assigned key.
type User struct {
	UID          string   // Externally chosen unique identifier, immutable
	UserType     string   // Role tag (e.g. student, faculty)
	FirstName    string   // Given name
	LastName     string   // Family name
	Email        string   // Unique contact email
	Designation  string   // Free-text title
	Phone        string   // Contact phone number
	PasswordHash string   // bcrypt hash, never exposed to callers
	Rating       *float64 // Optional rating, nil until first rated
}
