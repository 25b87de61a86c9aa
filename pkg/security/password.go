package security

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the fixed cost factor used when the user population
// was first seeded; changing it only affects newly stored hashes.
const bcryptCost = 10

// HashPassword hashes a plaintext password with bcrypt.
// The plaintext is never stored or returned alongside the hash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a plaintext password against a stored bcrypt hash.
// bcrypt performs the comparison in constant time.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
