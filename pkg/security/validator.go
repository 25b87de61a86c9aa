package security

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

const (
	// MaxSearchTermLength defines the maximum allowed length for a ride
	// search term (origin or destination label)
	MaxSearchTermLength = 100
)

// dangerousPatterns contains regex patterns that could indicate SQL injection attempts
var dangerousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(union|select|insert|update|delete|drop|create|alter|exec|execute)`),
	regexp.MustCompile(`(?i)(or|and)\s+\d+\s*=\s*\d+`),
	regexp.MustCompile(`(?i)(--|#|/\*|\*/)`),
	regexp.MustCompile(`(?i)(waitfor|delay|benchmark|sleep)`),
}

// ValidateSearchTerm validates a ride search term before it reaches storage.
// Origin and destination labels are free text, so they are screened for
// length and character set rather than matched against a fixed vocabulary.
func ValidateSearchTerm(term string) (string, error) {
	if term == "" {
		return "", nil
	}

	if len(term) > MaxSearchTermLength {
		return "", errors.New("search term too long")
	}

	term = strings.TrimSpace(term)

	for _, pattern := range dangerousPatterns {
		if pattern.MatchString(term) {
			return "", errors.New("search term contains invalid characters")
		}
	}

	for _, char := range term {
		if !isValidSearchChar(char) {
			return "", errors.New("search term contains invalid characters")
		}
	}

	return term, nil
}

// isValidSearchChar checks if a character is safe for place-name search terms
func isValidSearchChar(char rune) bool {
	return unicode.IsLetter(char) || unicode.IsNumber(char) ||
		char == ' ' || char == '-' || char == '_' || char == '.' || char == '\''
}
