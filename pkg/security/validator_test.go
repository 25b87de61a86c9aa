package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSearchTerm(t *testing.T) {
	tests := []struct {
		name        string
		term        string
		expectError bool
		errorMsg    string
		expected    string
	}{
		{
			name:     "valid empty term",
			term:     "",
			expected: "",
		},
		{
			name:     "valid city name",
			term:     "delhi",
			expected: "delhi",
		},
		{
			name:     "valid name with spaces",
			term:     "new delhi",
			expected: "new delhi",
		},
		{
			name:     "valid name with hyphen",
			term:     "port-blair",
			expected: "port-blair",
		},
		{
			name:     "valid name with apostrophe",
			term:     "cox's bazar",
			expected: "cox's bazar",
		},
		{
			name:        "term too long",
			term:        string(make([]rune, MaxSearchTermLength+1)),
			expectError: true,
			errorMsg:    "search term too long",
		},
		{
			name:        "SQL injection attempt - UNION",
			term:        "delhi UNION SELECT * FROM rides",
			expectError: true,
			errorMsg:    "search term contains invalid characters",
		},
		{
			name:        "SQL injection attempt - OR condition",
			term:        "delhi OR 1=1",
			expectError: true,
			errorMsg:    "search term contains invalid characters",
		},
		{
			name:        "SQL injection attempt - comment",
			term:        "delhi --",
			expectError: true,
			errorMsg:    "search term contains invalid characters",
		},
		{
			name:        "SQL injection attempt - DROP",
			term:        "delhi; DROP TABLE rides",
			expectError: true,
			errorMsg:    "search term contains invalid characters",
		},
		{
			name:        "XSS attempt - script",
			term:        "<script>alert('xss')</script>",
			expectError: true,
			errorMsg:    "search term contains invalid characters",
		},
		{
			name:        "invalid characters - semicolon",
			term:        "delhi;jaipur",
			expectError: true,
			errorMsg:    "search term contains invalid characters",
		},
		{
			name:        "invalid characters - ampersand",
			term:        "delhi&jaipur",
			expectError: true,
			errorMsg:    "search term contains invalid characters",
		},
		{
			name:     "leading and trailing spaces trimmed",
			term:     "  delhi  ",
			expected: "delhi",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateSearchTerm(tt.term)

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Empty(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestIsValidSearchChar(t *testing.T) {
	tests := []struct {
		name     string
		char     rune
		expected bool
	}{
		{name: "lowercase letter", char: 'a', expected: true},
		{name: "uppercase letter", char: 'Z', expected: true},
		{name: "digit", char: '5', expected: true},
		{name: "space", char: ' ', expected: true},
		{name: "hyphen", char: '-', expected: true},
		{name: "underscore", char: '_', expected: true},
		{name: "dot", char: '.', expected: true},
		{name: "apostrophe", char: '\'', expected: true},
		{name: "semicolon - invalid", char: ';', expected: false},
		{name: "ampersand - invalid", char: '&', expected: false},
		{name: "less than - invalid", char: '<', expected: false},
		{name: "percent - invalid", char: '%', expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := isValidSearchChar(tt.char)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestMaxSearchTermLength(t *testing.T) {
	assert.Equal(t, 100, MaxSearchTermLength)
}

// BenchmarkValidateSearchTerm benchmarks the validation function
func BenchmarkValidateSearchTerm(b *testing.B) {
	term := "new delhi"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ValidateSearchTerm(term)
	}
}
