package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/htmlsaver/pkg/sanitizer"
)

func TestRegexSanitizer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rules    []sanitizer.Rule
		input    string
		expected string
	}{
		{
			name:     "redacts phone numbers",
			rules:    []sanitizer.Rule{{Pattern: `\d{3}-\d{3}-\d{4}`, Replacement: "[PHONE]"}},
			input:    "<p>Call 555-123-4567 or 555-987-6543</p>",
			expected: "<p>Call [PHONE] or [PHONE]</p>",
		},
		{
			name:     "redacts card numbers",
			rules:    []sanitizer.Rule{{Pattern: `\b(?:\d{4}[- ]?){3}\d{4}\b`, Replacement: "[CARD]"}},
			input:    "<td>4111-1111-1111-1111</td><td>4111111111111111</td>",
			expected: "<td>[CARD]</td><td>[CARD]</td>",
		},
		{
			name:     "redacts emails",
			rules:    []sanitizer.Rule{{Pattern: `[\w.+-]+@[\w-]+\.[\w.]+`, Replacement: "[EMAIL]"}},
			input:    `<a href="mailto:jane@example.com">jane@example.com</a>`,
			expected: `<a href="mailto:[EMAIL]">[EMAIL]</a>`,
		},
		{
			name:     "expands capture groups",
			rules:    []sanitizer.Rule{{Pattern: `(\w+)@example\.com`, Replacement: "${1}@redacted"}},
			input:    "<p>bob@example.com</p>",
			expected: "<p>bob@redacted</p>",
		},
		{
			name: "chains rules in order",
			rules: []sanitizer.Rule{
				{Pattern: `\d{3}-\d{2}-\d{4}`, Replacement: "SSN"},
				{Pattern: `SSN`, Replacement: "[REDACTED]"},
			},
			input:    "<p>123-45-6789</p>",
			expected: "<p>[REDACTED]</p>",
		},
		{
			name:     "no match leaves input",
			rules:    []sanitizer.Rule{{Pattern: `\d+`, Replacement: "#"}},
			input:    "<p>none</p>",
			expected: "<p>none</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := sanitizer.NewRegex(tt.rules...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, s.Sanitize(tt.input))
		})
	}
}

func TestNewRegexInvalidPattern(t *testing.T) {
	t.Parallel()

	s, err := sanitizer.NewRegex(
		sanitizer.Rule{Pattern: `\d+`, Replacement: "#"},
		sanitizer.Rule{Pattern: `(unclosed`, Replacement: "x"},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, sanitizer.ErrInvalidPattern)
	assert.Contains(t, err.Error(), "(unclosed")
	assert.Nil(t, s)

	assert.Panics(t, func() {
		sanitizer.MustRegex(sanitizer.Rule{Pattern: `[`})
	})
}
