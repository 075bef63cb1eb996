package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/htmlsaver/pkg/sanitizer"
)

func TestSubstringSanitizer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rules    []sanitizer.Rule
		input    string
		expected string
	}{
		{
			name:     "replaces every occurrence",
			rules:    []sanitizer.Rule{{Pattern: "sk-live-123", Replacement: "[KEY]"}},
			input:    `<p>sk-live-123</p><code>sk-live-123</code>`,
			expected: `<p>[KEY]</p><code>[KEY]</code>`,
		},
		{
			name: "rules apply in order",
			rules: []sanitizer.Rule{
				{Pattern: "internal.corp", Replacement: "example.com"},
				{Pattern: "example.com", Replacement: "[HOST]"},
			},
			input:    `<a href="https://internal.corp/x">x</a>`,
			expected: `<a href="https://[HOST]/x">x</a>`,
		},
		{
			name:     "matches are non-overlapping",
			rules:    []sanitizer.Rule{{Pattern: "aa", Replacement: "b"}},
			input:    "aaaaa",
			expected: "bba",
		},
		{
			name:     "empty pattern is ignored",
			rules:    []sanitizer.Rule{{Pattern: "", Replacement: "x"}},
			input:    "<p>keep</p>",
			expected: "<p>keep</p>",
		},
		{
			name:     "no rules",
			input:    "<p>keep</p>",
			expected: "<p>keep</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.NewSubstring(tt.rules...).Sanitize(tt.input))
		})
	}
}
