package sanitizer

import (
	"fmt"
	"regexp"
)

type compiledRule struct {
	re          *regexp.Regexp
	replacement string
}

// RegexSanitizer replaces all matches of each pattern in order. Replacements
// may reference capture groups as $1 or ${name}.
type RegexSanitizer struct {
	rules []compiledRule
}

// NewRegex compiles every pattern up front. The first pattern that fails to
// compile aborts construction with ErrInvalidPattern.
func NewRegex(rules ...Rule) (*RegexSanitizer, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for i, r := range rules {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %d %q: %w", ErrInvalidPattern, i, r.Pattern, err)
		}
		compiled = append(compiled, compiledRule{re: re, replacement: r.Replacement})
	}
	return &RegexSanitizer{rules: compiled}, nil
}

// MustRegex is like NewRegex but panics on an invalid pattern.
func MustRegex(rules ...Rule) *RegexSanitizer {
	s, err := NewRegex(rules...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *RegexSanitizer) Sanitize(input string) string {
	out := input
	for _, r := range s.rules {
		out = r.re.ReplaceAllString(out, r.replacement)
	}
	return out
}
