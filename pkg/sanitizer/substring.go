package sanitizer

import "strings"

// Rule pairs a pattern with its replacement. For SubstringSanitizer the
// pattern is literal text, for RegexSanitizer it is a regular expression.
type Rule struct {
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`
}

// SubstringSanitizer replaces every non-overlapping occurrence of each
// literal pattern, rules applied in order. Rules with an empty pattern are
// ignored.
type SubstringSanitizer struct {
	rules []Rule
}

func NewSubstring(rules ...Rule) *SubstringSanitizer {
	kept := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if r.Pattern != "" {
			kept = append(kept, r)
		}
	}
	return &SubstringSanitizer{rules: kept}
}

func (s *SubstringSanitizer) Sanitize(input string) string {
	out := input
	for _, r := range s.rules {
		out = strings.ReplaceAll(out, r.Pattern, r.Replacement)
	}
	return out
}
