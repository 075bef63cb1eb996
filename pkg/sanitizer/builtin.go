package sanitizer

import (
	"regexp"
	"sort"
	"strings"
)

var (
	scriptRegex     = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)
	commentRegex    = regexp.MustCompile(`(?s)<!--.*?-->`)
	eventAttrRegex  = regexp.MustCompile(`(?i)\s+on[a-z]+\s*=\s*("[^"]*"|'[^']*'|[^\s>]+)`)
	jsProtocolRegex = regexp.MustCompile(`(?i)javascript\s*:`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
	emailRegex      = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	emailLocalRegex = regexp.MustCompile(`^[^@]+`)
)

// Built-in stages. All of them are stateless and safe for concurrent use.
var (
	// StripScripts removes script elements and their bodies.
	StripScripts Sanitizer = Func(func(s string) string {
		return scriptRegex.ReplaceAllString(s, "")
	})

	// StripComments removes HTML comments.
	StripComments Sanitizer = Func(func(s string) string {
		return commentRegex.ReplaceAllString(s, "")
	})

	// RemoveEventHandlers drops inline on* attributes and javascript: URL schemes.
	RemoveEventHandlers Sanitizer = Func(func(s string) string {
		s = eventAttrRegex.ReplaceAllString(s, "")
		return jsProtocolRegex.ReplaceAllString(s, "")
	})

	// NormalizeWhitespace collapses whitespace runs to a single space and trims
	// the ends.
	NormalizeWhitespace Sanitizer = Func(func(s string) string {
		return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
	})

	// RedactEmails masks the local part of email addresses, keeping the first
	// character: jane@example.com becomes j***@example.com.
	RedactEmails Sanitizer = Func(func(s string) string {
		return emailRegex.ReplaceAllStringFunc(s, maskEmail)
	})
)

var builtins = map[string]Sanitizer{
	"strip_scripts":         StripScripts,
	"strip_comments":        StripComments,
	"remove_event_handlers": RemoveEventHandlers,
	"normalize_whitespace":  NormalizeWhitespace,
	"redact_emails":         RedactEmails,
}

// Builtin looks up a built-in stage by name.
func Builtin(name string) (Sanitizer, bool) {
	s, ok := builtins[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}

// BuiltinNames lists the names accepted by Builtin.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func maskEmail(email string) string {
	return emailLocalRegex.ReplaceAllStringFunc(email, func(local string) string {
		if len(local) == 1 {
			return "*"
		}
		return local[:1] + strings.Repeat("*", 3)
	})
}
