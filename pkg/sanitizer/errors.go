package sanitizer

import "errors"

var (
	ErrInvalidPattern = errors.New("sanitizer: invalid pattern")
	ErrInvalidRules   = errors.New("sanitizer: invalid rules")
)
