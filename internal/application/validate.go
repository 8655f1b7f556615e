package application

import (
	"fmt"
	"html"
	"strings"
	"unicode"
)

// Field length limits carried over from the original registration forms.
const (
	maxTextLen        = 100
	maxDescriptionLen = 150
	maxPhoneLen       = 10
	maxTimeTokenLen   = 5
)

// sanitizeText trims surrounding whitespace and escapes markup, mirroring
// the trim-then-escape sanitization the input forms applied.
func sanitizeText(value string) string {
	return html.EscapeString(strings.TrimSpace(value))
}

// requireText validates a required text field, recording every failure, and
// returns the sanitized value. Length is checked before escaping so entity
// expansion does not eat into the caller-facing limit.
func requireText(vErr *ValidationError, field, value string, maxLen int) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		vErr.add(field, field+" must not be empty")
		return ""
	}
	if len(trimmed) > maxLen {
		vErr.add(field, fmt.Sprintf("%s must be at most %d characters", field, maxLen))
	}
	return html.EscapeString(trimmed)
}

// optionalText validates an optional text field and returns the sanitized
// value; empty input stays empty.
func optionalText(vErr *ValidationError, field, value string, maxLen int) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	if len(trimmed) > maxLen {
		vErr.add(field, fmt.Sprintf("%s must be at most %d characters", field, maxLen))
	}
	return html.EscapeString(trimmed)
}

// requireAlphanumeric flags names containing anything besides letters and
// digits, matching the original registration form's name check.
func requireAlphanumeric(vErr *ValidationError, field, value string) {
	for _, r := range value {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			vErr.add(field, field+" has non-alphanumeric characters")
			return
		}
	}
}

// requirePositive validates a required positive integer field.
func requirePositive(vErr *ValidationError, field string, value int) {
	if value <= 0 {
		vErr.add(field, field+" must be a positive integer")
	}
}
