package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxLabelLength is the maximum label length in runes.
const MaxLabelLength = 200

// ValidateLabel validates a node label after trimming surrounding whitespace.
//
// Validation rules:
//   - Label cannot be empty or whitespace-only
//   - Maximum length of MaxLabelLength runes
//   - No control characters (newlines, tabs, null bytes)
//   - Valid UTF-8
func ValidateLabel(label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return New(ErrCodeInvalidLabel, "label cannot be empty")
	}

	if !utf8.ValidString(label) {
		return New(ErrCodeInvalidLabel, "label is not valid UTF-8")
	}

	if n := utf8.RuneCountInString(label); n > MaxLabelLength {
		return New(ErrCodeInvalidLabel, "label too long (%d > %d characters)", n, MaxLabelLength)
	}

	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidLabel, "label contains invalid control characters")
		}
	}

	return nil
}

// ValidateNodeID validates a node identifier received from outside the
// process (URL path, seed file). It does not check existence.
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "node id cannot be empty")
	}

	const maxIDLength = 128
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidInput, "node id too long (max %d characters)", maxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) || r == '/' {
			return New(ErrCodeInvalidInput, "node id contains invalid characters")
		}
	}

	return nil
}
