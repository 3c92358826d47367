package errors

import (
	"slices"
	"strings"
	"unicode"
)

// maxLabelLength bounds node labels accepted from users.
const maxLabelLength = 256

// ValidateLabel checks a node label before it is written to Pajek, where
// labels are double-quoted, or into an SVG class-indexed document.
//
// Validation rules:
//   - Label cannot be empty
//   - Maximum length of 256 characters
//   - No control characters
//   - No double quotes
func ValidateLabel(label string) error {
	if label == "" {
		return New(ErrCodeInvalidLabel, "label cannot be empty")
	}

	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidLabel, "label too long (max %d characters)", maxLabelLength)
	}

	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidLabel, "label contains invalid control characters")
		}
	}

	if strings.Contains(label, `"`) {
		return New(ErrCodeInvalidLabel, "label cannot contain double quotes: %q", label)
	}

	return nil
}

// ValidateFormat checks that format is one of allowed, ignoring case.
func ValidateFormat(format string, allowed ...string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !slices.Contains(allowed, strings.ToLower(format)) {
		return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(allowed, ", "))
	}
	return nil
}
