package common

import (
	"strings"
)

// RequireField trims value and fails with a validation error naming the
// field when nothing is left.
func RequireField(name, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", NewValidationError(name + " is required")
	}
	return value, nil
}

func ValidateContent(content string, max int) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return NewValidationError("content is required")
	}
	if max > 0 && len([]rune(content)) > max {
		return NewValidationError("content is too long")
	}
	return nil
}
