package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MinPasswordLength = 8
	maxNodeNameLength = 63
)

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return NewFieldValidationError("port", port)
	}
	return nil
}

func ValidateNodeName(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewValidationError("Node name is required")
	}

	if len(name) > maxNodeNameLength {
		return NewValidationError(fmt.Sprintf("Node name must not exceed %d characters", maxNodeNameLength))
	}

	return nil
}

// ValidatePassword counts characters, not bytes.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return NewValidationError(fmt.Sprintf("Password must be at least %d characters long", MinPasswordLength))
	}
	return nil
}

func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return NewValidationError("Invalid email format")
	}
	return nil
}

// BearerToken extracts the credential from an Authorization header value.
// Anything that is not "Bearer <token>" yields an empty string.
func BearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
