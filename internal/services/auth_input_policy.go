package services

import (
	"net/mail"
	"strings"
)

const minPasswordLength = 6

// NormalizeAuthEmail trims the address and returns "" when it does not parse
// as a bare address. Case is preserved.
func NormalizeAuthEmail(raw string) string {
	email := strings.TrimSpace(raw)
	if email == "" {
		return ""
	}
	parsed, err := mail.ParseAddress(email)
	if err != nil || parsed.Address != email {
		return ""
	}
	return email
}

func ValidatePasswordStrength(password string) error {
	if len([]rune(password)) < minPasswordLength {
		return invalid("password", "Password must be at least 6 characters")
	}
	return nil
}
