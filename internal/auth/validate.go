package auth

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode"
)

const (
	minPasswordLength = 8
	minFullNameLength = 2
	maxFullNameLength = 100

	// passwordSymbols is the set of characters accepted as the required
	// special character in a password.
	passwordSymbols = `!@#$%^&*(),.?":{}|<>`
)

var (
	// ErrWeakPassword is returned when a password fails the policy; the
	// wrapped message names every unmet requirement.
	ErrWeakPassword = errors.New("password does not meet requirements")

	// ErrInvalidEmail is returned for a malformed email address.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrInvalidFullName is returned for an empty or oversized full name.
	ErrInvalidFullName = errors.New("invalid full name")
)

// ValidatePassword checks the password policy: at least 8 characters with
// an uppercase letter, a lowercase letter, a digit, and a special
// character. All violations are collected so the caller can report the
// full list in one response.
func ValidatePassword(password string) error {
	var violations []string

	if len(password) < minPasswordLength {
		violations = append(violations, fmt.Sprintf("at least %d characters", minPasswordLength))
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}

	if !hasUpper {
		violations = append(violations, "an uppercase letter")
	}
	if !hasLower {
		violations = append(violations, "a lowercase letter")
	}
	if !hasDigit {
		violations = append(violations, "a digit")
	}
	if !hasSymbol {
		violations = append(violations, "a special character")
	}

	if len(violations) > 0 {
		return fmt.Errorf("%w: missing %s", ErrWeakPassword, strings.Join(violations, ", "))
	}

	return nil
}

// NormalizeEmail trims surrounding whitespace, lowercases the address and
// checks that it parses as a bare RFC 5322 address. The normalized form is
// what gets stored and compared, so a user cannot register twice with
// case-variant spellings.
func NormalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", fmt.Errorf("%w: empty address", ErrInvalidEmail)
	}

	addr, err := mail.ParseAddress(normalized)
	if err != nil || addr.Address != normalized {
		return "", fmt.Errorf("%w: %s", ErrInvalidEmail, normalized)
	}

	return normalized, nil
}

// ValidateFullName checks that the display name fits the storage column and
// contains only letters, spaces, hyphens and apostrophes.
func ValidateFullName(fullName string) (string, error) {
	trimmed := strings.TrimSpace(fullName)
	if len(trimmed) < minFullNameLength {
		return "", fmt.Errorf("%w: shorter than %d characters", ErrInvalidFullName, minFullNameLength)
	}
	if len(trimmed) > maxFullNameLength {
		return "", fmt.Errorf("%w: longer than %d characters", ErrInvalidFullName, maxFullNameLength)
	}

	for _, r := range trimmed {
		if !unicode.IsLetter(r) && r != ' ' && r != '-' && r != '\'' {
			return "", fmt.Errorf("%w: unexpected character %q", ErrInvalidFullName, r)
		}
	}

	return trimmed, nil
}
