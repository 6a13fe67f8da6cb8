package auth

import (
	"errors"
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const (
	// MinPasswordLength is counted in characters.
	MinPasswordLength = 8

	// MaxPasswordBytes is the most bcrypt will hash. Longer input is rejected
	// rather than truncated.
	MaxPasswordBytes = 72

	bcryptCost = 12
)

// PolicyError describes why a password was refused. Message is safe to show
// to the account owner.
type PolicyError struct {
	Message string
}

func (e *PolicyError) Error() string { return e.Message }

var (
	ErrPasswordTooShort = &PolicyError{Message: "Password must be at least 8 characters long"}
	ErrPasswordTooLong  = &PolicyError{Message: "Password must be at most 72 bytes long"}
	ErrPasswordNoDigit  = &PolicyError{Message: "Password must contain at least one digit"}
	ErrPasswordNoUpper  = &PolicyError{Message: "Password must contain at least one uppercase letter"}

	ErrPasswordMismatch = errors.New("password does not match")
)

// CheckPassword applies the account password policy: 8 or more characters,
// at most 72 bytes, with at least one digit and one uppercase letter.
func CheckPassword(password string) error {
	var runes int
	var hasDigit, hasUpper bool
	for _, r := range password {
		runes++
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		}
	}

	switch {
	case runes < MinPasswordLength:
		return ErrPasswordTooShort
	case len(password) > MaxPasswordBytes:
		return ErrPasswordTooLong
	case !hasDigit:
		return ErrPasswordNoDigit
	case !hasUpper:
		return ErrPasswordNoUpper
	}
	return nil
}

// HashPassword returns the bcrypt hash of password. It only enforces the
// bcrypt input limit; callers check the policy with CheckPassword first.
func HashPassword(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt.GenerateFromPassword: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares password against a stored hash. A wrong password
// yields ErrPasswordMismatch; a malformed hash yields any other error.
func VerifyPassword(password, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrPasswordMismatch
	default:
		return fmt.Errorf("bcrypt.CompareHashAndPassword: %w", err)
	}
}
