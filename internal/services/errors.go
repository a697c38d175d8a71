package services

import (
	"errors"
	"strings"
)

var (
	// ErrImageRequired is returned when a registration carries no image.
	ErrImageRequired = errors.New("image is required")
	// ErrEmailTaken is returned when the email belongs to an existing user.
	ErrEmailTaken = errors.New("email is already in use")
	// ErrInvalidCredentials is returned by LoginUser for an unknown email or a
	// wrong password. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError lists every violated field rule, one human-readable message
// per rule.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}
