package domain

import "errors"

// Error taxonomy. Services wrap these with fmt.Errorf("%w: ...") and the
// HTTP layer maps them to status codes with errors.Is.
var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("resource not found")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrPersistence     = errors.New("persistence failure")
	ErrConfiguration   = errors.New("configuration error")
)

// Credential errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// IdentityError is a single reason an identity could not be created.
type IdentityError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// IdentityErrors collects every reason a registration was refused.
type IdentityErrors []IdentityError

func (e IdentityErrors) Error() string {
	if len(e) == 0 {
		return "identity creation failed"
	}
	msg := "identity creation failed: " + e[0].Description
	if len(e) > 1 {
		msg += " (and more)"
	}
	return msg
}
