// Package auth implements credential handling and session token issuance:
// password login, registration, Google identity federation, and the signed
// token every other component trusts for authorization decisions.
package auth

import (
	"errors"
	"strings"
)

// Sentinel errors returned by the auth service. Handlers map these to HTTP
// statuses; the messages are deliberately uniform so callers cannot tell an
// unknown email from a wrong password, or which Google check failed.
var (
	// ErrInvalidCredentials covers both unknown identifier and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrExternalAuth covers every Google ID-token failure: bad signature,
	// wrong audience, expired, or the verification call itself failing.
	ErrExternalAuth = errors.New("google authentication failed")
	// ErrDuplicateEmail is returned when registration targets an email that
	// already has an account.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrConfiguration means the signing key or verifier setup is missing.
	// It is fatal: the server must not issue unsigned tokens.
	ErrConfiguration = errors.New("auth configuration missing")
)

// ValidationError reports the constraints an input violated. Unlike the
// sentinels above it carries detail, since validation failures are safe to
// echo back to the caller.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

// IsValidation reports whether err is a ValidationError and returns it.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
