package errors

import (
	"net/http"

	"storefront/internal/errors"
)

// HashingError reports a local failure of the password hasher.
// It never carries a usable digest.
type HashingError struct {
	err error
}

// NewHashingError wraps the underlying hashing failure.
func NewHashingError(err error) *HashingError {
	return &HashingError{err: err}
}

func (e *HashingError) Error() string {
	return errors.Wrap(e.err, "password hashing failed").Error()
}

func (e *HashingError) Unwrap() error {
	return e.err
}

// RegistrationError wraps a store-write or hashing failure during registration.
type RegistrationError struct {
	err error
}

// NewRegistrationError wraps the cause of a failed registration.
func NewRegistrationError(err error) *RegistrationError {
	return &RegistrationError{err: err}
}

func (e *RegistrationError) Error() string {
	return errors.Wrap(e.err, "registration failed").Error()
}

func (e *RegistrationError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *RegistrationError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *RegistrationError) ErrorCode() string {
	return "REGISTRATION_FAILED"
}

// Message returns the user-friendly error message
func (e *RegistrationError) Message() string {
	return "Registration failed, please try again later"
}

// Details is always empty; the cause is for logs only.
func (e *RegistrationError) Details() string {
	return ""
}

// AuthenticationReason enumerates login failure causes visible to callers.
type AuthenticationReason int

const (
	// InvalidCredentials covers both an unknown username and a wrong password.
	InvalidCredentials AuthenticationReason = iota + 1
)

// AuthenticationError is returned by the login flow. It is deliberately under-specific.
type AuthenticationError struct {
	Reason AuthenticationReason
}

func (e *AuthenticationError) Error() string {
	return "invalid credentials"
}

// HTTPCode returns the HTTP status code
func (e *AuthenticationError) HTTPCode() int {
	return http.StatusUnauthorized
}

// ErrorCode returns the business error code
func (e *AuthenticationError) ErrorCode() string {
	return "INVALID_CREDENTIALS"
}

// Message returns the user-friendly error message
func (e *AuthenticationError) Message() string {
	return "Invalid credentials"
}

// Details returns detailed error information
func (e *AuthenticationError) Details() string {
	return ""
}

// ErrInvalidCredentials is the single login failure value, shared by the
// unknown-user and wrong-password paths.
var ErrInvalidCredentials = &AuthenticationError{Reason: InvalidCredentials}

// VerificationReason classifies why a token failed verification.
type VerificationReason int

const (
	Malformed VerificationReason = iota + 1
	BadSignature
	Expired
)

func (r VerificationReason) String() string {
	switch r {
	case Malformed:
		return "malformed"
	case BadSignature:
		return "bad_signature"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

// VerificationError is internal detail; it is logged, never rendered.
type VerificationError struct {
	Reason VerificationReason
	err    error
}

// NewVerificationError classifies a token verification failure.
func NewVerificationError(reason VerificationReason, err error) *VerificationError {
	return &VerificationError{Reason: reason, err: err}
}

func (e *VerificationError) Error() string {
	if e.err == nil {
		return "token verification failed: " + e.Reason.String()
	}

	return errors.Wrap(e.err, "token verification failed: "+e.Reason.String()).Error()
}

func (e *VerificationError) Unwrap() error {
	return e.err
}

// AuthorizationReason classifies why the authorization gate denied a request.
type AuthorizationReason int

const (
	MissingToken AuthorizationReason = iota + 1
	InvalidToken
)

func (r AuthorizationReason) String() string {
	switch r {
	case MissingToken:
		return "missing_token"
	case InvalidToken:
		return "invalid_token"
	default:
		return "unknown"
	}
}

// AuthorizationError is produced by the authorization gate. Both reasons
// render the same response so callers cannot tell them apart.
type AuthorizationError struct {
	Reason AuthorizationReason
	err    error
}

// NewAuthorizationError builds a gate denial, optionally carrying the verification cause.
func NewAuthorizationError(reason AuthorizationReason, err error) *AuthorizationError {
	return &AuthorizationError{Reason: reason, err: err}
}

func (e *AuthorizationError) Error() string {
	if e.err == nil {
		return "authorization denied: " + e.Reason.String()
	}

	return errors.Wrap(e.err, "authorization denied: "+e.Reason.String()).Error()
}

func (e *AuthorizationError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *AuthorizationError) HTTPCode() int {
	return http.StatusUnauthorized
}

// ErrorCode returns the business error code
func (e *AuthorizationError) ErrorCode() string {
	return "UNAUTHORIZED"
}

// Message returns the user-friendly error message
func (e *AuthorizationError) Message() string {
	return "Access denied"
}

// Details returns detailed error information
func (e *AuthorizationError) Details() string {
	return ""
}
