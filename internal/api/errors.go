// Package api implements the protocol client for the BeppoFit identity
// backend. It wraps the REST surface in typed operations and normalizes
// backend responses into a uniform outcome: a payload on success, an *Error
// with a machine-readable Kind on failure.
package api

import (
	"errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// KindValidation indicates malformed input (bad email, weak password);
	// recoverable by the user correcting the form.
	KindValidation Kind = "validation"
	// KindInvalidCredentials indicates a login rejected for a wrong password.
	KindInvalidCredentials Kind = "invalid_credentials"
	// KindUnknownUser indicates a login attempt for an email with no account.
	KindUnknownUser Kind = "unknown_user"
	// KindInvalidToken indicates an invalid or expired verification artifact.
	KindInvalidToken Kind = "invalid_token"
	// KindNotAuthenticated indicates an authenticated-only operation was
	// attempted without a valid session.
	KindNotAuthenticated Kind = "not_authenticated"
	// KindAccountExists indicates registration against an already verified account.
	KindAccountExists Kind = "account_exists"
	// KindOAuthCallback indicates a third-party login redirect that carried no token.
	KindOAuthCallback Kind = "oauth_callback"
	// KindServer indicates a backend or network failure; the operation is
	// safely retriable by re-invocation.
	KindServer Kind = "server"
)

// Error wraps an error with a kind and a human-friendly message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Wrap builds an *Error around an underlying cause.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// New builds an *Error with no underlying cause.
func New(kind Kind, msg string) *Error { return &Error{Kind: kind, Message: msg} }

// KindOf returns the kind of err, or "" when err carries no *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries an *Error of the given kind.
func IsKind(err error, kind Kind) bool { return KindOf(err) == kind }

// IsAuthRejection reports whether err means the backend rejected the bearer
// credential. This is the only error category that forces an authenticated
// session back to anonymous.
func IsAuthRejection(err error) bool { return IsKind(err, KindNotAuthenticated) }
