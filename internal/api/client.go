package api

import (
	"context"
	"time"

	"beppofit/cli/internal/session"
)

// AuthResponse is the session-establishing payload returned by register,
// login, and OAuth-callback completion.
type AuthResponse struct {
	Token string       `json:"token"`
	User  session.User `json:"user"`
}

// Client defines the backend operations the CLI depends on.
// Every call is a single request/response exchange with no retries; retrying
// is a caller concern. Implementations may call the real REST surface or
// provide fakes for tests.
type Client interface {
	// Register creates an account, or re-issues the verification artifact for
	// an existing unverified account. Both outcomes return the same payload
	// and are indistinguishable to the caller.
	Register(ctx context.Context, email, password string) (*AuthResponse, error)
	// Login exchanges credentials for a session payload.
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	// VerifyEmail redeems an email verification artifact and returns the
	// backend status text.
	VerifyEmail(ctx context.Context, token string) (string, error)
	// ForgotPassword requests a password reset email. The backend reports
	// success regardless of whether the email has an account.
	ForgotPassword(ctx context.Context, email string) (string, error)
	// ResetPassword redeems a reset artifact with a new password.
	ResetPassword(ctx context.Context, token, newPassword string) (string, error)
	// DeleteAccount deletes the account that issued the bearer token.
	DeleteAccount(ctx context.Context, token string) error
	// GoogleLoginURL returns the browser entry point for third-party login.
	GoogleLoginURL() string
}

// NewClient creates a protocol client for the backend at baseURL.
func NewClient(baseURL string, timeout time.Duration) Client {
	return newHTTP(baseURL, timeout)
}
