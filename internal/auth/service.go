// Package auth provides the authentication service for the BeppoFit CLI.
// It orchestrates the protocol client and the session controller: successful
// register/login/OAuth outcomes establish a session, account deletion tears
// one down, and a rejected bearer credential revokes the session before the
// error reaches the caller.
package auth

import (
	"context"

	"beppofit/cli/internal/api"
	"beppofit/cli/internal/session"
)

// Service centralizes authentication operations against the backend and the
// local session state.
type Service struct {
	client   api.Client
	sessions *session.Controller
}

// NewService constructs an auth Service over the given protocol client and
// session controller.
func NewService(client api.Client, sessions *session.Controller) *Service {
	return &Service{client: client, sessions: sessions}
}

// Sessions exposes the session controller for read access and subscriptions.
func (s *Service) Sessions() *session.Controller { return s.sessions }

// GoogleLoginURL returns the browser entry point for third-party login.
func (s *Service) GoogleLoginURL() string { return s.client.GoogleLoginURL() }

// Register creates an account (or re-issues verification for an existing
// unverified one) and establishes the resulting session.
func (s *Service) Register(ctx context.Context, email, password string) (*session.User, error) {
	resp, err := s.client.Register(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Establish(resp.Token, &resp.User); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Login exchanges credentials for a session. Rejections leave the session
// state unchanged.
func (s *Service) Login(ctx context.Context, email, password string) (*session.User, error) {
	resp, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, s.observe(err)
	}
	if err := s.sessions.Establish(resp.Token, &resp.User); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Logout tears down the local session. It never calls the network; the
// backend holds no server-side session for this client.
func (s *Service) Logout() error {
	return s.sessions.Logout()
}

// VerifyEmail redeems an email verification artifact.
func (s *Service) VerifyEmail(ctx context.Context, token string) (string, error) {
	status, err := s.client.VerifyEmail(ctx, token)
	return status, s.observe(err)
}

// ForgotPassword requests a password reset email.
func (s *Service) ForgotPassword(ctx context.Context, email string) (string, error) {
	return s.client.ForgotPassword(ctx, email)
}

// ResetPassword redeems a reset artifact with a new password.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	return s.client.ResetPassword(ctx, token, newPassword)
}

// DeleteAccount deletes the account behind the current session. On success
// the session is torn down before control returns to the caller; deletion
// without teardown would leave a token for an account that no longer exists.
func (s *Service) DeleteAccount(ctx context.Context) error {
	token := s.sessions.Token()
	if token == "" {
		return api.New(api.KindNotAuthenticated, "no active session")
	}
	if err := s.client.DeleteAccount(ctx, token); err != nil {
		return s.observe(err)
	}
	return s.sessions.Logout()
}

// CompleteOAuthCallback finishes a third-party login from the redirect URL
// and establishes the resulting session.
func (s *Service) CompleteOAuthCallback(rawURL string) (*session.User, error) {
	resp, err := api.CompleteOAuthCallback(rawURL)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Establish(resp.Token, &resp.User); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// observe inspects an operation error before it propagates. A rejected bearer
// credential while a session is active means the token was revoked backend-side;
// the session is torn down so state reflects reality. All errors propagate
// unchanged.
func (s *Service) observe(err error) error {
	if err == nil {
		return nil
	}
	if api.IsAuthRejection(err) && s.sessions.Authenticated() {
		s.sessions.Revoke()
	}
	return err
}
