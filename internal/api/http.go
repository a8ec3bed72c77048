package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"beppofit/cli/internal/logging"
)

// HTTP implements Client over the backend REST endpoints.
type HTTP struct {
	baseURL string
	client  *http.Client
}

// newHTTP creates an HTTP client with the given base URL and per-request timeout.
func newHTTP(baseURL string, timeout time.Duration) *HTTP {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTP{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Register posts credentials to /api/auth/register.
// A 200 covers both a fresh registration and the unverified-resend case.
func (h *HTTP) Register(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	resp, err := h.postJSON(ctx, "/api/auth/register", body)
	if err != nil {
		return nil, Wrap(KindServer, "registration request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		return decodeAuthResponse(resp.Body)
	case resp.StatusCode == http.StatusConflict:
		return nil, New(KindAccountExists, errorMessage(resp.Body, "account already exists"))
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, New(KindValidation, errorMessage(resp.Body, "invalid registration input"))
	default:
		return nil, New(KindServer, fmt.Sprintf("registration failed with status %d", resp.StatusCode))
	}
}

// Login posts credentials to /api/auth/login. The backend distinguishes an
// unknown email from a wrong password by an "unknown e-mail" indicator in the
// rejection message; both leave the caller anonymous.
func (h *HTTP) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	resp, err := h.postJSON(ctx, "/api/auth/login", body)
	if err != nil {
		return nil, Wrap(KindServer, "login request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return decodeAuthResponse(resp.Body)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusNotFound:
		msg := errorMessage(resp.Body, "login rejected")
		if strings.Contains(strings.ToLower(msg), "unknown e-mail") {
			return nil, New(KindUnknownUser, msg)
		}
		return nil, New(KindInvalidCredentials, msg)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, New(KindValidation, errorMessage(resp.Body, "invalid login input"))
	default:
		return nil, New(KindServer, fmt.Sprintf("login failed with status %d", resp.StatusCode))
	}
}

// VerifyEmail redeems a verification artifact via GET /api/auth/verify.
// Artifacts are UUIDs; a malformed one is rejected without a round trip.
func (h *HTTP) VerifyEmail(ctx context.Context, token string) (string, error) {
	if err := uuid.Validate(token); err != nil {
		return "", New(KindInvalidToken, "malformed verification token")
	}

	u := h.baseURL + "/api/auth/verify?token=" + url.QueryEscape(token)
	logging.Debug.Debug().Str("url", logging.Mask(u)).Msg("GET")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", Wrap(KindServer, "building verify request", err)
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return "", Wrap(KindServer, "verify request failed", err)
	}
	defer resp.Body.Close()

	return decodeStatus(resp, KindInvalidToken, "invalid or expired token")
}

// ForgotPassword posts to /api/auth/forgot-password. The backend always
// answers 200 with a neutral status text so callers cannot probe whether an
// email has an account.
func (h *HTTP) ForgotPassword(ctx context.Context, email string) (string, error) {
	resp, err := h.postJSON(ctx, "/api/auth/forgot-password", map[string]string{"email": email})
	if err != nil {
		return "", Wrap(KindServer, "forgot-password request failed", err)
	}
	defer resp.Body.Close()

	return decodeStatus(resp, KindServer, "forgot-password rejected")
}

// ResetPassword posts to /api/auth/reset-password.
func (h *HTTP) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	if err := uuid.Validate(token); err != nil {
		return "", New(KindInvalidToken, "malformed reset token")
	}

	body := map[string]string{"token": token, "new_password": newPassword}
	resp, err := h.postJSON(ctx, "/api/auth/reset-password", body)
	if err != nil {
		return "", Wrap(KindServer, "reset-password request failed", err)
	}
	defer resp.Body.Close()

	return decodeStatus(resp, KindInvalidToken, "invalid or expired token")
}

// DeleteAccount issues DELETE /api/auth/me with the bearer token.
func (h *HTTP) DeleteAccount(ctx context.Context, token string) error {
	if token == "" {
		return New(KindNotAuthenticated, "no active session")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, h.baseURL+"/api/auth/me", nil)
	if err != nil {
		return Wrap(KindServer, "building delete request", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := h.client.Do(req)
	if err != nil {
		return Wrap(KindServer, "delete request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNoContent:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return New(KindNotAuthenticated, errorMessage(resp.Body, "session no longer valid"))
	default:
		return New(KindServer, fmt.Sprintf("account deletion failed with status %d", resp.StatusCode))
	}
}

// GoogleLoginURL returns the third-party login entry point. Opening it in a
// browser starts the redirect flow; completion arrives back as a query
// parameter carrying the issued token (see CompleteOAuthCallback).
func (h *HTTP) GoogleLoginURL() string {
	return h.baseURL + "/api/auth/google"
}

// postJSON sends a JSON POST and returns the raw response.
func (h *HTTP) postJSON(ctx context.Context, path string, body any) (*http.Response, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, */*")

	logging.Debug.Debug().Str("path", path).Msg("POST")
	return h.client.Do(req)
}

// decodeAuthResponse parses a {token, user} payload.
func decodeAuthResponse(r io.Reader) (*AuthResponse, error) {
	var out AuthResponse
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, Wrap(KindServer, "malformed auth response", err)
	}
	if out.Token == "" {
		return nil, New(KindServer, "auth response carried no token")
	}
	return &out, nil
}

// decodeStatus maps a status-text response: 200 yields the text, 4xx yields
// an error of rejectKind, anything else is a server failure.
func decodeStatus(resp *http.Response, rejectKind Kind, fallback string) (string, error) {
	if resp.StatusCode == http.StatusOK {
		return statusText(resp.Body), nil
	}
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return "", New(rejectKind, errorMessage(resp.Body, fallback))
	}
	return "", New(KindServer, fmt.Sprintf("request failed with status %d", resp.StatusCode))
}

// statusText extracts the backend status string from a 200 body: either a
// bare JSON string or plain text.
func statusText(r io.Reader) string {
	b, err := io.ReadAll(r)
	if err != nil {
		return ""
	}
	var s string
	if json.Unmarshal(b, &s) == nil {
		return s
	}
	return strings.TrimSpace(string(b))
}

// errorMessage extracts the backend rejection message: {"error": "..."} JSON
// bodies, bare JSON strings, or plain text, falling back when empty.
func errorMessage(r io.Reader, fallback string) string {
	b, err := io.ReadAll(r)
	if err != nil || len(bytes.TrimSpace(b)) == 0 {
		return fallback
	}
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(b, &payload) == nil && payload.Error != "" {
		return payload.Error
	}
	var s string
	if json.Unmarshal(b, &s) == nil && s != "" {
		return s
	}
	return strings.TrimSpace(string(b))
}
