package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const (
	testVerifyToken = "3f1c9a2e-1b9f-4a7e-8c2d-0f6e5d4c3b2a"
	testResetToken  = "a0b1c2d3-e4f5-4a6b-8c7d-9e0f1a2b3c4d"
)

// newBackend starts a fake identity backend with the semantics the client
// depends on: one verified account, one unverified account, fixed artifacts.
func newBackend(t *testing.T) *httptest.Server {
	t.Helper()

	writeJSON := func(w http.ResponseWriter, code int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(v)
	}
	authPayload := func(id, email string, verified bool) map[string]any {
		return map[string]any{
			"token": "issued-token-" + id,
			"user":  map[string]any{"id": id, "email": email, "is_verified": verified},
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var body struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&body)
		switch {
		case body.Email == "" || len(body.Password) < 8:
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "password: must be at least 8 characters"})
		case body.Email == "verified@example.com":
			writeJSON(w, http.StatusConflict, map[string]string{"error": "A user with this email address already exists"})
		case body.Email == "unverified@example.com":
			// Existing unverified account: resend verification, same payload
			// shape as a fresh registration.
			writeJSON(w, http.StatusOK, authPayload("u-2", body.Email, false))
		default:
			writeJSON(w, http.StatusOK, authPayload("u-new", body.Email, false))
		}
	})
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&body)
		switch {
		case body.Email == "verified@example.com" && body.Password == "correct-horse":
			writeJSON(w, http.StatusOK, authPayload("u-1", body.Email, true))
		case body.Email == "verified@example.com":
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Wrong password"})
		default:
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unknown e-mail"})
		}
	})
	mux.HandleFunc("GET /api/auth/verify", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("token") == testVerifyToken {
			writeJSON(w, http.StatusOK, "Email verified successfully")
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid or expired token"})
	})
	mux.HandleFunc("POST /api/auth/forgot-password", func(w http.ResponseWriter, r *http.Request) {
		// Always 200, regardless of account existence.
		writeJSON(w, http.StatusOK, "If an account exists, a reset email has been sent")
	})
	mux.HandleFunc("POST /api/auth/reset-password", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Token       string `json:"token"`
			NewPassword string `json:"new_password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Token == testResetToken {
			writeJSON(w, http.StatusOK, "Password reset successfully")
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid or expired token"})
	})
	mux.HandleFunc("DELETE /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer issued-token-u-1" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid Token"})
			return
		}
		writeJSON(w, http.StatusOK, "Account deleted successfully")
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRegister(t *testing.T) {
	srv := newBackend(t)
	c := NewClient(srv.URL, time.Second)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		wantKind Kind
	}{
		{
			name:     "fresh registration",
			email:    "new@example.com",
			password: "long-enough-pw",
		},
		{
			name:     "existing unverified account resends verification",
			email:    "unverified@example.com",
			password: "long-enough-pw",
		},
		{
			name:     "verified duplicate",
			email:    "verified@example.com",
			password: "long-enough-pw",
			wantKind: KindAccountExists,
		},
		{
			name:     "weak password",
			email:    "new@example.com",
			password: "short",
			wantKind: KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := c.Register(ctx, tt.email, tt.password)
			if tt.wantKind != "" {
				if !IsKind(err, tt.wantKind) {
					t.Fatalf("Register() error = %v, want kind %q", err, tt.wantKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("Register() error = %v", err)
			}
			if resp.Token == "" {
				t.Error("Register() returned empty token")
			}
			if resp.User.Email != tt.email {
				t.Errorf("Register() user email = %q, want %q", resp.User.Email, tt.email)
			}
		})
	}
}

func TestRegisterResendIsIdempotent(t *testing.T) {
	srv := newBackend(t)
	c := NewClient(srv.URL, time.Second)
	ctx := context.Background()

	// Both calls must succeed with the same payload shape, not conflict on
	// the second attempt.
	for i := 0; i < 2; i++ {
		resp, err := c.Register(ctx, "unverified@example.com", "long-enough-pw")
		if err != nil {
			t.Fatalf("Register() attempt %d error = %v", i+1, err)
		}
		if resp.Token == "" {
			t.Fatalf("Register() attempt %d returned empty token", i+1)
		}
	}
}

func TestLogin(t *testing.T) {
	srv := newBackend(t)
	c := NewClient(srv.URL, time.Second)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		wantKind Kind
	}{
		{
			name:     "correct credentials",
			email:    "verified@example.com",
			password: "correct-horse",
		},
		{
			name:     "wrong password",
			email:    "verified@example.com",
			password: "battery-staple",
			wantKind: KindInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "whatever-pw",
			wantKind: KindUnknownUser,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := c.Login(ctx, tt.email, tt.password)
			if tt.wantKind != "" {
				if !IsKind(err, tt.wantKind) {
					t.Fatalf("Login() error = %v, want kind %q", err, tt.wantKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login() error = %v", err)
			}
			if resp.User.ID != "u-1" {
				t.Errorf("Login() user = %q, want u-1", resp.User.ID)
			}
		})
	}
}

func TestVerifyEmail(t *testing.T) {
	srv := newBackend(t)
	c := NewClient(srv.URL, time.Second)
	ctx := context.Background()

	status, err := c.VerifyEmail(ctx, testVerifyToken)
	if err != nil {
		t.Fatalf("VerifyEmail() error = %v", err)
	}
	if status != "Email verified successfully" {
		t.Errorf("VerifyEmail() status = %q", status)
	}

	if _, err := c.VerifyEmail(ctx, "ffffffff-ffff-4fff-8fff-ffffffffffff"); !IsKind(err, KindInvalidToken) {
		t.Errorf("VerifyEmail() with expired token: error = %v, want invalid_token", err)
	}
	if _, err := c.VerifyEmail(ctx, "not-a-uuid"); !IsKind(err, KindInvalidToken) {
		t.Errorf("VerifyEmail() with malformed token: error = %v, want invalid_token", err)
	}
}

func TestForgotPasswordNeverRevealsAccounts(t *testing.T) {
	srv := newBackend(t)
	c := NewClient(srv.URL, time.Second)
	ctx := context.Background()

	known, err := c.ForgotPassword(ctx, "verified@example.com")
	if err != nil {
		t.Fatalf("ForgotPassword(known) error = %v", err)
	}
	unknown, err := c.ForgotPassword(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("ForgotPassword(unknown) error = %v", err)
	}
	if known != unknown {
		t.Errorf("responses differ for known vs unknown email: %q vs %q", known, unknown)
	}
}

func TestResetPassword(t *testing.T) {
	srv := newBackend(t)
	c := NewClient(srv.URL, time.Second)
	ctx := context.Background()

	status, err := c.ResetPassword(ctx, testResetToken, "new-password-1")
	if err != nil {
		t.Fatalf("ResetPassword() error = %v", err)
	}
	if status != "Password reset successfully" {
		t.Errorf("ResetPassword() status = %q", status)
	}

	if _, err := c.ResetPassword(ctx, "ffffffff-ffff-4fff-8fff-ffffffffffff", "new-password-1"); !IsKind(err, KindInvalidToken) {
		t.Errorf("ResetPassword() with expired token: error = %v, want invalid_token", err)
	}
}

func TestDeleteAccount(t *testing.T) {
	srv := newBackend(t)
	c := NewClient(srv.URL, time.Second)
	ctx := context.Background()

	if err := c.DeleteAccount(ctx, "issued-token-u-1"); err != nil {
		t.Fatalf("DeleteAccount() error = %v", err)
	}
	if err := c.DeleteAccount(ctx, "revoked-token"); !IsKind(err, KindNotAuthenticated) {
		t.Errorf("DeleteAccount() with bad token: error = %v, want not_authenticated", err)
	}
	if err := c.DeleteAccount(ctx, ""); !IsKind(err, KindNotAuthenticated) {
		t.Errorf("DeleteAccount() without token: error = %v, want not_authenticated", err)
	}
}

func TestServerFailuresMapToServerKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL, time.Second)
	ctx := context.Background()

	if _, err := c.Register(ctx, "a@example.com", "long-enough-pw"); !IsKind(err, KindServer) {
		t.Errorf("Register() on 500: error = %v, want server", err)
	}
	if _, err := c.Login(ctx, "a@example.com", "long-enough-pw"); !IsKind(err, KindServer) {
		t.Errorf("Login() on 500: error = %v, want server", err)
	}
	if _, err := c.ForgotPassword(ctx, "a@example.com"); !IsKind(err, KindServer) {
		t.Errorf("ForgotPassword() on 500: error = %v, want server", err)
	}
}

func TestNetworkFailureMapsToServerKind(t *testing.T) {
	// Connection refused: nothing listens on this port.
	c := NewClient("http://127.0.0.1:1", 500*time.Millisecond)
	_, err := c.Login(context.Background(), "a@example.com", "pw-long-enough")
	if !IsKind(err, KindServer) {
		t.Errorf("Login() against closed port: error = %v, want server", err)
	}
}
