package guard

import (
	"testing"

	"beppofit/cli/internal/api"
	"beppofit/cli/internal/session"
)

type memStore struct {
	token string
	user  *session.User
}

func (m *memStore) Save(token string, user *session.User) error {
	m.token = token
	m.user = user
	return nil
}

func (m *memStore) Load() (string, *session.User, error) { return m.token, m.user, nil }

func (m *memStore) Clear() error {
	m.token = ""
	m.user = nil
	return nil
}

func TestCheckDeniesAnonymous(t *testing.T) {
	g := New(session.NewController(&memStore{}))

	d := g.Check()
	if d.Allowed {
		t.Fatal("anonymous session must be denied")
	}
	if d.RedirectTo != LoginRedirect {
		t.Errorf("RedirectTo = %q, want %q", d.RedirectTo, LoginRedirect)
	}
}

func TestCheckAllowsAuthenticated(t *testing.T) {
	ctrl := session.NewController(&memStore{})
	if err := ctrl.Establish("tok-1", &session.User{ID: "u-1", Email: "a@example.com"}); err != nil {
		t.Fatal(err)
	}

	d := New(ctrl).Check()
	if !d.Allowed {
		t.Fatal("authenticated session must be allowed")
	}
	if d.RedirectTo != "" {
		t.Errorf("RedirectTo = %q, want empty on allow", d.RedirectTo)
	}
}

func TestCheckTracksSessionTransitions(t *testing.T) {
	ctrl := session.NewController(&memStore{})
	g := New(ctrl)

	if g.Check().Allowed {
		t.Fatal("expected deny before login")
	}
	if err := ctrl.Establish("tok-1", &session.User{ID: "u-1"}); err != nil {
		t.Fatal(err)
	}
	if !g.Check().Allowed {
		t.Fatal("expected allow after login")
	}
	if err := ctrl.Logout(); err != nil {
		t.Fatal(err)
	}
	if g.Check().Allowed {
		t.Fatal("expected deny after logout")
	}
}

func TestRequireDeniesWithAuthOutcome(t *testing.T) {
	g := New(session.NewController(&memStore{}))

	err := Require(g)(nil, nil)
	if !api.IsKind(err, api.KindNotAuthenticated) {
		t.Fatalf("Require() error = %v, want not_authenticated", err)
	}
}

func TestRequireAllowsAuthenticated(t *testing.T) {
	ctrl := session.NewController(&memStore{})
	if err := ctrl.Establish("tok-1", &session.User{ID: "u-1"}); err != nil {
		t.Fatal(err)
	}

	if err := Require(New(ctrl))(nil, nil); err != nil {
		t.Fatalf("Require() error = %v, want nil", err)
	}
}
