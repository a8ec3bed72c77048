// Package guard implements the gate evaluated before entering protected areas.
// The predicate consults live session state on every call, never a snapshot:
// state may have changed between process start and the navigation attempt.
package guard

import (
	"github.com/spf13/cobra"

	"beppofit/cli/internal/api"
	"beppofit/cli/internal/session"
)

// LoginRedirect is the target a denied navigation is redirected to.
const LoginRedirect = "/auth/login"

// Decision is the outcome of a guard check.
type Decision struct {
	Allowed bool
	// RedirectTo is the login entry point when the check is denied.
	RedirectTo string
}

// Guard gates protected areas on session state.
type Guard struct {
	sessions *session.Controller
}

// New creates a guard over the given session controller.
func New(sessions *session.Controller) *Guard {
	return &Guard{sessions: sessions}
}

// Check evaluates the gate against the live session state.
func (g *Guard) Check() Decision {
	if g.sessions.Authenticated() {
		return Decision{Allowed: true}
	}
	return Decision{Allowed: false, RedirectTo: LoginRedirect}
}

// Require adapts the guard to a cobra PreRunE for protected commands. Denied
// commands fail with the not-authenticated outcome and a login hint instead
// of running.
func Require(g *Guard) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if d := g.Check(); !d.Allowed {
			return api.New(api.KindNotAuthenticated, "you are not logged in; run 'beppofit login' first")
		}
		return nil
	}
}
