package session

import (
	"sync"

	"beppofit/cli/internal/logging"
)

// Controller is the sole mutator of the in-memory session and the single
// notification point for subscribers. All transitions happen under one mutex,
// so notifications are delivered in the order transitions occur and
// overlapping operation completions are applied in arrival order: the last
// response to resolve wins.
type Controller struct {
	mu      sync.Mutex
	store   Store
	current Session
	subs    []subscriber
	nextSub int
}

type subscriber struct {
	id int
	fn func(Session)
}

// NewController creates a controller over the given store. The controller
// starts anonymous; call Restore to derive the initial state from the store.
func NewController(store Store) *Controller {
	return &Controller{store: store}
}

// Restore derives the in-memory session from the store without any network
// call. A persisted token with a cached user yields an authenticated session.
// A token without a resolvable user cannot be completed (there is no
// mandatory fetch-current-user endpoint), so it is discarded and the session
// stays anonymous. Store read failures also degrade to anonymous.
func (c *Controller) Restore() {
	token, user, err := c.store.Load()
	if err != nil {
		logging.Debug.Debug().Err(err).Msg("session restore failed, staying anonymous")
		return
	}
	if token == "" {
		return
	}
	if user == nil {
		logging.Debug.Debug().Msg("token without cached user, discarding")
		_ = c.store.Clear()
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = Session{Token: token, User: user}
	c.notifyLocked()
}

// Establish persists the session and enters the authenticated state.
// Called on register, login, and OAuth-callback success.
func (c *Controller) Establish(token string, user *User) error {
	if err := c.store.Save(token, user); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = Session{Token: token, User: user}
	c.notifyLocked()
	return nil
}

// Logout clears the store and enters the anonymous state. It succeeds from
// any state, including when no session is active.
func (c *Controller) Logout() error {
	err := c.store.Clear()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = Session{}
	c.notifyLocked()
	return err
}

// Revoke handles credential revocation: a previously valid token rejected by
// the backend. The session is torn down like a logout. No-op when already
// anonymous.
func (c *Controller) Revoke() {
	c.mu.Lock()
	if c.current.Token == "" {
		c.mu.Unlock()
		return
	}
	c.current = Session{}
	c.notifyLocked()
	c.mu.Unlock()

	_ = c.store.Clear()
}

// Current returns the session value as of this call.
func (c *Controller) Current() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Authenticated reports whether a session is currently active.
func (c *Controller) Authenticated() bool {
	return c.Current().Authenticated()
}

// Token returns the current bearer token, or "" when anonymous.
func (c *Controller) Token() string {
	return c.Current().Token
}

// User returns the current cached user, or nil when anonymous.
func (c *Controller) User() *User {
	return c.Current().User
}

// Subscribe registers fn for session changes. fn is invoked immediately with
// the current state, then once per transition in the order transitions occur.
// Callbacks run under the controller lock and must not call back into the
// controller. The returned function cancels the subscription.
func (c *Controller) Subscribe(fn func(Session)) (cancel func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs = append(c.subs, subscriber{id: id, fn: fn})
	fn(c.current)
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

// notifyLocked delivers the current session to every subscriber in
// registration order. Callers must hold c.mu.
func (c *Controller) notifyLocked() {
	for _, s := range c.subs {
		s.fn(c.current)
	}
}
