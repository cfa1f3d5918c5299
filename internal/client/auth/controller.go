// Package auth owns the client's authentication lifecycle: restoring a saved
// session at startup, login/signup/logout transitions, and reacting to
// unauthorized responses from the backend.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/rentafind/rentafind/internal/client/api"
	"github.com/rentafind/rentafind/internal/client/models"
	"github.com/rentafind/rentafind/internal/client/session"
	"github.com/rentafind/rentafind/internal/logging"
)

// State is the controller's authentication state.
type State int

const (
	// StateLoading exists only between process start and the first Restore.
	// Auth-gated decisions must be deferred while in it.
	StateLoading State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// API is the slice of the HTTP client the controller drives. The concrete
// *api.Client satisfies it; tests provide fakes.
type API interface {
	Login(ctx context.Context, username, password string) (*api.AuthResponse, error)
	Signup(ctx context.Context, username, email, password string) (*api.AuthResponse, error)
	SetToken(token string)
	ClearToken()
	Token() string
}

// Controller is the auth state machine. All state changes go through it;
// the HTTP client and the session store never transition on their own.
type Controller struct {
	api   API
	store session.Store
	log   logging.Logger

	mu    sync.Mutex
	state State
	user  *models.UserSummary
	// epoch increments on every settled transition. In-flight work captures
	// it before the network call and is discarded when it no longer matches,
	// so a late response can never resurrect or re-clear session state.
	epoch uint64
	subs  []func(State)
}

// NewController builds a controller in the Loading state. Call Restore once
// at process start to settle it.
func NewController(a API, store session.Store, log logging.Logger) *Controller {
	return &Controller{api: a, store: store, log: log, state: StateLoading}
}

// Restore loads the persisted session and settles the initial state. A token
// in the store means Authenticated even when the stored user snapshot was
// missing or unreadable.
func (c *Controller) Restore(ctx context.Context) {
	sess := c.store.Restore(ctx)

	c.mu.Lock()
	if sess.IsAuthenticated() {
		c.api.SetToken(sess.Token)
		c.user = sess.User
		c.state = StateAuthenticated
	} else {
		c.user = nil
		c.state = StateUnauthenticated
	}
	c.epoch++
	st := c.state
	c.mu.Unlock()

	c.log.Info(ctx, "session restored", "state", st.String())
	c.notify(st)
}

// State returns the current authentication state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// User returns a copy of the current user snapshot, or nil.
func (c *Controller) User() *models.UserSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return nil
	}
	u := *c.user
	return &u
}

// Epoch returns the current transition epoch. Callers issuing authenticated
// requests capture it and hand it back to SessionExpired so stale responses
// are dropped.
func (c *Controller) Epoch() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.epoch
}

// Subscribe registers fn to run after every settled state transition.
// Views use this to redirect when the session ends.
func (c *Controller) Subscribe(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

func (c *Controller) notify(st State) {
	c.mu.Lock()
	subs := make([]func(State), len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()
	for _, fn := range subs {
		fn(st)
	}
}

// Login authenticates with structured credentials.
func (c *Controller) Login(ctx context.Context, creds models.Credentials) error {
	return c.login(ctx, creds.Username, creds.Password)
}

// LoginWith authenticates with positional username/password. Both calling
// conventions normalize to the same request.
func (c *Controller) LoginWith(ctx context.Context, username, password string) error {
	return c.login(ctx, username, password)
}

func (c *Controller) login(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return validationFailed("username and password are required")
	}

	start := c.Epoch()

	resp, err := c.api.Login(ctx, username, password)
	if err != nil {
		return mapLoginError(err)
	}

	if !c.applyAuthResponse(ctx, start, resp) {
		// A logout or another login settled first; drop this response.
		return networkOrServer("session changed during login, please retry")
	}
	return nil
}

// Signup registers a new account. The confirmation password is checked
// locally; no request is made when it does not match.
func (c *Controller) Signup(ctx context.Context, req models.SignupRequest, confirmPassword string) error {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return validationFailed("username, email and password are required")
	}
	if req.Password != confirmPassword {
		return validationFailed("passwords do not match")
	}

	start := c.Epoch()

	resp, err := c.api.Signup(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		return mapSignupError(err)
	}

	if !c.applyAuthResponse(ctx, start, resp) {
		return networkOrServer("session changed during signup, please retry")
	}
	return nil
}

// applyAuthResponse installs a successful auth payload, unless the state
// machine has moved on since the request was issued.
func (c *Controller) applyAuthResponse(ctx context.Context, startEpoch uint64, resp *api.AuthResponse) bool {
	user := &models.UserSummary{ID: resp.ID, Username: resp.Username, Email: resp.Email}

	c.mu.Lock()
	if c.epoch != startEpoch {
		c.mu.Unlock()
		return false
	}
	c.api.SetToken(resp.Token)
	c.user = user
	c.state = StateAuthenticated
	c.epoch++
	c.mu.Unlock()

	if err := c.store.Save(ctx, models.Session{Token: resp.Token, User: user}); err != nil {
		// The live session stands; only cross-restart persistence suffered.
		c.log.Warn(ctx, "failed to persist session", "error", err)
	}

	c.notify(StateAuthenticated)
	return true
}

// Logout drops the session. Safe to call in any state.
func (c *Controller) Logout(ctx context.Context) {
	c.mu.Lock()
	c.api.ClearToken()
	c.user = nil
	c.state = StateUnauthenticated
	c.epoch++
	c.mu.Unlock()

	if err := c.store.Clear(ctx); err != nil {
		c.log.Warn(ctx, "failed to clear persisted session", "error", err)
	}

	c.notify(StateUnauthenticated)
}

// UpdateUser replaces the user snapshot wholesale after a profile update.
// The token is unchanged. No-op unless authenticated.
func (c *Controller) UpdateUser(ctx context.Context, user models.UserSummary) {
	c.mu.Lock()
	if c.state != StateAuthenticated {
		c.mu.Unlock()
		return
	}
	u := user
	c.user = &u
	token := c.api.Token()
	c.mu.Unlock()

	if err := c.store.Save(ctx, models.Session{Token: token, User: &user}); err != nil {
		c.log.Warn(ctx, "failed to persist updated user", "error", err)
	}
}

// SessionExpired handles an unauthorized response observed by a caller.
// startEpoch is the value of Epoch() when that request was issued: a late
// response from before the last transition is ignored, so the clear-side
// effects run exactly once per session.
func (c *Controller) SessionExpired(ctx context.Context, startEpoch uint64) {
	c.mu.Lock()
	if c.epoch != startEpoch || c.state != StateAuthenticated {
		c.mu.Unlock()
		return
	}
	c.api.ClearToken()
	c.user = nil
	c.state = StateUnauthenticated
	c.epoch++
	c.mu.Unlock()

	if err := c.store.Clear(ctx); err != nil {
		c.log.Warn(ctx, "failed to clear expired session", "error", err)
	}

	c.log.Info(ctx, "session expired")
	c.notify(StateUnauthenticated)
}

func mapLoginError(err error) *Error {
	var se *api.StatusError
	if errors.As(err, &se) {
		switch {
		case se.Status == http.StatusUnauthorized:
			return invalidCredentials(api.ErrorMessage(err, "Invalid username or password"))
		case se.Status >= 400 && se.Status < 500:
			return validationFailed(api.ErrorMessage(err, "invalid login request"))
		}
	}
	return networkOrServer(api.ErrorMessage(err, "login failed, please try again"))
}

func mapSignupError(err error) *Error {
	var se *api.StatusError
	if errors.As(err, &se) && se.Status >= 400 && se.Status < 500 {
		return validationFailed(api.ErrorMessage(err, "Registration failed. Please try again."))
	}
	return networkOrServer(api.ErrorMessage(err, "Registration failed. Please try again."))
}
