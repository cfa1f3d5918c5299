package auth

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentafind/rentafind/internal/client/api"
	"github.com/rentafind/rentafind/internal/client/models"
	"github.com/rentafind/rentafind/internal/client/session"
	"github.com/rentafind/rentafind/internal/logging"
)

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (l nopLogger) With(...any) logging.Logger          { return l }

type fakeAPI struct {
	loginCalls  int
	signupCalls int

	loginUser, loginPass string

	resp *api.AuthResponse
	err  error

	// onLogin runs inside Login before returning, simulating work that
	// happens while the request is in flight.
	onLogin func()

	token string
}

func (f *fakeAPI) Login(_ context.Context, username, password string) (*api.AuthResponse, error) {
	f.loginCalls++
	f.loginUser, f.loginPass = username, password
	if f.onLogin != nil {
		f.onLogin()
	}
	return f.resp, f.err
}

func (f *fakeAPI) Signup(_ context.Context, username, email, password string) (*api.AuthResponse, error) {
	f.signupCalls++
	return f.resp, f.err
}

func (f *fakeAPI) SetToken(token string) { f.token = token }
func (f *fakeAPI) ClearToken()           { f.token = "" }
func (f *fakeAPI) Token() string         { return f.token }

func newTestController(f *fakeAPI, store session.Store) *Controller {
	return NewController(f, store, nopLogger{})
}

func TestController_StartsLoading(t *testing.T) {
	c := newTestController(&fakeAPI{}, session.NewMemoryStore())
	assert.Equal(t, StateLoading, c.State())
}

func TestController_RestoreEmptyStore(t *testing.T) {
	c := newTestController(&fakeAPI{}, session.NewMemoryStore())

	var notified []State
	c.Subscribe(func(st State) { notified = append(notified, st) })

	c.Restore(context.Background())

	assert.Equal(t, StateUnauthenticated, c.State())
	assert.Nil(t, c.User())
	assert.Equal(t, []State{StateUnauthenticated}, notified)
}

func TestController_RestoreSavedSession(t *testing.T) {
	f := &fakeAPI{}
	store := session.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), models.Session{
		Token: "tok-1",
		User:  &models.UserSummary{ID: "u1", Username: "alice"},
	}))

	c := newTestController(f, store)
	c.Restore(context.Background())

	assert.Equal(t, StateAuthenticated, c.State())
	assert.Equal(t, "tok-1", f.token)
	require.NotNil(t, c.User())
	assert.Equal(t, "alice", c.User().Username)
}

func TestController_RestoreTokenWithoutUser(t *testing.T) {
	f := &fakeAPI{}
	store := session.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), models.Session{Token: "tok-1"}))

	c := newTestController(f, store)
	c.Restore(context.Background())

	// The token alone authenticates; the snapshot can be re-fetched later.
	assert.Equal(t, StateAuthenticated, c.State())
	assert.Nil(t, c.User())
}

func TestController_LoginSuccess(t *testing.T) {
	f := &fakeAPI{resp: &api.AuthResponse{Token: "tok-9", ID: "u1", Username: "alice", Email: "a@b.c"}}
	store := session.NewMemoryStore()
	c := newTestController(f, store)
	c.Restore(context.Background())

	err := c.Login(context.Background(), models.Credentials{Username: "  alice  ", Password: "secret"})
	require.NoError(t, err)

	assert.Equal(t, "alice", f.loginUser, "username is trimmed before the request")
	assert.Equal(t, StateAuthenticated, c.State())
	assert.Equal(t, "tok-9", f.token)

	persisted := store.Restore(context.Background())
	assert.Equal(t, "tok-9", persisted.Token)
	require.NotNil(t, persisted.User)
	assert.Equal(t, "u1", persisted.User.ID)
}

func TestController_LoginPositionalAndStructuredMatch(t *testing.T) {
	f := &fakeAPI{resp: &api.AuthResponse{Token: "t", ID: "u1"}}
	c := newTestController(f, session.NewMemoryStore())
	c.Restore(context.Background())

	require.NoError(t, c.LoginWith(context.Background(), "bob", "pw"))
	assert.Equal(t, "bob", f.loginUser)
	assert.Equal(t, "pw", f.loginPass)
}

func TestController_LoginEmptyFieldsSkipsNetwork(t *testing.T) {
	f := &fakeAPI{}
	c := newTestController(f, session.NewMemoryStore())
	c.Restore(context.Background())

	err := c.Login(context.Background(), models.Credentials{Username: "   ", Password: "pw"})
	var ae *Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, KindValidation, ae.Kind)
	assert.Zero(t, f.loginCalls)
}

func TestController_LoginErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind Kind
		wantMsg  string
	}{
		{
			name:     "unauthorized",
			err:      &api.StatusError{Status: http.StatusUnauthorized, Message: "Invalid username or password"},
			wantKind: KindInvalidCredentials,
			wantMsg:  "Invalid username or password",
		},
		{
			name:     "bad request",
			err:      &api.StatusError{Status: http.StatusBadRequest, Message: "invalid request body"},
			wantKind: KindValidation,
			wantMsg:  "invalid request body",
		},
		{
			name:     "server error",
			err:      &api.StatusError{Status: http.StatusInternalServerError, Message: "internal error"},
			wantKind: KindNetworkOrServer,
			wantMsg:  "internal error",
		},
		{
			name:     "transport failure",
			err:      &api.TransportError{Err: context.DeadlineExceeded, Timeout: true},
			wantKind: KindNetworkOrServer,
			wantMsg:  "login failed, please try again",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeAPI{err: tt.err}
			c := newTestController(f, session.NewMemoryStore())
			c.Restore(context.Background())

			err := c.LoginWith(context.Background(), "alice", "pw")
			var ae *Error
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, tt.wantKind, ae.Kind)
			assert.Equal(t, tt.wantMsg, ae.Message)
			assert.Equal(t, StateUnauthenticated, c.State())
		})
	}
}

func TestController_LoginDropsStaleResponse(t *testing.T) {
	f := &fakeAPI{resp: &api.AuthResponse{Token: "late", ID: "u1"}}
	store := session.NewMemoryStore()
	c := newTestController(f, store)
	c.Restore(context.Background())

	// The state machine moves on while the login request is in flight.
	f.onLogin = func() { c.Logout(context.Background()) }

	err := c.LoginWith(context.Background(), "alice", "pw")
	var ae *Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, KindNetworkOrServer, ae.Kind)

	assert.Equal(t, StateUnauthenticated, c.State())
	assert.Empty(t, f.token, "late response must not install a token")
	assert.False(t, store.Restore(context.Background()).IsAuthenticated())
}

func TestController_SignupConfirmMismatchSkipsNetwork(t *testing.T) {
	f := &fakeAPI{}
	c := newTestController(f, session.NewMemoryStore())
	c.Restore(context.Background())

	err := c.Signup(context.Background(), models.SignupRequest{
		Username: "alice", Email: "a@b.c", Password: "secret",
	}, "different")

	var ae *Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, KindValidation, ae.Kind)
	assert.Equal(t, "passwords do not match", ae.Message)
	assert.Zero(t, f.signupCalls)
}

func TestController_SignupSuccess(t *testing.T) {
	f := &fakeAPI{resp: &api.AuthResponse{Token: "tok-s", ID: "u2", Username: "bob", Email: "b@b.c"}}
	c := newTestController(f, session.NewMemoryStore())
	c.Restore(context.Background())

	err := c.Signup(context.Background(), models.SignupRequest{
		Username: "bob", Email: "b@b.c", Password: "secret",
	}, "secret")
	require.NoError(t, err)

	assert.Equal(t, StateAuthenticated, c.State())
	assert.Equal(t, "tok-s", f.token)
}

func TestController_SignupConflict(t *testing.T) {
	f := &fakeAPI{err: &api.StatusError{Status: http.StatusBadRequest, Message: "username already exists"}}
	c := newTestController(f, session.NewMemoryStore())
	c.Restore(context.Background())

	err := c.Signup(context.Background(), models.SignupRequest{
		Username: "bob", Email: "b@b.c", Password: "secret",
	}, "secret")

	var ae *Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, KindValidation, ae.Kind)
	assert.Equal(t, "username already exists", ae.Message)
}

func TestController_LogoutThenRestoreStaysOut(t *testing.T) {
	f := &fakeAPI{resp: &api.AuthResponse{Token: "tok", ID: "u1"}}
	store := session.NewMemoryStore()
	c := newTestController(f, store)
	c.Restore(context.Background())
	require.NoError(t, c.LoginWith(context.Background(), "alice", "pw"))

	c.Logout(context.Background())
	assert.Equal(t, StateUnauthenticated, c.State())
	assert.Empty(t, f.token)

	// A fresh process start sees no session.
	c2 := newTestController(&fakeAPI{}, store)
	c2.Restore(context.Background())
	assert.Equal(t, StateUnauthenticated, c2.State())
}

func TestController_SessionExpiredClearsOncePerEpoch(t *testing.T) {
	f := &fakeAPI{resp: &api.AuthResponse{Token: "tok", ID: "u1"}}
	store := session.NewMemoryStore()
	c := newTestController(f, store)
	c.Restore(context.Background())
	require.NoError(t, c.LoginWith(context.Background(), "alice", "pw"))

	var notifications int
	c.Subscribe(func(st State) {
		if st == StateUnauthenticated {
			notifications++
		}
	})

	// Two concurrent requests observe 401 with the same starting epoch.
	epoch := c.Epoch()
	c.SessionExpired(context.Background(), epoch)
	c.SessionExpired(context.Background(), epoch)

	assert.Equal(t, StateUnauthenticated, c.State())
	assert.Equal(t, 1, notifications, "the second 401 must be a no-op")
	assert.False(t, store.Restore(context.Background()).IsAuthenticated())
}

func TestController_SessionExpiredIgnoresStaleEpoch(t *testing.T) {
	f := &fakeAPI{resp: &api.AuthResponse{Token: "tok", ID: "u1"}}
	c := newTestController(f, session.NewMemoryStore())
	c.Restore(context.Background())
	require.NoError(t, c.LoginWith(context.Background(), "alice", "pw"))

	stale := c.Epoch()

	// The user logs out and back in before the old 401 arrives.
	c.Logout(context.Background())
	require.NoError(t, c.LoginWith(context.Background(), "alice", "pw"))

	c.SessionExpired(context.Background(), stale)
	assert.Equal(t, StateAuthenticated, c.State(), "a late 401 must not kill the new session")
}

func TestController_UpdateUserReplacesSnapshot(t *testing.T) {
	f := &fakeAPI{resp: &api.AuthResponse{Token: "tok", ID: "u1", Username: "alice", Email: "a@b.c"}}
	store := session.NewMemoryStore()
	c := newTestController(f, store)
	c.Restore(context.Background())
	require.NoError(t, c.LoginWith(context.Background(), "alice", "pw"))

	c.UpdateUser(context.Background(), models.UserSummary{ID: "u1", Username: "alice2", Email: "a2@b.c"})

	require.NotNil(t, c.User())
	assert.Equal(t, "alice2", c.User().Username)
	assert.Equal(t, "tok", f.token, "token is untouched by profile updates")

	persisted := store.Restore(context.Background())
	assert.Equal(t, "tok", persisted.Token)
	require.NotNil(t, persisted.User)
	assert.Equal(t, "alice2", persisted.User.Username)
}

func TestController_UpdateUserNoOpWhenLoggedOut(t *testing.T) {
	c := newTestController(&fakeAPI{}, session.NewMemoryStore())
	c.Restore(context.Background())

	c.UpdateUser(context.Background(), models.UserSummary{ID: "u1"})
	assert.Nil(t, c.User())
}
