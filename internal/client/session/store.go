// Package session persists the client's authentication state (token plus
// user summary) across runs, the way a browser keeps it in local storage.
package session

import (
	"context"

	"github.com/rentafind/rentafind/internal/client/models"
)

// Store is the durable session port. The default implementation is SQLite;
// tests use the in-memory store.
type Store interface {
	// Restore returns the last-persisted session, or the empty session when
	// nothing (or nothing usable) is stored. It never fails: a corrupt stored
	// user record yields a token-only session, any other read problem yields
	// the empty session.
	Restore(ctx context.Context) models.Session

	// Save persists token and user together. After a successful Save,
	// subsequent Restore calls observe the new value.
	Save(ctx context.Context, s models.Session) error

	// Clear removes the persisted token and user. Idempotent.
	Clear(ctx context.Context) error
}
