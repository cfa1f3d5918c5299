package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/rentafind/rentafind/internal/client/models"
	"github.com/rentafind/rentafind/internal/dbx"
)

// Storage keys, mirroring the two browser local-storage entries.
const (
	keyToken = "token"
	keyUser  = "user"
)

// SQLiteStore keeps the session in a small key-value table inside the
// client's local database.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session[%s]: %w", key, err)
	}
	return value, nil
}

func set(ctx context.Context, tx dbx.DBTX, key string, value []byte) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", key, err)
	}
	return nil
}

// Restore loads the persisted session. A missing token yields the empty
// session; a present token with a missing or corrupt user record yields a
// token-only session.
func (s *SQLiteStore) Restore(ctx context.Context) models.Session {
	token, err := s.get(ctx, keyToken)
	if err != nil || len(token) == 0 {
		return models.Session{}
	}

	sess := models.Session{Token: string(token)}

	raw, err := s.get(ctx, keyUser)
	if err != nil || len(raw) == 0 {
		return sess
	}
	var user models.UserSummary
	if err := json.Unmarshal(raw, &user); err != nil {
		// Corrupt user record: keep the token, drop the snapshot.
		return sess
	}
	sess.User = &user
	return sess
}

// Save writes token and user in a single transaction so a reader never
// observes one without the other.
func (s *SQLiteStore) Save(ctx context.Context, sess models.Session) error {
	var userJSON []byte
	if sess.User != nil {
		var err error
		userJSON, err = json.Marshal(sess.User)
		if err != nil {
			return fmt.Errorf("encoding user: %w", err)
		}
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := set(ctx, tx, keyToken, []byte(sess.Token)); err != nil {
			return err
		}
		return set(ctx, tx, keyUser, userJSON)
	})
}

// Clear removes both entries. Running it twice is harmless.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM session WHERE key IN (?, ?)`, keyToken, keyUser)
		if err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
		return nil
	})
}
