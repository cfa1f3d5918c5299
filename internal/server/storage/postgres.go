package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rentafind/rentafind/internal/common"
	"github.com/rentafind/rentafind/internal/dbx"
)

// PostgresStore keeps images in the house_images table next to the listings.
type PostgresStore struct {
	db dbx.DBTX
}

func NewPostgresStore(db dbx.DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, houseID string, data []byte, contentType string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO house_images (house_id, content_type, data) VALUES ($1, $2, $3)
		ON CONFLICT (house_id) DO UPDATE SET content_type = excluded.content_type, data = excluded.data
	`, houseID, contentType, data)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context, houseID string) ([]byte, string, error) {
	var (
		data        []byte
		contentType string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT data, content_type FROM house_images WHERE house_id = $1`, houseID).
		Scan(&data, &contentType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", common.ErrorNotFound
		}
		return nil, "", fmt.Errorf("db error: %w", err)
	}
	return data, contentType, nil
}

func (s *PostgresStore) Delete(ctx context.Context, houseID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM house_images WHERE house_id = $1`, houseID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
