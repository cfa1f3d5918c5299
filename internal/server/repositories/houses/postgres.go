package houses

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rentafind/rentafind/internal/common"
	"github.com/rentafind/rentafind/internal/dbx"
	"github.com/rentafind/rentafind/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const houseColumns = `id, owner_id, type, phone_number, district, city, has_image, created_at`

func scanHouses(rows *sql.Rows) ([]*models.House, error) {
	defer rows.Close()

	var result []*models.House
	for rows.Next() {
		h := &models.House{}
		if err := rows.Scan(&h.ID, &h.OwnerID, &h.Type, &h.PhoneNumber, &h.District, &h.City, &h.HasImage, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, house *models.House) (*models.House, error) {

	query :=
		`INSERT INTO houses (id, owner_id, type, phone_number, district, city, has_image)
         VALUES ($1, $2, $3, $4, $5, $6, $7)
         RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		house.ID, house.OwnerID, house.Type, house.PhoneNumber, house.District, house.City, house.HasImage).
		Scan(&house.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return house, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.House, error) {
	query := `SELECT ` + houseColumns + ` FROM houses WHERE id = $1`

	h := &models.House{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&h.ID, &h.OwnerID, &h.Type, &h.PhoneNumber, &h.District, &h.City, &h.HasImage, &h.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return h, nil
}

func (r *PostgresRepository) Search(ctx context.Context, district, city string) ([]*models.House, error) {
	query := `SELECT ` + houseColumns + ` FROM houses
	          WHERE ($1 = '' OR district = $1) AND ($2 = '' OR city = $2)
	          ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, district, city)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return scanHouses(rows)
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.House, error) {
	query := `SELECT ` + houseColumns + ` FROM houses WHERE owner_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return scanHouses(rows)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM houses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) SetHasImage(ctx context.Context, id string, hasImage bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE houses SET has_image = $2 WHERE id = $1`, id, hasImage)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Districts(ctx context.Context) ([]string, error) {
	return r.selectStrings(ctx, `SELECT DISTINCT district FROM houses ORDER BY district`)
}

func (r *PostgresRepository) CitiesByDistrict(ctx context.Context, district string) ([]string, error) {
	return r.selectStrings(ctx, `SELECT DISTINCT city FROM houses WHERE district = $1 ORDER BY city`, district)
}

func (r *PostgresRepository) selectStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
