package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avandeursen/mosaic/internal/db"
	"github.com/avandeursen/mosaic/internal/domain"
)

// SQLiteProfileRepo implements ProfileRepo using a SQLite database.
// The dashboard is single-owner, so Get reads the sole row.
type SQLiteProfileRepo struct {
	db db.DBTX
}

// NewSQLiteProfileRepo creates a new SQLiteProfileRepo.
func NewSQLiteProfileRepo(conn db.DBTX) *SQLiteProfileRepo {
	return &SQLiteProfileRepo{db: conn}
}

func (r *SQLiteProfileRepo) Get(ctx context.Context) (*domain.Profile, error) {
	query := `SELECT owner_id, display_name, locale, currency, created_at, updated_at
		FROM profiles LIMIT 1`
	row := r.db.QueryRowContext(ctx, query)

	var p domain.Profile
	var createdAtStr, updatedAtStr string
	err := row.Scan(&p.OwnerID, &p.DisplayName, &p.Locale, &p.Currency, &createdAtStr, &updatedAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("profile: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning profile: %w", err)
	}

	var parseErr error
	p.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	p.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &p, nil
}

func (r *SQLiteProfileRepo) Upsert(ctx context.Context, p *domain.Profile) error {
	query := `INSERT INTO profiles (owner_id, display_name, locale, currency, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(owner_id) DO UPDATE SET
			display_name = excluded.display_name,
			locale = excluded.locale,
			currency = excluded.currency,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		p.OwnerID,
		p.DisplayName,
		p.Locale,
		p.Currency,
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting profile: %w", err)
	}
	return nil
}
