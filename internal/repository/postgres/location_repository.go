package postgres

import (
	"context"
	"fmt"

	"github.com/icebreakapp/radar-gateway/internal/repository"
	"github.com/jmoiron/sqlx"
)

type locationRepository struct {
	db *sqlx.DB
}

func NewLocationRepository(db *sqlx.DB) repository.LocationRepository {
	return &locationRepository{db: db}
}

// Report calls the platform's upsert procedure. The procedure keeps one
// row per user and bumps updated_at, so repeated calls are idempotent.
func (r *locationRepository) Report(ctx context.Context, userID string, lat, lng float64) error {
	_, err := r.db.ExecContext(ctx,
		`SELECT upsert_user_location($1, $2, $3)`,
		userID, lat, lng,
	)
	if err != nil {
		return fmt.Errorf("failed to report location: %w", err)
	}
	return nil
}
