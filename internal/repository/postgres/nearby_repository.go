package postgres

import (
	"context"
	"fmt"

	"github.com/icebreakapp/radar-gateway/internal/domain"
	"github.com/icebreakapp/radar-gateway/internal/repository"
	"github.com/jmoiron/sqlx"
)

type nearbyRepository struct {
	db *sqlx.DB
}

func NewNearbyRepository(db *sqlx.DB) repository.NearbyRepository {
	return &nearbyRepository{db: db}
}

// QueryNearby invokes the platform-defined geospatial function. Distance
// computation and spatial indexing live on the platform side; the row set
// includes the caller.
func (r *nearbyRepository) QueryNearby(ctx context.Context, userID string, radiusMeters float64) ([]domain.NearbyUser, error) {
	var nearby []domain.NearbyUser
	err := r.db.SelectContext(ctx, &nearby,
		`SELECT user_id, distance_m FROM nearby_users($1, $2)`,
		userID, radiusMeters,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query nearby users: %w", err)
	}
	return nearby, nil
}
