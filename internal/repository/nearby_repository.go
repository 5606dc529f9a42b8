package repository

import (
	"context"

	"github.com/icebreakapp/radar-gateway/internal/domain"
)

// NearbyRepository queries the platform's geospatial procedure for
// location-reporting users within the radius. The result includes the
// caller; filtering out the viewer is the caller's responsibility.
type NearbyRepository interface {
	QueryNearby(ctx context.Context, userID string, radiusMeters float64) ([]domain.NearbyUser, error)
}
