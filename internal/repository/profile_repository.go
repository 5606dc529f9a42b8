package repository

import (
	"context"

	"github.com/icebreakapp/radar-gateway/internal/domain"
)

type ProfileRepository interface {
	// GetByIDs batch-fetches profiles with their interests for exactly the
	// given IDs, filtered to radar_enabled = TRUE. IDs with no matching row
	// are simply absent from the result.
	GetByIDs(ctx context.Context, ids []string) ([]*domain.Profile, error)

	// GetInterests returns the user's own interest set, preserving the
	// catalog ordering the platform stores.
	GetInterests(ctx context.Context, userID string) ([]string, error)

	GetRadarPreference(ctx context.Context, userID string) (*domain.RadarPreference, error)
	SetRadarPreference(ctx context.Context, userID string, enabled bool) error
}
