package repository

import "context"

// LocationRepository is the write path for the viewer's live location.
// Report has upsert semantics: one row per user, overwritten on each call.
type LocationRepository interface {
	Report(ctx context.Context, userID string, lat, lng float64) error
}
