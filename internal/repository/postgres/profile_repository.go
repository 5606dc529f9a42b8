package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/icebreakapp/radar-gateway/internal/domain"
	"github.com/icebreakapp/radar-gateway/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

// GetByIDs fetches profiles with aggregated interests for the given IDs.
// The radar_enabled filter is applied here so users who disabled radar
// after reporting a location never reach the feed.
func (r *profileRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.bio, p.avatar_url, p.radar_enabled,
		       COALESCE(
		           array_agg(i.name ORDER BY ui.interest_id) FILTER (WHERE i.name IS NOT NULL),
		           '{}'
		       ) AS interests
		FROM profiles p
		LEFT JOIN user_interests ui ON ui.user_id = p.id
		LEFT JOIN interests i ON i.id = ui.interest_id
		WHERE p.id = ANY($1) AND p.radar_enabled = TRUE
		GROUP BY p.id, p.name, p.bio, p.avatar_url, p.radar_enabled`,
		pq.Array(ids),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*domain.Profile
	for rows.Next() {
		var p domain.Profile
		var interests pq.StringArray
		if err := rows.Scan(&p.ID, &p.Name, &p.Bio, &p.AvatarURL, &p.RadarEnabled, &interests); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		p.Interests = []string(interests)
		profiles = append(profiles, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read profiles: %w", err)
	}
	return profiles, nil
}

func (r *profileRepository) GetInterests(ctx context.Context, userID string) ([]string, error) {
	var interests []string
	err := r.db.SelectContext(ctx, &interests, `
		SELECT i.name
		FROM user_interests ui
		JOIN interests i ON i.id = ui.interest_id
		WHERE ui.user_id = $1
		ORDER BY ui.interest_id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch interests: %w", err)
	}
	return interests, nil
}

func (r *profileRepository) GetRadarPreference(ctx context.Context, userID string) (*domain.RadarPreference, error) {
	var pref domain.RadarPreference
	err := r.db.GetContext(ctx, &pref,
		`SELECT id AS user_id, radar_enabled FROM profiles WHERE id = $1`,
		userID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get radar preference: %w", err)
	}
	return &pref, nil
}

func (r *profileRepository) SetRadarPreference(ctx context.Context, userID string, enabled bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET radar_enabled = $2 WHERE id = $1`,
		userID, enabled,
	)
	if err != nil {
		return fmt.Errorf("failed to set radar preference: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check radar preference update: %w", err)
	}
	if affected == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}
