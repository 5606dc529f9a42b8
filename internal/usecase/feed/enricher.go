package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/graph-gophers/dataloader/v7"
	"github.com/icebreakapp/radar-gateway/internal/domain"
	"github.com/icebreakapp/radar-gateway/internal/repository"
)

// Enricher resolves candidate IDs into displayable feed entries with one
// batched profile fetch per poll cycle. Candidates absent from the
// filtered result (radar disabled meanwhile, account deleted) are dropped
// silently. No cache: every cycle must observe the current radar flags.
type Enricher struct {
	loader *dataloader.Loader[string, *domain.Profile]
}

func NewEnricher(profiles repository.ProfileRepository) *Enricher {
	batch := func(ctx context.Context, keys []string) []*dataloader.Result[*domain.Profile] {
		results := make([]*dataloader.Result[*domain.Profile], len(keys))

		fetched, err := profiles.GetByIDs(ctx, keys)
		if err != nil {
			for i := range results {
				results[i] = &dataloader.Result[*domain.Profile]{Error: err}
			}
			return results
		}

		byID := make(map[string]*domain.Profile, len(fetched))
		for _, p := range fetched {
			byID[p.ID] = p
		}
		for i, key := range keys {
			results[i] = &dataloader.Result[*domain.Profile]{Data: byID[key]}
		}
		return results
	}

	return &Enricher{
		loader: dataloader.NewBatchedLoader(
			batch,
			dataloader.WithCache[string, *domain.Profile](&dataloader.NoCache[string, *domain.Profile]{}),
			dataloader.WithWait[string, *domain.Profile](16*time.Millisecond),
		),
	}
}

// Enrich builds candidates for the given nearby users, preserving the
// query order. The viewer's interest set is read-only here.
func (e *Enricher) Enrich(ctx context.Context, nearby []domain.NearbyUser, viewerInterests []string) ([]domain.Candidate, error) {
	thunks := make([]dataloader.Thunk[*domain.Profile], len(nearby))
	for i, n := range nearby {
		thunks[i] = e.loader.Load(ctx, n.UserID)
	}

	candidates := make([]domain.Candidate, 0, len(nearby))
	for i, n := range nearby {
		profile, err := thunks[i]()
		if err != nil {
			return nil, fmt.Errorf("failed to enrich candidates: %w", err)
		}
		if profile == nil {
			// Present in the proximity result but gone from the filtered
			// profile set. Absence, not an error.
			continue
		}

		common, other := Classify(profile.Interests, viewerInterests)
		candidates = append(candidates, domain.Candidate{
			ID:              profile.ID,
			Name:            profile.DisplayName(),
			Bio:             profile.DisplayBio(),
			AvatarURL:       profile.DisplayAvatarURL(),
			DistanceMeters:  domain.RoundDistance(n.DistanceMeters),
			Interests:       profile.Interests,
			CommonInterests: common,
			OtherInterests:  other,
		})
	}
	return candidates, nil
}
