package feed

import (
	"sort"

	"github.com/icebreakapp/radar-gateway/internal/domain"
)

// Rank orders candidates by rounded distance ascending, tie-broken by
// shared-interest count descending. The sort is stable so equal-rank
// entries keep their relative order across successive polls, and the
// input slice is left untouched.
func Rank(candidates []domain.Candidate) []domain.Candidate {
	ranked := make([]domain.Candidate, len(candidates))
	copy(ranked, candidates)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].DistanceMeters != ranked[j].DistanceMeters {
			return ranked[i].DistanceMeters < ranked[j].DistanceMeters
		}
		return len(ranked[i].CommonInterests) > len(ranked[j].CommonInterests)
	})
	return ranked
}
