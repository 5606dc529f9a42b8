package feed

import (
	"context"
	"errors"
	"testing"

	"github.com/icebreakapp/radar-gateway/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrichBuildsCandidates(t *testing.T) {
	repo := &fakeProfileRepo{
		profiles: map[string]*domain.Profile{
			"u1": {ID: "u1", Name: strptr("Alice"), Bio: strptr("hi"), AvatarURL: strptr("http://a/1.png"), Interests: []string{"music", "art"}},
		},
	}
	enricher := NewEnricher(repo)

	candidates, err := enricher.Enrich(context.Background(),
		[]domain.NearbyUser{{UserID: "u1", DistanceMeters: 42.4}},
		[]string{"music", "sports"},
	)

	require.NoError(t, err)
	require.Len(t, candidates, 1)
	c := candidates[0]
	assert.Equal(t, "u1", c.ID)
	assert.Equal(t, "Alice", c.Name)
	assert.Equal(t, 42, c.DistanceMeters)
	assert.Equal(t, []string{"music"}, c.CommonInterests)
	assert.Equal(t, []string{"art"}, c.OtherInterests)
}

func TestEnrichDropsMissingProfiles(t *testing.T) {
	// u2 reported a location but has since disabled radar or deleted the
	// account: absent from the filtered fetch, absent from the feed.
	repo := &fakeProfileRepo{
		profiles: map[string]*domain.Profile{
			"u1": {ID: "u1", Interests: []string{"music"}},
		},
	}
	enricher := NewEnricher(repo)

	candidates, err := enricher.Enrich(context.Background(),
		[]domain.NearbyUser{
			{UserID: "u1", DistanceMeters: 10},
			{UserID: "u2", DistanceMeters: 20},
		},
		nil,
	)

	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "u1", candidates[0].ID)
}

func TestEnrichAppliesDisplayDefaults(t *testing.T) {
	repo := &fakeProfileRepo{
		profiles: map[string]*domain.Profile{
			"u1": {ID: "u1"},
		},
	}
	enricher := NewEnricher(repo)

	candidates, err := enricher.Enrich(context.Background(),
		[]domain.NearbyUser{{UserID: "u1", DistanceMeters: 5}},
		nil,
	)

	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, domain.DefaultName, candidates[0].Name)
	assert.Equal(t, domain.DefaultBio, candidates[0].Bio)
	assert.Equal(t, domain.DefaultAvatarURL, candidates[0].AvatarURL)
}

func TestEnrichBatchesIntoOneFetch(t *testing.T) {
	repo := &fakeProfileRepo{
		profiles: map[string]*domain.Profile{
			"u1": {ID: "u1"},
			"u2": {ID: "u2"},
			"u3": {ID: "u3"},
		},
	}
	enricher := NewEnricher(repo)

	candidates, err := enricher.Enrich(context.Background(),
		[]domain.NearbyUser{
			{UserID: "u1", DistanceMeters: 1},
			{UserID: "u2", DistanceMeters: 2},
			{UserID: "u3", DistanceMeters: 3},
		},
		nil,
	)

	require.NoError(t, err)
	assert.Len(t, candidates, 3)
	assert.Equal(t, 1, repo.profileFetches())
}

func TestEnrichPreservesQueryOrder(t *testing.T) {
	repo := &fakeProfileRepo{
		profiles: map[string]*domain.Profile{
			"near": {ID: "near"},
			"far":  {ID: "far"},
		},
	}
	enricher := NewEnricher(repo)

	candidates, err := enricher.Enrich(context.Background(),
		[]domain.NearbyUser{
			{UserID: "far", DistanceMeters: 90},
			{UserID: "near", DistanceMeters: 10},
		},
		nil,
	)

	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "far", candidates[0].ID)
	assert.Equal(t, "near", candidates[1].ID)
}

func TestEnrichPropagatesFetchErrors(t *testing.T) {
	repo := &fakeProfileRepo{err: errors.New("connection reset")}
	enricher := NewEnricher(repo)

	_, err := enricher.Enrich(context.Background(),
		[]domain.NearbyUser{{UserID: "u1", DistanceMeters: 1}},
		nil,
	)

	assert.Error(t, err)
}
