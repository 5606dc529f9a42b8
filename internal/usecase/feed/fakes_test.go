package feed

import (
	"context"
	"sync"

	"github.com/icebreakapp/radar-gateway/internal/domain"
)

type fakeSessions struct {
	session *domain.Session
	err     error
}

func (f *fakeSessions) Current() (*domain.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

type fakeNearbyRepo struct {
	mu      sync.Mutex
	calls   int
	results []domain.NearbyUser
	err     error
	block   chan struct{}
}

func (f *fakeNearbyRepo) QueryNearby(ctx context.Context, userID string, radiusMeters float64) ([]domain.NearbyUser, error) {
	f.mu.Lock()
	f.calls++
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func (f *fakeNearbyRepo) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeProfileRepo struct {
	mu             sync.Mutex
	profiles       map[string]*domain.Profile
	interests      []string
	err            error
	getByIDsCalls  int
	interestsCalls int
	pref           *domain.RadarPreference
}

func (f *fakeProfileRepo) GetByIDs(ctx context.Context, ids []string) ([]*domain.Profile, error) {
	f.mu.Lock()
	f.getByIDsCalls++
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Profile
	for _, id := range ids {
		if p, ok := f.profiles[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProfileRepo) GetInterests(ctx context.Context, userID string) ([]string, error) {
	f.mu.Lock()
	f.interestsCalls++
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	return f.interests, nil
}

func (f *fakeProfileRepo) GetRadarPreference(ctx context.Context, userID string) (*domain.RadarPreference, error) {
	if f.pref == nil {
		return nil, domain.ErrProfileNotFound
	}
	return f.pref, nil
}

func (f *fakeProfileRepo) SetRadarPreference(ctx context.Context, userID string, enabled bool) error {
	f.pref = &domain.RadarPreference{UserID: userID, RadarEnabled: enabled}
	return nil
}

func (f *fakeProfileRepo) profileFetches() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.getByIDsCalls
}

func (f *fakeProfileRepo) interestFetches() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.interestsCalls
}

func strptr(s string) *string { return &s }
