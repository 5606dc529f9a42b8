package location

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/icebreakapp/radar-gateway/internal/domain"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	mu            sync.Mutex
	granted       bool
	requests      int
	checks        int
	positionCalls int
	lat, lng      float64
	positionErr   error
}

func (f *fakeProvider) PermissionGranted(ctx context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checks++
	return f.granted, nil
}

func (f *fakeProvider) RequestPermission(ctx context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests++
	return f.granted, nil
}

func (f *fakeProvider) CurrentPosition(ctx context.Context) (float64, float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.positionCalls++
	if f.positionErr != nil {
		return 0, 0, f.positionErr
	}
	return f.lat, f.lng, nil
}

func (f *fakeProvider) stats() (checks, requests, positions int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.checks, f.requests, f.positionCalls
}

type fakeLocationRepo struct {
	mu      sync.Mutex
	reports int
	lastLat float64
	lastLng float64
	err     error
}

func (f *fakeLocationRepo) Report(ctx context.Context, userID string, lat, lng float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports++
	f.lastLat, f.lastLng = lat, lng
	return f.err
}

func (f *fakeLocationRepo) reportCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reports
}

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

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func activeSession() *fakeSessions {
	return &fakeSessions{session: &domain.Session{
		UserID:    "viewer",
		ExpiresAt: time.Now().Add(time.Hour),
	}}
}

func TestReporterDisabledSendsNothing(t *testing.T) {
	provider := &fakeProvider{granted: true, lat: 1, lng: 2}
	repo := &fakeLocationRepo{}
	r := NewReporter(provider, repo, activeSession(), testLogger(), 10*time.Millisecond)

	// Radar never enabled: zero pushes over the observation window.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, repo.reportCount())
	assert.False(t, r.Running())
}

func TestReporterPushesOnCadence(t *testing.T) {
	provider := &fakeProvider{granted: true, lat: 52.52, lng: 13.405}
	repo := &fakeLocationRepo{}
	r := NewReporter(provider, repo, activeSession(), testLogger(), 10*time.Millisecond)

	r.Start()
	defer r.Stop()

	require.Eventually(t, func() bool { return repo.reportCount() >= 3 }, time.Second, time.Millisecond)
	repo.mu.Lock()
	assert.Equal(t, 52.52, repo.lastLat)
	assert.Equal(t, 13.405, repo.lastLng)
	repo.mu.Unlock()
}

func TestReporterStopCancelsCadence(t *testing.T) {
	provider := &fakeProvider{granted: true}
	repo := &fakeLocationRepo{}
	r := NewReporter(provider, repo, activeSession(), testLogger(), 10*time.Millisecond)

	r.SetEnabled(true)
	require.Eventually(t, func() bool { return repo.reportCount() >= 2 }, time.Second, time.Millisecond)

	r.SetEnabled(false)
	count := repo.reportCount()
	time.Sleep(60 * time.Millisecond)
	assert.LessOrEqual(t, repo.reportCount(), count+1)
	assert.False(t, r.Running())
}

func TestReporterPermissionDeniedStaysInert(t *testing.T) {
	provider := &fakeProvider{granted: false}
	repo := &fakeLocationRepo{}
	r := NewReporter(provider, repo, activeSession(), testLogger(), 10*time.Millisecond)

	r.Start()
	defer r.Stop()

	time.Sleep(50 * time.Millisecond)
	_, requests, positions := provider.stats()
	assert.Equal(t, 0, repo.reportCount())
	assert.Equal(t, 0, positions)
	// The prompt was requested, but denial is not retried as an error.
	assert.GreaterOrEqual(t, requests, 1)
}

func TestReporterCachesGrantedPermission(t *testing.T) {
	provider := &fakeProvider{granted: true}
	repo := &fakeLocationRepo{}
	r := NewReporter(provider, repo, activeSession(), testLogger(), 10*time.Millisecond)

	r.Start()
	defer r.Stop()

	require.Eventually(t, func() bool { return repo.reportCount() >= 3 }, time.Second, time.Millisecond)
	checks, _, _ := provider.stats()
	assert.Equal(t, 1, checks)
}

func TestReporterSurvivesTransientFailures(t *testing.T) {
	provider := &fakeProvider{granted: true}
	repo := &fakeLocationRepo{err: errors.New("gateway timeout")}
	r := NewReporter(provider, repo, activeSession(), testLogger(), 10*time.Millisecond)

	r.Start()
	defer r.Stop()

	// Failed pushes are swallowed; the interval keeps attempting.
	require.Eventually(t, func() bool { return repo.reportCount() >= 3 }, time.Second, time.Millisecond)

	repo.mu.Lock()
	repo.err = nil
	repo.mu.Unlock()
	before := repo.reportCount()
	require.Eventually(t, func() bool { return repo.reportCount() > before }, time.Second, time.Millisecond)
}

func TestReporterNoSessionSkipsPush(t *testing.T) {
	provider := &fakeProvider{granted: true}
	repo := &fakeLocationRepo{}
	sessions := &fakeSessions{err: domain.ErrNoSession}
	r := NewReporter(provider, repo, sessions, testLogger(), 10*time.Millisecond)

	r.Start()
	defer r.Stop()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, repo.reportCount())
}
