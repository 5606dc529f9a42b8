package feed

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/icebreakapp/radar-gateway/internal/domain"
	"github.com/icebreakapp/radar-gateway/internal/repository"
	"github.com/sirupsen/logrus"
)

// Sessions is the slice of the session context the poller needs.
type Sessions interface {
	Current() (*domain.Session, error)
}

// Poller drives the proximity feed: nearby query, enrichment, overlap
// classification and ranking, once per interval while radar is enabled.
// Overlapping cycles are suppressed with a busy flag and results from
// superseded cycles are discarded via a generation counter.
type Poller struct {
	nearby   repository.NearbyRepository
	profiles repository.ProfileRepository
	enricher *Enricher
	sessions Sessions
	logger   *logrus.Logger

	radius   float64
	interval time.Duration

	mu              sync.Mutex
	stop            chan struct{}
	busy            bool
	generation      uint64
	cycle           uint64
	snapshot        domain.FeedSnapshot
	viewerInterests []string
	interestsLoaded bool
	subscribers     map[int]func(domain.FeedSnapshot)
	nextSub         int

	now func() time.Time
}

func NewPoller(
	nearby repository.NearbyRepository,
	profiles repository.ProfileRepository,
	enricher *Enricher,
	sessions Sessions,
	logger *logrus.Logger,
	radiusMeters float64,
	interval time.Duration,
) *Poller {
	return &Poller{
		nearby:      nearby,
		profiles:    profiles,
		enricher:    enricher,
		sessions:    sessions,
		logger:      logger,
		radius:      radiusMeters,
		interval:    interval,
		snapshot:    domain.FeedSnapshot{State: domain.FeedStateIdle},
		subscribers: make(map[int]func(domain.FeedSnapshot)),
		now:         time.Now,
	}
}

// Start begins polling: one immediate cycle, then one per interval.
// Starting an already-running poller is a no-op.
func (p *Poller) Start() {
	p.mu.Lock()
	if p.stop != nil {
		p.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	p.stop = stop
	p.mu.Unlock()

	go p.run(stop)
}

// Stop clears the polling timer and invalidates any in-flight cycle so
// its result is discarded when it resolves.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stop == nil {
		return
	}
	close(p.stop)
	p.stop = nil
	p.generation++
	p.snapshot = domain.FeedSnapshot{State: domain.FeedStateIdle, Cycle: p.cycle}
}

// SetEnabled mirrors the radar preference onto the polling loop.
func (p *Poller) SetEnabled(enabled bool) {
	if enabled {
		p.Start()
	} else {
		p.Stop()
	}
}

// Running reports whether the polling loop is active.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stop != nil
}

// Reset drops the cached viewer interest set and invalidates in-flight
// cycles. Called when the session changes.
func (p *Poller) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.viewerInterests = nil
	p.interestsLoaded = false
	p.generation++
}

// Snapshot returns the result of the last completed cycle.
func (p *Poller) Snapshot() domain.FeedSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot
}

// Subscribe registers a callback fired after every completed cycle. The
// returned function unsubscribes it.
func (p *Poller) Subscribe(cb func(domain.FeedSnapshot)) func() {
	p.mu.Lock()
	id := p.nextSub
	p.nextSub++
	p.subscribers[id] = cb
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.subscribers, id)
		p.mu.Unlock()
	}
}

// Refresh runs one cycle immediately (pull-to-refresh). If a cycle is
// already in flight the call is a no-op, not queued.
func (p *Poller) Refresh() {
	p.runCycle()
}

func (p *Poller) run(stop chan struct{}) {
	p.runCycle()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			p.runCycle()
		}
	}
}

func (p *Poller) runCycle() {
	p.mu.Lock()
	if p.busy {
		p.mu.Unlock()
		return
	}
	p.busy = true
	p.generation++
	gen := p.generation
	p.snapshot.State = domain.FeedStateLoading
	p.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), p.interval)
	defer cancel()

	log := p.logger.WithField("cycle_id", uuid.NewString())
	snapshot := p.executeCycle(ctx, log)
	p.finish(gen, snapshot)
}

// executeCycle runs one full nearby -> enrich -> classify -> rank pass.
// Any failure degrades to an empty feed; the next tick retries.
func (p *Poller) executeCycle(ctx context.Context, log *logrus.Entry) domain.FeedSnapshot {
	session, err := p.sessions.Current()
	if err != nil {
		// Unauthenticated means an empty feed and no further calls.
		return domain.FeedSnapshot{State: domain.FeedStateEmpty}
	}

	viewerInterests, err := p.loadViewerInterests(ctx, session.UserID)
	if err != nil {
		log.WithError(err).Warn("viewer interest fetch failed")
		return domain.FeedSnapshot{State: domain.FeedStateErrored}
	}

	nearby, err := p.nearby.QueryNearby(ctx, session.UserID, p.radius)
	if err != nil {
		log.WithError(err).Warn("nearby query failed")
		return domain.FeedSnapshot{State: domain.FeedStateErrored}
	}

	// The procedure includes the caller; never show the viewer to themselves.
	candidates := nearby[:0:0]
	for _, n := range nearby {
		if n.UserID != session.UserID {
			candidates = append(candidates, n)
		}
	}

	// No one nearby: short-circuit before the profile fetch.
	if len(candidates) == 0 {
		return domain.FeedSnapshot{State: domain.FeedStateEmpty}
	}

	enriched, err := p.enricher.Enrich(ctx, candidates, viewerInterests)
	if err != nil {
		log.WithError(err).Warn("candidate enrichment failed")
		return domain.FeedSnapshot{State: domain.FeedStateErrored}
	}
	if len(enriched) == 0 {
		return domain.FeedSnapshot{State: domain.FeedStateEmpty}
	}

	return domain.FeedSnapshot{
		State:      domain.FeedStatePopulated,
		Candidates: Rank(enriched),
	}
}

// loadViewerInterests fetches the viewer's own interest set once per
// session; subsequent cycles share the cached copy read-only.
func (p *Poller) loadViewerInterests(ctx context.Context, userID string) ([]string, error) {
	p.mu.Lock()
	if p.interestsLoaded {
		interests := p.viewerInterests
		p.mu.Unlock()
		return interests, nil
	}
	p.mu.Unlock()

	interests, err := p.profiles.GetInterests(ctx, userID)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.viewerInterests = interests
	p.interestsLoaded = true
	p.mu.Unlock()
	return interests, nil
}

// finish installs the cycle result unless a newer generation superseded
// it while the cycle was in flight.
func (p *Poller) finish(gen uint64, snapshot domain.FeedSnapshot) {
	p.mu.Lock()
	p.busy = false
	if gen != p.generation {
		p.mu.Unlock()
		return
	}
	p.cycle++
	snapshot.Cycle = p.cycle
	snapshot.UpdatedAt = p.now()
	p.snapshot = snapshot

	cbs := make([]func(domain.FeedSnapshot), 0, len(p.subscribers))
	for _, cb := range p.subscribers {
		cbs = append(cbs, cb)
	}
	p.mu.Unlock()

	for _, cb := range cbs {
		cb(snapshot)
	}
}
