package location

import (
	"context"
	"sync"
	"time"

	"github.com/icebreakapp/radar-gateway/internal/domain"
	"github.com/icebreakapp/radar-gateway/internal/repository"
	"github.com/sirupsen/logrus"
)

// Provider abstracts the device positioning source: a foreground
// permission gate and a one-shot position fetch (not a location stream).
type Provider interface {
	PermissionGranted(ctx context.Context) (bool, error)
	RequestPermission(ctx context.Context) (bool, error)
	CurrentPosition(ctx context.Context) (lat, lng float64, err error)
}

// Sessions is the slice of the session context the reporter needs.
type Sessions interface {
	Current() (*domain.Session, error)
}

// Reporter pushes the device position to the platform on a fixed cadence
// while radar is enabled. A transient failure never stops the loop and a
// denied permission leaves the reporter inert until granted.
type Reporter struct {
	provider  Provider
	locations repository.LocationRepository
	sessions  Sessions
	logger    *logrus.Logger
	interval  time.Duration

	mu      sync.Mutex
	stop    chan struct{}
	granted bool
}

func NewReporter(
	provider Provider,
	locations repository.LocationRepository,
	sessions Sessions,
	logger *logrus.Logger,
	interval time.Duration,
) *Reporter {
	return &Reporter{
		provider:  provider,
		locations: locations,
		sessions:  sessions,
		logger:    logger,
		interval:  interval,
	}
}

// Start begins reporting: one immediate push, then one per interval.
// Calling Start while already running is a no-op.
func (r *Reporter) Start() {
	r.mu.Lock()
	if r.stop != nil {
		r.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	r.stop = stop
	r.mu.Unlock()

	go r.run(stop)
}

// Stop cancels the interval timer. In-flight pushes are allowed to finish.
func (r *Reporter) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stop == nil {
		return
	}
	close(r.stop)
	r.stop = nil
}

// SetEnabled mirrors the radar preference onto the reporting loop.
func (r *Reporter) SetEnabled(enabled bool) {
	if enabled {
		r.Start()
	} else {
		r.Stop()
	}
}

// Running reports whether the interval loop is active.
func (r *Reporter) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stop != nil
}

func (r *Reporter) run(stop chan struct{}) {
	r.reportOnce()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			r.reportOnce()
		}
	}
}

// reportOnce performs one permission check, position fetch and push.
// Every failure is logged and swallowed so the cadence survives it.
func (r *Reporter) reportOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), r.interval)
	defer cancel()

	ok, err := r.ensurePermission(ctx)
	if err != nil {
		r.logger.WithError(err).Warn("location permission check failed")
		return
	}
	if !ok {
		return
	}

	session, err := r.sessions.Current()
	if err != nil {
		return
	}

	lat, lng, err := r.provider.CurrentPosition(ctx)
	if err != nil {
		r.logger.WithError(err).Warn("position fetch failed")
		return
	}

	if err := r.locations.Report(ctx, session.UserID, lat, lng); err != nil {
		r.logger.WithError(err).Warn("location push failed")
	}
}

// ensurePermission checks the foreground permission, requesting it once
// if not yet granted. A grant is cached for the process lifetime.
func (r *Reporter) ensurePermission(ctx context.Context) (bool, error) {
	r.mu.Lock()
	granted := r.granted
	r.mu.Unlock()
	if granted {
		return true, nil
	}

	ok, err := r.provider.PermissionGranted(ctx)
	if err != nil {
		return false, err
	}
	if !ok {
		ok, err = r.provider.RequestPermission(ctx)
		if err != nil {
			return false, err
		}
	}

	if ok {
		r.mu.Lock()
		r.granted = true
		r.mu.Unlock()
	}
	return ok, nil
}
