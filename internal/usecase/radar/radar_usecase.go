package radar

import (
	"context"
	"fmt"

	"github.com/icebreakapp/radar-gateway/internal/domain"
	"github.com/icebreakapp/radar-gateway/internal/repository"
	"github.com/sirupsen/logrus"
)

// Sessions is the slice of the session context the use case needs.
type Sessions interface {
	Current() (*domain.Session, error)
}

// Toggler is anything that follows the radar preference: the location
// reporter and the feed poller.
type Toggler interface {
	SetEnabled(enabled bool)
}

// UseCase loads and mutates the viewer's radar preference and fans the
// current value out to the reporting and polling loops.
type UseCase struct {
	profiles repository.ProfileRepository
	sessions Sessions
	logger   *logrus.Logger
	togglers []Toggler
}

func NewUseCase(profiles repository.ProfileRepository, sessions Sessions, logger *logrus.Logger, togglers ...Toggler) *UseCase {
	return &UseCase{
		profiles: profiles,
		sessions: sessions,
		logger:   logger,
		togglers: togglers,
	}
}

// Load returns the stored preference and applies it to the togglers.
// Without a session radar is off.
func (uc *UseCase) Load(ctx context.Context) (bool, error) {
	session, err := uc.sessions.Current()
	if err != nil {
		uc.apply(false)
		return false, nil
	}

	pref, err := uc.profiles.GetRadarPreference(ctx, session.UserID)
	if err != nil {
		return false, fmt.Errorf("failed to load radar preference: %w", err)
	}

	uc.apply(pref.RadarEnabled)
	return pref.RadarEnabled, nil
}

// SetEnabled persists the preference, then applies it. A failed write
// leaves the loops in their previous state.
func (uc *UseCase) SetEnabled(ctx context.Context, enabled bool) error {
	session, err := uc.sessions.Current()
	if err != nil {
		return domain.ErrNoSession
	}

	if err := uc.profiles.SetRadarPreference(ctx, session.UserID, enabled); err != nil {
		return fmt.Errorf("failed to update radar preference: %w", err)
	}

	uc.logger.WithField("radar_enabled", enabled).Info("radar preference updated")
	uc.apply(enabled)
	return nil
}

func (uc *UseCase) apply(enabled bool) {
	for _, t := range uc.togglers {
		t.SetEnabled(enabled)
	}
}
