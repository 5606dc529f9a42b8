// Package device bridges the handset to the gateway. The presentation
// layer pushes permission state and raw positions in; the location
// reporter reads them back out through the location.Provider interface.
package device

import (
	"context"
	"errors"
	"sync"
	"time"
)

// maxPositionAge bounds how stale a pushed position may be before the
// reporter treats it as unavailable.
const maxPositionAge = 30 * time.Second

var ErrNoPosition = errors.New("no recent device position")

// PermissionState mirrors the foreground location permission on the device.
type PermissionState string

const (
	PermissionUnknown PermissionState = "unknown"
	PermissionGranted PermissionState = "granted"
	PermissionDenied  PermissionState = "denied"
)

// PushProvider implements location.Provider from positions pushed by the
// UI. The gateway cannot prompt the user itself; RequestPermission only
// records that a prompt is wanted, the device answers by pushing state.
type PushProvider struct {
	mu        sync.Mutex
	state     PermissionState
	requested bool

	lat, lng   float64
	receivedAt time.Time

	now func() time.Time
}

func NewPushProvider() *PushProvider {
	return &PushProvider{state: PermissionUnknown, now: time.Now}
}

// SetPermission records the device's answer to the permission prompt.
func (p *PushProvider) SetPermission(state PermissionState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = state
}

// UpdatePosition stores the latest device fix. A position push implies
// the permission was granted on the device.
func (p *PushProvider) UpdatePosition(lat, lng float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lat, p.lng = lat, lng
	p.receivedAt = p.now()
	p.state = PermissionGranted
}

// PermissionRequested reports whether the reporter asked for a prompt.
func (p *PushProvider) PermissionRequested() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.requested
}

func (p *PushProvider) PermissionGranted(ctx context.Context) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state == PermissionGranted, nil
}

func (p *PushProvider) RequestPermission(ctx context.Context) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requested = true
	return p.state == PermissionGranted, nil
}

func (p *PushProvider) CurrentPosition(ctx context.Context) (float64, float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.receivedAt.IsZero() || p.now().Sub(p.receivedAt) > maxPositionAge {
		return 0, 0, ErrNoPosition
	}
	return p.lat, p.lng, nil
}
