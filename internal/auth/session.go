package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/icebreakapp/radar-gateway/internal/config"
	"github.com/icebreakapp/radar-gateway/internal/domain"
	"github.com/sirupsen/logrus"
)

// refreshMargin is how long before token expiry a refresh is scheduled.
const refreshMargin = 60 * time.Second

// SessionManager is the single session-context object injected into every
// component that needs the current user. It exchanges the configured
// refresh token for access tokens against the platform auth service and
// keeps the session fresh in the background.
type SessionManager struct {
	cfg    config.AuthConfig
	client *http.Client
	logger *logrus.Logger
	now    func() time.Time

	mu        sync.RWMutex
	session   *domain.Session
	listeners map[int]func(*domain.Session)
	nextID    int

	cancel context.CancelFunc
	done   chan struct{}
}

func NewSessionManager(cfg config.AuthConfig, logger *logrus.Logger) *SessionManager {
	return &SessionManager{
		cfg:       cfg,
		client:    &http.Client{Timeout: 10 * time.Second},
		logger:    logger,
		now:       time.Now,
		listeners: make(map[int]func(*domain.Session)),
	}
}

// Initialize performs the first token exchange and starts the background
// refresh loop. It must be called once before Current is useful.
func (m *SessionManager) Initialize(ctx context.Context) error {
	session, err := m.refresh(ctx, m.cfg.RefreshToken)
	if err != nil {
		return fmt.Errorf("failed to initialize session: %w", err)
	}
	m.setSession(session)

	loopCtx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.done = make(chan struct{})
	go m.refreshLoop(loopCtx)

	return nil
}

// Current returns the active session, or domain.ErrNoSession when there
// is none or it has expired.
func (m *SessionManager) Current() (*domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.session.Valid(m.now()) {
		return nil, domain.ErrNoSession
	}
	s := *m.session
	return &s, nil
}

// OnChange registers a callback fired whenever the session changes.
// The returned function unsubscribes the callback.
func (m *SessionManager) OnChange(cb func(*domain.Session)) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = cb
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

// Dispose stops the refresh loop. Safe to call before Initialize.
func (m *SessionManager) Dispose() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	<-m.done
}

func (m *SessionManager) refreshLoop(ctx context.Context) {
	defer close(m.done)
	for {
		m.mu.RLock()
		session := m.session
		m.mu.RUnlock()

		wait := refreshMargin
		if session != nil {
			if until := session.ExpiresAt.Sub(m.now()) - refreshMargin; until > wait {
				wait = until
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}

		refreshToken := m.cfg.RefreshToken
		if session != nil && session.RefreshToken != "" {
			refreshToken = session.RefreshToken
		}

		next, err := m.refresh(ctx, refreshToken)
		if err != nil {
			// Keep the old session; the next tick retries.
			m.logger.WithError(err).Warn("session refresh failed")
			continue
		}
		m.setSession(next)
	}
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

func (m *SessionManager) refresh(ctx context.Context, refreshToken string) (*domain.Session, error) {
	body, err := json.Marshal(map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return nil, fmt.Errorf("failed to encode refresh request: %w", err)
	}

	url := m.cfg.URL + "/token?grant_type=refresh_token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", m.cfg.AnonKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call auth service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth service returned status %d", resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("failed to decode auth response: %w", err)
	}

	userID, expiresAt, err := parseAccessToken(tr.AccessToken)
	if err != nil {
		return nil, err
	}
	if tr.ExpiresIn > 0 {
		expiresAt = m.now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	}

	return &domain.Session{
		UserID:       userID,
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}

// parseAccessToken extracts the subject and expiry from the platform JWT.
// The signature is verified by the platform on every call; the gateway
// only needs the claims.
func parseAccessToken(token string) (string, time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to parse access token: %w", err)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", time.Time{}, fmt.Errorf("access token has no subject")
	}

	var expiresAt time.Time
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		expiresAt = exp.Time
	}
	return sub, expiresAt, nil
}

func (m *SessionManager) setSession(session *domain.Session) {
	m.mu.Lock()
	m.session = session
	cbs := make([]func(*domain.Session), 0, len(m.listeners))
	for _, cb := range m.listeners {
		cbs = append(cbs, cb)
	}
	m.mu.Unlock()

	for _, cb := range cbs {
		cb(session)
	}
}
