// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/codehelp/codehelp-tui/internal/storage"
)

// Authenticator exchanges credentials for a token.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// Session is the identity derived from the current credential.
type Session struct {
	Subject   string
	ExpiresAt time.Time
}

// =============================================================================
// SESSION MANAGER
// =============================================================================

// Manager holds the credential and the session derived from it.
type Manager struct {
	mu sync.Mutex

	store storage.TokenStore
	auth  Authenticator

	token   string
	session *Session

	now    func() time.Time
	logger *zap.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the clock used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager creates a manager and loads any persisted credential.
func NewManager(store storage.TokenStore, auth Authenticator, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		auth:   auth,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadLocked()
	return m
}

// =============================================================================
// LIFECYCLE
// =============================================================================

// Login authenticates against the backend. On success the returned token is
// persisted and the session recomputed. On failure the prior session and the
// store are left untouched and the error is returned for the caller to show.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	if m.auth == nil {
		return errors.New("login is not available")
	}

	token, err := m.auth.Login(ctx, username, password)
	if err != nil {
		m.logger.Info("login failed", zap.Error(err))
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Save(token); err != nil {
		m.logger.Error("failed to persist credential", zap.Error(err))
		return fmt.Errorf("failed to save credential: %w", err)
	}
	m.setTokenLocked(token)

	if m.session != nil {
		m.logger.Info("login succeeded", zap.String("subject", m.session.Subject))
	}
	return nil
}

// Logout clears the credential and the session. It is idempotent and never
// fails; a store error is logged.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked("logout")
}

// Revalidate re-reads the persisted credential and recomputes the session
// when the stored value differs from the one held. An unchanged credential
// keeps its session; expiry is only noticed when the credential changes.
// It returns the resulting authentication state.
func (m *Manager) Revalidate() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	token, err := m.store.Load()
	if err == nil && token == m.token {
		return m.session != nil
	}
	m.loadLocked()
	return m.session != nil
}

// =============================================================================
// SESSION STATE
// =============================================================================

// IsAuthenticated reports whether a valid credential was present at the last
// recomputation.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session != nil
}

// Session returns the current session, if any.
func (m *Manager) Session() (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return Session{}, false
	}
	return *m.session, true
}

// Subject returns the signed-in subject, or "" when signed out.
func (m *Manager) Subject() string {
	s, _ := m.Session()
	return s.Subject
}

// Token returns the current credential, or "" when signed out. Manager is
// the gateway's token source.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// =============================================================================
// RECOMPUTATION
// =============================================================================

func (m *Manager) loadLocked() {
	token, err := m.store.Load()
	if err != nil {
		m.logger.Warn("failed to read stored credential", zap.Error(err))
		m.clearLocked("unreadable store")
		return
	}
	if token == "" {
		m.token = ""
		m.session = nil
		return
	}
	m.setTokenLocked(token)
}

// setTokenLocked installs token and derives the session from it. A token that
// fails to decode or has expired is treated as a logout.
func (m *Manager) setTokenLocked(token string) {
	claims, err := Decode(token)
	if err != nil {
		m.logger.Warn("discarding undecodable credential", zap.Error(err))
		m.clearLocked("decode failure")
		return
	}
	if claims.ExpiredAt(m.now()) {
		m.logger.Info("credential expired", zap.Time("expired_at", claims.ExpiresAt))
		m.clearLocked("expired")
		return
	}

	m.token = token
	m.session = &Session{Subject: claims.Subject, ExpiresAt: claims.ExpiresAt}
}

func (m *Manager) clearLocked(reason string) {
	if err := m.store.Clear(); err != nil {
		m.logger.Error("failed to clear stored credential", zap.Error(err))
	}
	if m.session != nil {
		m.logger.Info("session ended", zap.String("reason", reason), zap.String("subject", m.session.Subject))
	}
	m.token = ""
	m.session = nil
}
