package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Mahekpandey/DyslexiaDetection/internal/config"
	"github.com/Mahekpandey/DyslexiaDetection/internal/models"
)

// ResultStore persists completed-session summaries. Sessions run fine
// without one; results are then only reported, not stored.
type ResultStore interface {
	SaveResult(result *models.SessionResult) error
}

// Manager owns all live sessions. Sessions are independent; the map is
// the only shared state.
type Manager struct {
	log   *zap.Logger
	cfg   config.SessionConfig
	store ResultStore

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewManager creates a session registry. store may be nil.
func NewManager(log *zap.Logger, cfg config.SessionConfig, store ResultStore) *Manager {
	return &Manager{
		log:      log,
		cfg:      cfg,
		store:    store,
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Create starts a new session.
func (m *Manager) Create() *Session {
	s := New(m.log, m.cfg)
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	m.log.Info("Session created", zap.String("session_id", s.ID.String()))
	return s
}

// Get looks up a live session by id.
func (m *Manager) Get(id string) (*Session, error) {
	sid, err := uuid.Parse(id)
	if err != nil {
		return nil, models.NewAnalysisError(models.ErrSessionNotFound, "invalid session id %q", id)
	}
	m.mu.RLock()
	s, ok := m.sessions[sid]
	m.mu.RUnlock()
	if !ok {
		return nil, models.NewAnalysisError(models.ErrSessionNotFound, "no session %q", id)
	}
	return s, nil
}

// End terminates a session, removes it from the registry, and persists
// its summary when one exists.
func (m *Manager) End(id string) (*models.SessionResult, error) {
	s, err := m.Get(id)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	delete(m.sessions, s.ID)
	m.mu.Unlock()

	result := s.End()
	if result != nil && m.store != nil {
		if err := m.store.SaveResult(result); err != nil {
			m.log.Error("Failed to persist session result",
				zap.String("session_id", id), zap.Error(err))
		}
	}
	m.log.Info("Session ended", zap.String("session_id", id))
	return result, nil
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// StartReaper runs a background sweep that ends sessions idle beyond the
// configured timeout.
func (m *Manager) StartReaper() {
	m.log.Info("Starting idle-session reaper...",
		zap.Duration("idle_timeout", m.cfg.IdleTimeout))
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()

		for {
			<-ticker.C
			m.reapIdle()
		}
	}()
}

func (m *Manager) reapIdle() {
	cutoff := time.Now().Add(-m.cfg.IdleTimeout)

	m.mu.RLock()
	var stale []uuid.UUID
	for id, s := range m.sessions {
		if s.LastActivity().Before(cutoff) {
			stale = append(stale, id)
		}
	}
	m.mu.RUnlock()

	for _, id := range stale {
		m.log.Info("Reaping idle session", zap.String("session_id", id.String()))
		if _, err := m.End(id.String()); err != nil {
			m.log.Error("Failed to reap session", zap.String("session_id", id.String()), zap.Error(err))
		}
	}
}
