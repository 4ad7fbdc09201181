package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/lojasmm/convostarter/internal/logger"
	"github.com/lojasmm/convostarter/internal/practice"
)

// Factory builds a fresh practice session.
type Factory func() *practice.Session

// Manager maps browser session ids to practice sessions. Sessions live only in
// memory and are dropped by Cleanup once idle.
type Manager struct {
	newSession Factory
	clock      clockwork.Clock

	mu       sync.Mutex
	sessions map[string]*entry
}

type entry struct {
	session  *practice.Session
	lastUsed time.Time
}

func NewManager(newSession Factory, clock clockwork.Clock) *Manager {
	return &Manager{
		newSession: newSession,
		clock:      clock,
		sessions:   make(map[string]*entry),
	}
}

// Get returns the session for id, creating one under a new id when id is empty
// or unknown. The returned id is the one to hand back to the client.
func (m *Manager) Get(id string) (string, *practice.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.sessions[id]; ok && id != "" {
		e.lastUsed = m.clock.Now()
		return id, e.session
	}

	id = uuid.NewString()
	e := &entry{session: m.newSession(), lastUsed: m.clock.Now()}
	m.sessions[id] = e
	return id, e.session
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Cleanup closes and removes sessions not used within maxAge. It returns how
// many were removed.
func (m *Manager) Cleanup(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	removed := 0
	for id, e := range m.sessions {
		if now.Sub(e.lastUsed) > maxAge {
			e.session.Close()
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// RunCleanup calls Cleanup every maxAge/2 until ctx is done. maxAge must be
// positive.
func (m *Manager) RunCleanup(ctx context.Context, maxAge time.Duration, log *logger.Logger) {
	interval := maxAge / 2
	if interval <= 0 {
		interval = maxAge
	}
	ticker := m.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if n := m.Cleanup(maxAge); n > 0 {
				log.Info("removed idle sessions", "count", n, "live", m.Len())
			}
		}
	}
}

// CloseAll closes every session, e.g. on shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, e := range m.sessions {
		e.session.Close()
		delete(m.sessions, id)
	}
}
