package store

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	store    *Store
	lastSeen time.Time
}

// Manager owns one Store per active session. Stores are created on first
// use, dropped explicitly at logout, and swept after sitting idle for the
// configured TTL so abandoned sessions do not accumulate.
type Manager struct {
	mu      sync.Mutex
	stores  map[string]*entry
	idleTTL time.Duration
	now     func() time.Time
}

// NewManager returns a Manager that forgets stores idle longer than idleTTL.
func NewManager(idleTTL time.Duration) *Manager {
	return &Manager{
		stores:  make(map[string]*entry),
		idleTTL: idleTTL,
		now:     time.Now,
	}
}

// Get returns the store for a session, creating it on first use.
func (m *Manager) Get(sessionID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.stores[sessionID]
	if !ok {
		e = &entry{store: New()}
		m.stores[sessionID] = e
	}
	e.lastSeen = m.now()
	return e.store
}

// Drop discards the store for a session, if any.
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stores, sessionID)
}

// Len reports the number of live stores.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.stores)
}

// Sweep removes stores idle longer than the TTL and reports how many were
// dropped.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.idleTTL)
	dropped := 0
	for id, e := range m.stores {
		if e.lastSeen.Before(cutoff) {
			delete(m.stores, id)
			dropped++
		}
	}
	return dropped
}

// Run sweeps on an interval until the context is cancelled.
func (m *Manager) Run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}
