package cart

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// ServiceFactory builds the remote cart client bound to one session's
// credentials (bearer token for accounts, signed guest id for guests).
type ServiceFactory func(sessionKey, token string) Service

// storeIdleTTL bounds how long an untouched store stays resident. Lines
// live on the cart service and the promo is persisted, so evicting an
// idle store loses nothing a fresh one cannot restore.
const storeIdleTTL = time.Hour

type storeEntry struct {
	store    *Store
	lastUsed time.Time
}

// Manager hands out one Store per shopping session. It replaces the
// original's ambient module-level singleton with an explicitly constructed
// container so tests never share hidden state. Idle stores are evicted on
// access, so cookie-less crawlers minting fresh guest ids cannot grow the
// map without bound.
type Manager struct {
	newService ServiceFactory
	promos     *PromoStore
	log        *slog.Logger
	now        func() time.Time

	mu     sync.Mutex
	stores map[string]*storeEntry
}

func NewManager(factory ServiceFactory, promos *PromoStore, logger *slog.Logger) *Manager {
	return &Manager{
		newService: factory,
		promos:     promos,
		log:        logger,
		now:        time.Now,
		stores:     map[string]*storeEntry{},
	}
}

// ForSession returns the session's store, creating it on first use. A fresh
// store restores only the persisted promo; lines are fetched from the cart
// service by the caller.
func (m *Manager) ForSession(ctx context.Context, sessionKey, token string) *Store {
	m.mu.Lock()
	m.evictIdleLocked()
	ent, ok := m.stores[sessionKey]
	if !ok {
		ent = &storeEntry{store: NewStore(m.newService(sessionKey, token), m.promos, m.log)}
		m.stores[sessionKey] = ent
	}
	ent.lastUsed = m.now()
	m.mu.Unlock()

	if !ok {
		ent.store.RestorePromo(ctx, sessionKey)
	}
	return ent.store
}

// Peek returns the badge count for a session without creating a store.
// Every page view calls this, so a visitor who never touches the cart
// never allocates one.
func (m *Manager) Peek(sessionKey string) int {
	m.mu.Lock()
	ent, ok := m.stores[sessionKey]
	if ok {
		ent.lastUsed = m.now()
	}
	m.mu.Unlock()

	if !ok {
		return 0
	}
	return ent.store.TotalItems()
}

// Drop forgets a session's store (logout, session expiry).
func (m *Manager) Drop(sessionKey string) {
	m.mu.Lock()
	delete(m.stores, sessionKey)
	m.mu.Unlock()
}

func (m *Manager) evictIdleLocked() {
	cutoff := m.now().Add(-storeIdleTTL)
	for key, ent := range m.stores {
		if ent.lastUsed.Before(cutoff) {
			delete(m.stores, key)
		}
	}
}
