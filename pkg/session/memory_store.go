package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	ownerID   string
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryStore implements Store using in-memory storage.
// It is a reference backend and keeps nothing across restarts.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	owners   map[string]map[string]struct{}
	ttl      time.Duration
	now      func() time.Time
	ticker   *time.Ticker
	done     chan struct{}
	stop     sync.Once
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithMemoryTTL expires entries after ttl. Zero keeps them forever.
func WithMemoryTTL(ttl time.Duration) MemoryOption {
	return func(m *MemoryStore) {
		m.ttl = ttl
	}
}

// WithMemoryClock overrides the time source.
func WithMemoryClock(now func() time.Time) MemoryOption {
	return func(m *MemoryStore) {
		m.now = now
	}
}

// NewMemoryStore creates a new in-memory session store.
// A positive cleanupInterval starts a background sweep of expired entries.
func NewMemoryStore(cleanupInterval time.Duration, opts ...MemoryOption) *MemoryStore {
	store := &MemoryStore{
		sessions: make(map[string]memoryEntry),
		owners:   make(map[string]map[string]struct{}),
		now:      time.Now,
		done:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(store)
	}

	if cleanupInterval > 0 {
		store.ticker = time.NewTicker(cleanupInterval)
		go store.cleanupLoop(store.ticker)
	}

	return store
}

// Get returns the owner of token.
func (m *MemoryStore) Get(ctx context.Context, token string) (string, error) {
	m.mu.RLock()
	entry, exists := m.sessions[token]
	m.mu.RUnlock()

	if !exists {
		return "", ErrSessionNotFound
	}

	if entry.expired(m.now()) {
		m.mu.Lock()
		if current, ok := m.sessions[token]; ok && current.expired(m.now()) {
			m.remove(token)
		}
		m.mu.Unlock()
		return "", ErrSessionNotFound
	}

	return entry.ownerID, nil
}

// Set stores token for ownerID.
func (m *MemoryStore) Set(ctx context.Context, token, ownerID string) error {
	if token == "" || ownerID == "" {
		return ErrInvalidSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.remove(token)

	entry := memoryEntry{ownerID: ownerID}
	if m.ttl > 0 {
		entry.expiresAt = m.now().Add(m.ttl)
	}
	m.sessions[token] = entry

	tokens, ok := m.owners[ownerID]
	if !ok {
		tokens = make(map[string]struct{})
		m.owners[ownerID] = tokens
	}
	tokens[token] = struct{}{}

	return nil
}

// Delete removes token.
func (m *MemoryStore) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.remove(token)
	return nil
}

// DropAll removes every token owned by ownerID.
func (m *MemoryStore) DropAll(ctx context.Context, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for token := range m.owners[ownerID] {
		delete(m.sessions, token)
	}
	delete(m.owners, ownerID)

	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// DeleteExpired removes all expired entries.
func (m *MemoryStore) DeleteExpired(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for token, entry := range m.sessions {
		if entry.expired(now) {
			m.remove(token)
		}
	}

	return nil
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (m *MemoryStore) Close() error {
	m.stop.Do(func() {
		if m.ticker != nil {
			m.ticker.Stop()
		}
		close(m.done)
	})
	return nil
}

// remove deletes token and its index entry. Callers hold the write lock.
func (m *MemoryStore) remove(token string) {
	entry, ok := m.sessions[token]
	if !ok {
		return
	}
	delete(m.sessions, token)

	if tokens, ok := m.owners[entry.ownerID]; ok {
		delete(tokens, token)
		if len(tokens) == 0 {
			delete(m.owners, entry.ownerID)
		}
	}
}

func (m *MemoryStore) cleanupLoop(ticker *time.Ticker) {
	for {
		select {
		case <-ticker.C:
			_ = m.DeleteExpired(context.Background())
		case <-m.done:
			return
		}
	}
}
