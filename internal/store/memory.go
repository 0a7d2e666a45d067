package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/robalobadob/wordling/internal/game"
)

// memoryEntry is a JSON snapshot plus the time it was last saved.
type memoryEntry struct {
	data    []byte
	savedAt time.Time
}

// MemoryStore is an in-memory map-based Store implementation. Games not
// saved within ttl are treated as gone; ttl <= 0 keeps them forever.
type MemoryStore struct {
	mu    sync.RWMutex
	games map[string]memoryEntry // keyed by Game.ID
	ttl   time.Duration
	now   func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{games: make(map[string]memoryEntry), ttl: ttl, now: time.Now}
}

// Save adds or updates the game in the map.
func (m *MemoryStore) Save(ctx context.Context, g game.Game) error {
	data, err := json.Marshal(g)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = memoryEntry{data: data, savedAt: m.now()}
	return nil
}

// Get looks up a game by ID.
func (m *MemoryStore) Get(ctx context.Context, id string) (game.Game, error) {
	m.mu.RLock()
	e, ok := m.games[id]
	m.mu.RUnlock()
	if !ok || m.expired(e) {
		return game.Game{}, ErrNotFound
	}
	var g game.Game
	err := json.Unmarshal(e.data, &g)
	return g, err
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}

// PurgeExpired drops every game older than the TTL.
func (m *MemoryStore) PurgeExpired(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, e := range m.games {
		if m.expired(e) {
			delete(m.games, id)
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) Close() error { return nil }

func (m *MemoryStore) expired(e memoryEntry) bool {
	return m.ttl > 0 && m.now().Sub(e.savedAt) > m.ttl
}
