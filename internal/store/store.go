// internal/store/store.go
//
// Session-scoped storage for in-progress and just-finished games.
//
// Backends:
//   - memory: map guarded by RWMutex, lost on restart.
//   - redis:  JSON values with a TTL, shared between server replicas.
//   - sqlite: JSON snapshots in a local file, purged after the TTL.
//
// Every backend copies on Save and Get so callers never share slices with
// the stored value.

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robalobadob/wordling/internal/game"
)

// ErrNotFound is returned by Get for unknown or expired game IDs.
var ErrNotFound = errors.New("store: game not found")

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save persists or updates a game state.
	Save(ctx context.Context, g game.Game) error

	// Get retrieves a game by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (game.Game, error)

	// Delete removes a game. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

// Purger is implemented by backends that need explicit expiry sweeps.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// Config selects and configures a backend.
type Config struct {
	Backend       string // memory | redis | sqlite
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SQLitePath    string
	TTL           time.Duration
}

// Open builds the backend named by cfg.Backend.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemoryStore(cfg.TTL), nil
	case "redis":
		s := NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, WithTTL(cfg.TTL))
		if err := s.Ping(ctx); err != nil {
			_ = s.Close()
			return nil, err
		}
		return s, nil
	case "sqlite":
		s, err := OpenSQLite(ctx, cfg.SQLitePath, cfg.TTL)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend)
}
