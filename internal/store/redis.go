package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/robalobadob/wordling/internal/game"
)

// RedisStore keeps games as JSON strings under a key prefix.
type RedisStore struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*RedisStore)

// WithTTL sets the expiration for stored games. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *RedisStore) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// NewRedisStore connects to a Redis server.
func NewRedisStore(address, password string, db int, opts ...Option) *RedisStore {
	return NewRedisStoreFromClient(backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	}), opts...)
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *backend.Client, opts ...Option) *RedisStore {
	s := &RedisStore{
		client: client,
		prefix: "wordling:game:",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

// Ping checks the connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("store: redis ping: %w", err)
	}
	return nil
}

// Save writes the game and refreshes its TTL.
func (s *RedisStore) Save(ctx context.Context, g game.Game) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("store: marshal game: %w", err)
	}
	if err := s.client.Set(ctx, s.key(g.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("store: redis set: %w", err)
	}
	return nil
}

// Get loads a game, or ErrNotFound once the key expired.
func (s *RedisStore) Get(ctx context.Context, id string) (game.Game, error) {
	val, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return game.Game{}, ErrNotFound
		}
		return game.Game{}, fmt.Errorf("store: redis get: %w", err)
	}
	var g game.Game
	if err := json.Unmarshal(val, &g); err != nil {
		return game.Game{}, fmt.Errorf("store: unmarshal game: %w", err)
	}
	return g, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("store: redis del: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
