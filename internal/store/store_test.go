package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordling/internal/game"
)

// runStoreContract checks the behaviour every backend must share.
func runStoreContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	g, err := game.NewWithTarget("cat", 4)
	require.NoError(t, err)
	g = g.InsertLetter("d").InsertLetter("o").InsertLetter("g").SubmitGuess().InsertLetter("c")

	_, err = s.Get(ctx, g.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Save(ctx, g))
	got, err := s.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, g, got)

	// stored copies are isolated from the caller
	got.CurrentGuess[0] = "z"
	again, err := s.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, "c", again.CurrentGuess[0])

	next := g.InsertLetter("a").InsertLetter("t").SubmitGuess()
	require.NoError(t, s.Save(ctx, next))
	got, err = s.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.True(t, got.HasWon)
	assert.Len(t, got.History, 2)

	require.NoError(t, s.Delete(ctx, g.ID))
	_, err = s.Get(ctx, g.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, s.Delete(ctx, "missing"))
}

func TestMemoryStore_Contract(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	defer s.Close()
	runStoreContract(t, s)
}

func TestMemoryStore_Expiry(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	ctx := context.Background()
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	old, err := game.NewWithTarget("see", 4)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, old))

	now = now.Add(50 * time.Minute)
	fresh, err := game.NewWithTarget("she", 4)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, fresh))

	now = now.Add(20 * time.Minute)
	_, err = s.Get(ctx, old.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get(ctx, fresh.ID)
	assert.NoError(t, err)

	n, err := s.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	assert.Len(t, s.games, 1)

	var _ Purger = s
}

func TestOpen_MemoryHonorsTTL(t *testing.T) {
	st, err := Open(context.Background(), Config{Backend: "memory", TTL: time.Minute})
	require.NoError(t, err)
	m, ok := st.(*MemoryStore)
	require.True(t, ok)
	assert.Equal(t, time.Minute, m.ttl)
	_, ok = st.(Purger)
	assert.True(t, ok)
}

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return mr, backend.NewClient(&backend.Options{Addr: mr.Addr()})
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newMiniRedis(t)
	s := NewRedisStoreFromClient(client)
	defer s.Close()
	runStoreContract(t, s)
}

func TestRedisStore_TTLAndPrefix(t *testing.T) {
	mr, client := newMiniRedis(t)
	s := NewRedisStoreFromClient(client, WithTTL(time.Minute), WithPrefix("test:"))
	defer s.Close()
	ctx := context.Background()

	g, err := game.NewWithTarget("of", 4)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, g))

	assert.True(t, mr.Exists("test:"+g.ID))
	assert.Equal(t, time.Minute, mr.TTL("test:"+g.ID))

	mr.FastForward(2 * time.Minute)
	_, err = s.Get(ctx, g.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOpen_Redis(t *testing.T) {
	mr, _ := newMiniRedis(t)
	s, err := Open(context.Background(), Config{Backend: "redis", RedisAddr: mr.Addr()})
	require.NoError(t, err)
	defer s.Close()
	runStoreContract(t, s)
}

func TestOpen_RedisUnreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()
	_, err = Open(context.Background(), Config{Backend: "redis", RedisAddr: addr})
	assert.Error(t, err)
}

func TestOpen_Unknown(t *testing.T) {
	_, err := Open(context.Background(), Config{Backend: "etcd"})
	assert.Error(t, err)

	s, err := Open(context.Background(), Config{})
	require.NoError(t, err)
	assert.NoError(t, s.Close())
}

func openTestSQLite(t *testing.T, ttl time.Duration) *SQLiteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "games.db")
	s, err := OpenSQLite(context.Background(), path, ttl)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore_Contract(t *testing.T) {
	runStoreContract(t, openTestSQLite(t, time.Hour))
}

func TestSQLiteStore_MigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.db")
	ctx := context.Background()

	s1, err := OpenSQLite(ctx, path, 0)
	require.NoError(t, err)
	g, err := game.NewWithTarget("to", 4)
	require.NoError(t, err)
	require.NoError(t, s1.Save(ctx, g))
	require.NoError(t, s1.Close())

	s2, err := OpenSQLite(ctx, path, 0)
	require.NoError(t, err)
	defer s2.Close()

	var n int
	require.NoError(t, s2.db.QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&n))
	assert.Equal(t, 1, n)
	_, err = s2.Get(ctx, g.ID)
	assert.NoError(t, err)
}

func TestSQLiteStore_Expiry(t *testing.T) {
	s := openTestSQLite(t, time.Hour)
	ctx := context.Background()
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	old, err := game.NewWithTarget("see", 4)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, old))

	now = now.Add(50 * time.Minute)
	fresh, err := game.NewWithTarget("she", 4)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, fresh))

	now = now.Add(20 * time.Minute)
	_, err = s.Get(ctx, old.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get(ctx, fresh.ID)
	assert.NoError(t, err)

	n, err := s.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	var _ Purger = s
}

func TestOpen_SQLite(t *testing.T) {
	s, err := Open(context.Background(), Config{
		Backend:    "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "games.db"),
		TTL:        time.Hour,
	})
	require.NoError(t, err)
	defer s.Close()
	_, ok := s.(Purger)
	assert.True(t, ok)
	runStoreContract(t, s)
}
