// internal/store/sqlite.go
//
// SQLite-backed Store.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying embedded migrations (idempotent, recorded in _migrations).
//   - Keeping JSON snapshots of games, hidden and purged after the TTL so
//     nothing outlives the play session.

package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordling/internal/game"
)

//go:embed migrations/*.sql
var migrations embed.FS

// SQLiteStore implements Store on a local SQLite file.
type SQLiteStore struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// OpenSQLite opens (and creates if missing) the database at dsn and
// migrates it. A ttl of zero disables expiry.
func OpenSQLite(ctx context.Context, dsn string, ttl time.Duration) (*SQLiteStore, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(ctx, db, migrations); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db, ttl: ttl, now: time.Now}, nil
}

// openDB ensures the parent directory exists, then opens the file with
// busy timeout and WAL journaling.
func openDB(dsn string) (*sql.DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// migrate applies every *.sql file of fsys in lexical order, each inside
// its own transaction, skipping files already listed in _migrations.
func migrate(ctx context.Context, db *sql.DB, fsys fs.FS) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(fsys, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRowContext(ctx, `SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := fs.ReadFile(fsys, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// Save upserts the game snapshot and stamps it with the current time.
func (s *SQLiteStore) Save(ctx context.Context, g game.Game) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("store: marshal game: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO games (id, state, status, updated_at)
        VALUES (?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            state = excluded.state,
            status = excluded.status,
            updated_at = excluded.updated_at`,
		g.ID, string(data), g.State(), s.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("store: save %s: %w", g.ID, err)
	}
	return nil
}

// Get loads a game unless it is missing or older than the TTL.
func (s *SQLiteStore) Get(ctx context.Context, id string) (game.Game, error) {
	var (
		state   string
		updated int64
	)
	err := s.db.QueryRowContext(ctx, `SELECT state, updated_at FROM games WHERE id=?`, id).Scan(&state, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return game.Game{}, ErrNotFound
	}
	if err != nil {
		return game.Game{}, fmt.Errorf("store: get %s: %w", id, err)
	}
	if s.expired(updated) {
		return game.Game{}, ErrNotFound
	}
	var g game.Game
	if err := json.Unmarshal([]byte(state), &g); err != nil {
		return game.Game{}, fmt.Errorf("store: unmarshal game: %w", err)
	}
	return g, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE id=?`, id); err != nil {
		return fmt.Errorf("store: delete %s: %w", id, err)
	}
	return nil
}

// PurgeExpired deletes every game not saved within the TTL and returns
// how many rows went away.
func (s *SQLiteStore) PurgeExpired(ctx context.Context) (int64, error) {
	if s.ttl <= 0 {
		return 0, nil
	}
	cutoff := s.now().Add(-s.ttl).Unix()
	res, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE updated_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("store: purge: %w", err)
	}
	return res.RowsAffected()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) expired(updated int64) bool {
	return s.ttl > 0 && updated < s.now().Add(-s.ttl).Unix()
}
