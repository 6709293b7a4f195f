package game

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// SQLiteBackend persists games as (code, JSON blob, created_at millis)
// rows. The schema is created lazily on first use so the backend works
// against an empty database file, and created_at is added to tables
// from deployments that predate the TTL column.
type SQLiteBackend struct {
	db *sql.DB

	once    sync.Once
	initErr error
}

func NewSQLiteBackend(db *sql.DB) *SQLiteBackend {
	return &SQLiteBackend{db: db}
}

func (b *SQLiteBackend) ensureSchema(ctx context.Context) error {
	b.once.Do(func() {
		_, err := b.db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS games (
				code TEXT PRIMARY KEY,
				data TEXT,
				created_at INTEGER
			)
		`)
		if err != nil {
			b.initErr = fmt.Errorf("creating games table: %w", err)
			return
		}

		// Tables created before the TTL existed lack created_at. The
		// duplicate-column failure is the normal case and is swallowed;
		// anything else is a real problem.
		_, err = b.db.ExecContext(ctx, `ALTER TABLE games ADD COLUMN created_at INTEGER`)
		if err != nil && !strings.Contains(err.Error(), "duplicate column") {
			b.initErr = fmt.Errorf("adding created_at column: %w", err)
		}
	})
	return b.initErr
}

// Create sweeps expired rows, then inserts the new game.
func (b *SQLiteBackend) Create(ctx context.Context, g *Game) error {
	if err := b.ensureSchema(ctx); err != nil {
		return err
	}

	threshold := time.Now().Add(-TTL).UnixMilli()
	if _, err := b.db.ExecContext(ctx, `DELETE FROM games WHERE created_at < ?`, threshold); err != nil {
		return fmt.Errorf("sweeping expired games: %w", err)
	}

	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encoding game %s: %w", g.Code, err)
	}

	_, err = b.db.ExecContext(ctx, `
		INSERT INTO games (code, data, created_at) VALUES (?, ?, ?)
	`, g.Code, string(data), time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("inserting game %s: %w", g.Code, err)
	}
	return nil
}

// Save overwrites the row and refreshes created_at, sliding the TTL
// window so active games stay alive.
func (b *SQLiteBackend) Save(ctx context.Context, g *Game) error {
	if err := b.ensureSchema(ctx); err != nil {
		return err
	}

	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encoding game %s: %w", g.Code, err)
	}

	_, err = b.db.ExecContext(ctx, `
		UPDATE games SET data = ?, created_at = ? WHERE code = ?
	`, string(data), time.Now().UnixMilli(), g.Code)
	if err != nil {
		return fmt.Errorf("updating game %s: %w", g.Code, err)
	}
	return nil
}

// Get returns the live record at code. Rows past the TTL threshold read
// as not found even if the sweep has not deleted them yet. Rows from a
// pre-migration table have a NULL created_at and stay readable; the
// next save stamps them into the TTL window.
func (b *SQLiteBackend) Get(ctx context.Context, code string) (*Game, error) {
	if err := b.ensureSchema(ctx); err != nil {
		return nil, err
	}

	threshold := time.Now().Add(-TTL).UnixMilli()
	var data string
	err := b.db.QueryRowContext(ctx, `
		SELECT data FROM games
		WHERE code = ? AND (created_at IS NULL OR created_at >= ?)
	`, code, threshold).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading game %s: %w", code, err)
	}

	var g Game
	if err := json.Unmarshal([]byte(data), &g); err != nil {
		return nil, fmt.Errorf("decoding game %s: %w", code, err)
	}
	return &g, nil
}
