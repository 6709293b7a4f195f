package game

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/Archonic944/Imposter/internal/database"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("opening db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLiteRoundtrip(t *testing.T) {
	b := NewSQLiteBackend(testDB(t))
	ctx := context.Background()

	g := &Game{
		Code:    "RT1234",
		HostID:  "host",
		Status:  StatusLobby,
		Config:  Config{Categories: []string{"animals"}, HintsEnabled: true},
		Players: []Player{},
	}
	if err := b.Create(ctx, g); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := b.Get(ctx, "RT1234")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.HostID != "host" || got.Status != StatusLobby || !got.Config.HintsEnabled {
		t.Errorf("roundtrip mismatch: %+v", got)
	}

	got.Players = append(got.Players, Player{ID: "p1", Name: "Alice"})
	got.Status = StatusPlaying
	if err := b.Save(ctx, got); err != nil {
		t.Fatalf("save: %v", err)
	}

	again, err := b.Get(ctx, "RT1234")
	if err != nil {
		t.Fatalf("get after save: %v", err)
	}
	if len(again.Players) != 1 || again.Status != StatusPlaying {
		t.Errorf("save not persisted: %+v", again)
	}
}

func TestSQLiteGetUnknownCode(t *testing.T) {
	b := NewSQLiteBackend(testDB(t))
	if _, err := b.Get(context.Background(), "NOPE42"); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSQLiteDuplicateCodeRejected(t *testing.T) {
	b := NewSQLiteBackend(testDB(t))
	ctx := context.Background()

	if err := b.Create(ctx, &Game{Code: "DUP111"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := b.Create(ctx, &Game{Code: "DUP111"}); err == nil {
		t.Fatal("duplicate code insert succeeded")
	}
}

func TestSQLiteExpiredReadsAsNotFound(t *testing.T) {
	db := testDB(t)
	b := NewSQLiteBackend(db)
	ctx := context.Background()

	if err := b.Create(ctx, &Game{Code: "OLD111"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	past := time.Now().Add(-TTL - time.Minute).UnixMilli()
	if _, err := db.ExecContext(ctx, `UPDATE games SET created_at = ? WHERE code = ?`, past, "OLD111"); err != nil {
		t.Fatalf("backdating: %v", err)
	}

	if _, err := b.Get(ctx, "OLD111"); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	// The next create sweeps the stale row away entirely.
	if err := b.Create(ctx, &Game{Code: "NEW111"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM games WHERE code = ?`, "OLD111").Scan(&count); err != nil {
		t.Fatalf("counting: %v", err)
	}
	if count != 0 {
		t.Error("expired row survived the create sweep")
	}
}

func TestSQLiteSaveSlidesTTL(t *testing.T) {
	db := testDB(t)
	b := NewSQLiteBackend(db)
	ctx := context.Background()

	g := &Game{Code: "SLIDE1"}
	if err := b.Create(ctx, g); err != nil {
		t.Fatalf("create: %v", err)
	}

	past := time.Now().Add(-TTL + time.Minute).UnixMilli()
	if _, err := db.ExecContext(ctx, `UPDATE games SET created_at = ? WHERE code = ?`, past, "SLIDE1"); err != nil {
		t.Fatalf("backdating: %v", err)
	}

	if err := b.Save(ctx, g); err != nil {
		t.Fatalf("save: %v", err)
	}

	var createdAt int64
	if err := db.QueryRowContext(ctx, `SELECT created_at FROM games WHERE code = ?`, "SLIDE1").Scan(&createdAt); err != nil {
		t.Fatalf("reading created_at: %v", err)
	}
	if createdAt <= past {
		t.Error("save did not refresh created_at")
	}
}

func TestSQLiteMigratesLegacyTable(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	// A table from before the TTL column existed, with a live row.
	if _, err := db.ExecContext(ctx, `CREATE TABLE games (code TEXT PRIMARY KEY, data TEXT)`); err != nil {
		t.Fatalf("creating legacy table: %v", err)
	}
	if _, err := db.ExecContext(ctx, `INSERT INTO games (code, data) VALUES ('LEGACY', '{"code":"LEGACY","status":"lobby"}')`); err != nil {
		t.Fatalf("inserting legacy row: %v", err)
	}

	b := NewSQLiteBackend(db)

	// Legacy rows stay readable despite their NULL created_at.
	g, err := b.Get(ctx, "LEGACY")
	if err != nil {
		t.Fatalf("get legacy row: %v", err)
	}
	if g.Status != StatusLobby {
		t.Errorf("status = %q, want %q", g.Status, StatusLobby)
	}

	// A save stamps the row into the TTL window.
	if err := b.Save(ctx, g); err != nil {
		t.Fatalf("save: %v", err)
	}
	var createdAt sql.NullInt64
	if err := db.QueryRowContext(ctx, `SELECT created_at FROM games WHERE code = 'LEGACY'`).Scan(&createdAt); err != nil {
		t.Fatalf("reading created_at: %v", err)
	}
	if !createdAt.Valid {
		t.Error("save left created_at NULL")
	}

	// New inserts work against the migrated table too.
	if err := b.Create(ctx, &Game{Code: "FRESH1"}); err != nil {
		t.Fatalf("create after migration: %v", err)
	}
}
