package game

import (
	"context"
	"testing"
	"time"
)

func backdate(b *MemoryBackend, code string, age time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e := b.games[code]
	e.createdAt = time.Now().Add(-age)
	b.games[code] = e
}

func TestMemoryExpiredReadsAsNotFound(t *testing.T) {
	b := NewMemoryBackend()
	ctx := context.Background()

	g := &Game{Code: "OLD111", Status: StatusLobby}
	if err := b.Create(ctx, g); err != nil {
		t.Fatalf("create: %v", err)
	}
	backdate(b, "OLD111", TTL+time.Minute)

	if _, err := b.Get(ctx, "OLD111"); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMemorySaveSlidesTTL(t *testing.T) {
	b := NewMemoryBackend()
	ctx := context.Background()

	g := &Game{Code: "SLIDE1", Status: StatusLobby}
	if err := b.Create(ctx, g); err != nil {
		t.Fatalf("create: %v", err)
	}
	backdate(b, "SLIDE1", TTL-time.Minute)

	// A save near the end of the window keeps the game alive.
	if err := b.Save(ctx, g); err != nil {
		t.Fatalf("save: %v", err)
	}
	backdate(b, "SLIDE1", TTL-time.Minute)
	if _, err := b.Get(ctx, "SLIDE1"); err != nil {
		t.Fatalf("get after slide: %v", err)
	}
}

func TestMemoryCreateSweepsExpired(t *testing.T) {
	b := NewMemoryBackend()
	ctx := context.Background()

	if err := b.Create(ctx, &Game{Code: "OLD222"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	backdate(b, "OLD222", TTL+time.Minute)

	if err := b.Create(ctx, &Game{Code: "NEW222"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	b.mu.RLock()
	_, stillThere := b.games["OLD222"]
	b.mu.RUnlock()
	if stillThere {
		t.Error("expired game survived the create sweep")
	}
}

func TestMemoryGetReturnsCopy(t *testing.T) {
	b := NewMemoryBackend()
	ctx := context.Background()

	if err := b.Create(ctx, &Game{Code: "COPY11", Players: []Player{{ID: "p1", Name: "Alice"}}}); err != nil {
		t.Fatalf("create: %v", err)
	}

	g, err := b.Get(ctx, "COPY11")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	g.Players[0].Name = "Mallory"

	again, _ := b.Get(ctx, "COPY11")
	if again.Players[0].Name != "Alice" {
		t.Error("mutation of a read leaked into the stored record")
	}
}
