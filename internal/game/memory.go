package game

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	game      *Game
	createdAt time.Time
}

// MemoryBackend keeps games in a process-local map guarded by an
// RWMutex. It mirrors the SQLite backend's policy: sweep on create,
// slide the TTL on save, never return an expired entry. State is lost
// on restart.
type MemoryBackend struct {
	mu    sync.RWMutex
	games map[string]memoryEntry
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{games: make(map[string]memoryEntry)}
}

func (b *MemoryBackend) Create(ctx context.Context, g *Game) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	threshold := time.Now().Add(-TTL)
	for code, e := range b.games {
		if e.createdAt.Before(threshold) {
			delete(b.games, code)
		}
	}

	b.games[g.Code] = memoryEntry{game: g.clone(), createdAt: time.Now()}
	return nil
}

func (b *MemoryBackend) Save(ctx context.Context, g *Game) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.games[g.Code] = memoryEntry{game: g.clone(), createdAt: time.Now()}
	return nil
}

func (b *MemoryBackend) Get(ctx context.Context, code string) (*Game, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	e, ok := b.games[code]
	if !ok || time.Since(e.createdAt) > TTL {
		return nil, ErrNotFound
	}
	// Copies keep callers from mutating the stored record outside a save.
	return e.game.clone(), nil
}
