package game

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	mrand "math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/Archonic944/Imposter/internal/words"
)

// Expected control-flow outcomes. Handlers map these to HTTP statuses;
// they are never logged as errors.
var (
	ErrNotFound         = errors.New("game not found")
	ErrNotHost          = errors.New("only the host can do that")
	ErrNameTaken        = errors.New("name already taken")
	ErrAlreadyStarted   = errors.New("game already started")
	ErrNotEnoughPlayers = errors.New("need at least 2 players")
	ErrNotSeated        = errors.New("player not in this game")
)

// Backend is the persistence contract. Create sweeps expired records
// before inserting, Save overwrites and refreshes the TTL window, and
// Get never returns an expired record.
type Backend interface {
	Create(ctx context.Context, g *Game) error
	Save(ctx context.Context, g *Game) error
	Get(ctx context.Context, code string) (*Game, error)
}

// Store is the session engine. It is the sole mutator of game records:
// every operation is one fetch-mutate-save against the backend, and
// mutating operations on the same code are serialized by a per-code
// mutex so concurrent joins or votes cannot overwrite each other.
// Reads take no lock and tolerate staleness.
type Store struct {
	backend Backend
	catalog *words.Catalog
	logger  *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewStore(backend Backend, catalog *words.Catalog, logger *slog.Logger) *Store {
	return &Store{
		backend: backend,
		catalog: catalog,
		logger:  logger,
		locks:   make(map[string]*sync.Mutex),
	}
}

func (s *Store) lock(code string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	mu, ok := s.locks[code]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[code] = mu
	}
	return mu
}

const (
	codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	codeLength   = 6
	codeAttempts = 5
)

func newCode() (string, error) {
	var b strings.Builder
	for i := 0; i < codeLength; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "", fmt.Errorf("sampling game code: %w", err)
		}
		b.WriteByte(codeAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// Create allocates a fresh join code and persists a new lobby for
// hostID. Codes are resampled a few times on collision; the backend
// performs its expiry sweep as part of the insert. On any persistence
// failure no code is issued.
func (s *Store) Create(ctx context.Context, hostID string, cfg Config) (string, error) {
	for i := 0; i < codeAttempts; i++ {
		code, err := newCode()
		if err != nil {
			return "", err
		}

		if _, err := s.backend.Get(ctx, code); err == nil {
			continue
		}

		g := &Game{
			Code:      code,
			HostID:    hostID,
			Players:   []Player{},
			Status:    StatusLobby,
			Config:    cfg,
			CreatedAt: time.Now().UnixMilli(),
		}
		if err := s.backend.Create(ctx, g); err != nil {
			return "", fmt.Errorf("creating game: %w", err)
		}
		return code, nil
	}
	return "", fmt.Errorf("could not allocate a unique game code after %d attempts", codeAttempts)
}

// Get looks up a live game. Backend read failures are degraded to
// ErrNotFound (the caller cannot distinguish "never existed" from
// "expired") and logged.
func (s *Store) Get(ctx context.Context, code string) (*Game, error) {
	g, err := s.backend.Get(ctx, code)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Error("reading game", "code", code, "error", err)
		}
		return nil, ErrNotFound
	}
	return g, nil
}

// Save overwrites the record at g.Code unconditionally, refreshing its
// TTL. Only call with a record fetched in the same locked operation.
func (s *Store) Save(ctx context.Context, g *Game) error {
	if err := s.backend.Save(ctx, g); err != nil {
		s.logger.Error("saving game", "code", g.Code, "error", err)
		return fmt.Errorf("saving game %s: %w", g.Code, err)
	}
	return nil
}

// Join seats playerID under name. A seated player joining again is a
// rename and is allowed in any status; new players are only admitted
// while the game is in the lobby. Names are unique case-insensitively
// among the other players.
func (s *Store) Join(ctx context.Context, code, playerID, name string) error {
	mu := s.lock(code)
	mu.Lock()
	defer mu.Unlock()

	g, err := s.Get(ctx, code)
	if err != nil {
		return err
	}

	for i := range g.Players {
		p := &g.Players[i]
		if strings.EqualFold(p.Name, name) && p.ID != playerID {
			return ErrNameTaken
		}
	}

	if p := g.player(playerID); p != nil {
		p.Name = name
		return s.Save(ctx, g)
	}

	if g.Status != StatusLobby {
		return ErrAlreadyStarted
	}

	g.Players = append(g.Players, Player{
		ID:     playerID,
		Name:   name,
		IsHost: playerID == g.HostID,
	})
	return s.Save(ctx, g)
}

// Start is the one-shot lobby→playing transition. Preconditions in
// order: game exists, caller is host, still in lobby, at least two
// players. It samples a category and word, picks the imposter and the
// round starter independently (they may coincide), and hands out roles.
// The imposter never receives the word; civilians never receive the
// hint.
func (s *Store) Start(ctx context.Context, code, hostID string) (*Game, error) {
	mu := s.lock(code)
	mu.Lock()
	defer mu.Unlock()

	g, err := s.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	if g.HostID != hostID {
		return nil, ErrNotHost
	}
	if g.Status != StatusLobby {
		return nil, ErrAlreadyStarted
	}
	if len(g.Players) < 2 {
		return nil, ErrNotEnoughPlayers
	}

	category, entry, err := s.catalog.Pick(g.Config.Categories)
	if err != nil {
		return nil, fmt.Errorf("picking word: %w", err)
	}

	imposterID := g.Players[mrand.IntN(len(g.Players))].ID
	starterID := g.Players[mrand.IntN(len(g.Players))].ID

	for i := range g.Players {
		p := &g.Players[i]
		p.Word, p.Hint = "", ""
		if p.ID == imposterID {
			p.Role = RoleImposter
			if g.Config.HintsEnabled {
				p.Hint = entry.Hint
			}
		} else {
			p.Role = RoleCivilian
			p.Word = entry.Word
		}
	}

	g.Category = category
	g.CurrentWord = entry.Word
	g.ImposterID = imposterID
	g.StarterID = starterID
	g.Status = StatusPlaying
	g.StartedAt = time.Now().UnixMilli()

	if err := s.Save(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// VoteOut flags targetID as voted out. Host-only; voting an already
// voted-out player is a no-op success. No game-over detection happens
// here.
func (s *Store) VoteOut(ctx context.Context, code, hostID, targetID string) error {
	mu := s.lock(code)
	mu.Lock()
	defer mu.Unlock()

	g, err := s.Get(ctx, code)
	if err != nil {
		return err
	}
	if g.HostID != hostID {
		return ErrNotHost
	}

	target := g.player(targetID)
	if target == nil {
		return ErrNotSeated
	}
	target.VotedOut = true
	return s.Save(ctx, g)
}

// Replay creates a fresh lobby with the same config and links it from
// the old record via NextGameCode, so clients polling the old game can
// follow the host into the next round. Host-only.
func (s *Store) Replay(ctx context.Context, code, hostID string) (string, error) {
	mu := s.lock(code)
	mu.Lock()
	defer mu.Unlock()

	g, err := s.Get(ctx, code)
	if err != nil {
		return "", err
	}
	if g.HostID != hostID {
		return "", ErrNotHost
	}

	newCode, err := s.Create(ctx, hostID, g.Config)
	if err != nil {
		return "", err
	}

	g.NextGameCode = newCode
	if err := s.Save(ctx, g); err != nil {
		return "", err
	}
	return newCode, nil
}
