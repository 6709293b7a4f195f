// Package game owns the session records and the game-lifecycle state
// machine for imposter rounds: lobbies, role assignment, votes, replays.
// Records are persisted through a pluggable Backend with a 3-hour
// sliding TTL.
package game

import "time"

// TTL is how long an untouched game survives. Saving a game refreshes
// the window, so active games outlive it.
const TTL = 3 * time.Hour

type Status string

const (
	StatusLobby   Status = "lobby"
	StatusPlaying Status = "playing"
	// StatusFinished is reserved for an external elimination-rule layer.
	// Nothing in this package transitions a game to it.
	StatusFinished Status = "finished"
)

type Role string

const (
	RoleImposter Role = "imposter"
	RoleCivilian Role = "civilian"
)

// Config is chosen by the host at creation time and carried over on replay.
// An empty Categories slice means "sample from the whole catalog".
type Config struct {
	Categories   []string `json:"categories"`
	HintsEnabled bool     `json:"hintsEnabled"`
}

type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsHost   bool   `json:"isHost"`
	Role     Role   `json:"role,omitempty"`
	Word     string `json:"word,omitempty"`
	Hint     string `json:"hint,omitempty"`
	VotedOut bool   `json:"votedOut"`
}

// Game is one session record, keyed by its 6-character join code.
// Players are kept in join order. CreatedAt/StartedAt are epoch millis.
type Game struct {
	Code         string   `json:"code"`
	HostID       string   `json:"hostId"`
	Players      []Player `json:"players"`
	Status       Status   `json:"status"`
	Config       Config   `json:"config"`
	CurrentWord  string   `json:"currentWord"`
	ImposterID   string   `json:"imposterId"`
	Category     string   `json:"category"`
	CreatedAt    int64    `json:"createdAt"`
	StartedAt    int64    `json:"startedAt,omitempty"`
	StarterID    string   `json:"starterId,omitempty"`
	NextGameCode string   `json:"nextGameCode,omitempty"`
}

func (g *Game) player(id string) *Player {
	for i := range g.Players {
		if g.Players[i].ID == id {
			return &g.Players[i]
		}
	}
	return nil
}

// PlayerByName resolves a seated player by exact name. Used by the vote
// endpoint, which accepts either a target id or a target name.
func (g *Game) PlayerByName(name string) *Player {
	for i := range g.Players {
		if g.Players[i].Name == name {
			return &g.Players[i]
		}
	}
	return nil
}

// clone returns an independent copy so callers can mutate records
// without aliasing whatever the backend holds.
func (g *Game) clone() *Game {
	out := *g
	out.Players = append([]Player(nil), g.Players...)
	out.Config.Categories = append([]string(nil), g.Config.Categories...)
	return &out
}

type PublicPlayer struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsHost   bool   `json:"isHost"`
	VotedOut bool   `json:"votedOut"`
	IsMe     bool   `json:"isMe"`
	Role     Role   `json:"role,omitempty"`
}

// PublicView is the role-redacted projection of a game for one requester.
// CurrentWord and ImposterID are deliberately absent; the only secrets it
// carries are the requester's own, under MyPlayer.
type PublicView struct {
	Code         string         `json:"code"`
	Status       Status         `json:"status"`
	Players      []PublicPlayer `json:"players"`
	MyPlayer     *Player        `json:"myPlayer,omitempty"`
	Config       Config         `json:"config"`
	NextGameCode string         `json:"nextGameCode,omitempty"`
	StarterID    string         `json:"starterId,omitempty"`
}

// Public projects the game for requesterID. A player's role is revealed
// only once they are voted out, the game is finished, or they are the
// requester. Recomputed on every read, never stored.
func (g *Game) Public(requesterID string) PublicView {
	view := PublicView{
		Code:         g.Code,
		Status:       g.Status,
		Players:      make([]PublicPlayer, 0, len(g.Players)),
		Config:       g.Config,
		NextGameCode: g.NextGameCode,
		StarterID:    g.StarterID,
	}

	for _, p := range g.Players {
		pp := PublicPlayer{
			ID:       p.ID,
			Name:     p.Name,
			IsHost:   p.IsHost,
			VotedOut: p.VotedOut,
			IsMe:     p.ID == requesterID,
		}
		if p.VotedOut || g.Status == StatusFinished || p.ID == requesterID {
			pp.Role = p.Role
		}
		view.Players = append(view.Players, pp)
	}

	if me := g.player(requesterID); me != nil {
		self := *me
		view.MyPlayer = &self
	}
	return view
}
