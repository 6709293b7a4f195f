package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Archonic944/Imposter/internal/game"
)

type ReplayResponse struct {
	NewCode string `json:"newCode"`
}

// handleReplay chains a finished round into a fresh lobby with the same
// config. Players polling the old code discover it via nextGameCode.
func handleReplay(store *game.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")

		id := playerID(r)
		if id == "" {
			writeError(w, http.StatusUnauthorized, "missing player identity")
			return
		}

		newCode, err := store.Replay(r.Context(), code, id)
		switch {
		case errors.Is(err, game.ErrNotFound):
			writeError(w, http.StatusNotFound, "game not found")
			return
		case errors.Is(err, game.ErrNotHost):
			writeError(w, http.StatusForbidden, "only the host can replay")
			return
		case err != nil:
			writeError(w, http.StatusInternalServerError, "could not create replay game")
			return
		}

		writeJSON(w, http.StatusOK, ReplayResponse{NewCode: newCode})
	}
}
