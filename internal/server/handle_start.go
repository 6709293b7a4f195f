package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Archonic944/Imposter/internal/game"
)

func handleStart(store *game.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")

		id := playerID(r)
		if id == "" {
			writeError(w, http.StatusUnauthorized, "missing player identity")
			return
		}

		g, err := store.Start(r.Context(), code, id)
		switch {
		case errors.Is(err, game.ErrNotFound):
			writeError(w, http.StatusNotFound, "game not found")
			return
		case errors.Is(err, game.ErrNotHost):
			writeError(w, http.StatusForbidden, "only the host can start")
			return
		case errors.Is(err, game.ErrAlreadyStarted):
			writeError(w, http.StatusBadRequest, "game already started")
			return
		case errors.Is(err, game.ErrNotEnoughPlayers):
			writeError(w, http.StatusBadRequest, "need at least 2 players")
			return
		case err != nil:
			writeError(w, http.StatusInternalServerError, "could not start game")
			return
		}

		// Returning the view directly saves clients an extra status poll.
		writeJSON(w, http.StatusOK, g.Public(id))
	}
}
