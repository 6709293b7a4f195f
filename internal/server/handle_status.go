package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Archonic944/Imposter/internal/game"
)

// handleStatus is the polling endpoint. Identity is optional: without a
// cookie the caller gets the fully redacted spectator view.
func handleStatus(store *game.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")

		g, err := store.Get(r.Context(), code)
		if err != nil {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}

		writeJSON(w, http.StatusOK, g.Public(playerID(r)))
	}
}
