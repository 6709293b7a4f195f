package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Archonic944/Imposter/internal/game"
)

type JoinRequest struct {
	Name string `json:"name"`
}

type JoinResponse struct {
	Success  bool   `json:"success"`
	PlayerID string `json:"playerId"`
}

func handleJoin(store *game.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")

		var req JoinRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}

		id := ensurePlayerID(w, r)

		err := store.Join(r.Context(), code, id, req.Name)
		switch {
		case errors.Is(err, game.ErrNotFound):
			writeError(w, http.StatusNotFound, "game not found")
			return
		case errors.Is(err, game.ErrNameTaken):
			writeError(w, http.StatusBadRequest, "name already taken")
			return
		case errors.Is(err, game.ErrAlreadyStarted):
			writeError(w, http.StatusBadRequest, "game already started")
			return
		case err != nil:
			writeError(w, http.StatusInternalServerError, "could not join game")
			return
		}

		writeJSON(w, http.StatusOK, JoinResponse{Success: true, PlayerID: id})
	}
}
