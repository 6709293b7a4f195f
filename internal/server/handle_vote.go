package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Archonic944/Imposter/internal/game"
)

type VoteRequest struct {
	TargetID   string `json:"targetId"`
	TargetName string `json:"targetName"`
}

type VoteResponse struct {
	Success bool `json:"success"`
}

func handleVote(store *game.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")

		id := playerID(r)
		if id == "" {
			writeError(w, http.StatusUnauthorized, "missing player identity")
			return
		}

		var req VoteRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if req.TargetID == "" && req.TargetName != "" {
			g, err := store.Get(r.Context(), code)
			if err != nil {
				writeError(w, http.StatusNotFound, "game not found")
				return
			}
			target := g.PlayerByName(req.TargetName)
			if target == nil {
				writeError(w, http.StatusBadRequest, "no player with that name")
				return
			}
			req.TargetID = target.ID
		}
		if req.TargetID == "" {
			writeError(w, http.StatusBadRequest, "targetId or targetName is required")
			return
		}

		err := store.VoteOut(r.Context(), code, id, req.TargetID)
		switch {
		case errors.Is(err, game.ErrNotFound):
			writeError(w, http.StatusNotFound, "game not found")
			return
		case errors.Is(err, game.ErrNotHost):
			writeError(w, http.StatusForbidden, "only the host can vote out")
			return
		case errors.Is(err, game.ErrNotSeated):
			writeError(w, http.StatusBadRequest, "target is not in this game")
			return
		case err != nil:
			writeError(w, http.StatusInternalServerError, "could not vote out player")
			return
		}

		writeJSON(w, http.StatusOK, VoteResponse{Success: true})
	}
}
