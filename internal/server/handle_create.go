package server

import (
	"fmt"
	"net/http"

	"github.com/Archonic944/Imposter/internal/game"
	"github.com/Archonic944/Imposter/internal/words"
)

type CreateRequest struct {
	Config game.Config `json:"config"`
}

type CreateResponse struct {
	Code string `json:"code"`
}

func handleCreate(store *game.Store, catalog *words.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		// Validate here so the store only ever samples known categories.
		for _, c := range req.Config.Categories {
			if !catalog.Has(c) {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown category %q", c))
				return
			}
		}

		hostID := ensurePlayerID(w, r)

		code, err := store.Create(r.Context(), hostID, req.Config)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "could not create game")
			return
		}

		writeJSON(w, http.StatusOK, CreateResponse{Code: code})
	}
}
