package server

import (
	"database/sql"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/Archonic944/Imposter/internal/game"
	"github.com/Archonic944/Imposter/internal/words"
)

func addRoutes(r chi.Router, logger *slog.Logger, store *game.Store, catalog *words.Catalog, db *sql.DB) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Imposter API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, db))

	r.Route("/game", func(r chi.Router) {
		r.Post("/create", handleCreate(store, catalog))

		// {code} is the public 6-character join code.
		r.Route("/{code}", func(r chi.Router) {
			r.Post("/join", handleJoin(store))
			r.Post("/start", handleStart(store))
			r.Get("/status", handleStatus(store))
			r.Post("/vote", handleVote(store))
			r.Post("/replay", handleReplay(store))
		})
	})
}
