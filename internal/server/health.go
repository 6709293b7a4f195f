package server

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"
)

type HealthResponse map[string]struct {
	Status string `json:"status"`
}

// handleHealth reports the active persistence backend. db is nil when
// the process runs on the in-memory backend, which has nothing to probe.
func handleHealth(logger *slog.Logger, db *sql.DB) http.HandlerFunc {
	type result struct {
		Status string `json:"status"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		checks := map[string]result{}
		status := http.StatusOK

		if db == nil {
			checks["memory"] = result{Status: "ok"}
		} else {
			checks["sqlite"] = result{Status: "ok"}
			if err := db.PingContext(ctx); err != nil {
				logger.Error("health check failed", "name", "sqlite", "error", err)
				checks["sqlite"] = result{Status: "error"}
				status = http.StatusServiceUnavailable
			}
		}

		writeJSON(w, status, checks)
	}
}
