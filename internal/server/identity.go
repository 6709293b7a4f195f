package server

import (
	"net/http"

	"github.com/google/uuid"
)

// Player identity is an opaque id in a cookie. It is caller-supplied
// and trusted; this is a party game, not an auth system.
const identityCookie = "imposter_id"

func playerID(r *http.Request) string {
	c, err := r.Cookie(identityCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

// ensurePlayerID returns the caller's id, minting and setting one when
// the cookie is absent. Create and join use this so first-time players
// get an identity; everything else requires one to already exist.
func ensurePlayerID(w http.ResponseWriter, r *http.Request) string {
	if id := playerID(r); id != "" {
		return id
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     identityCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   60 * 60 * 24,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
