package amtrakboard

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/theoremus-urban-solutions/amtrak-board/accounts"
)

type loginRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

func (g *Gate) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, http.StatusNotFound, errNotFound)
		return
	}
	var body loginRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Username == nil || body.Password == nil {
		sendError(w, http.StatusBadRequest, errBadRequest)
		return
	}
	username := strings.TrimSpace(*body.Username)

	rec, ok, err := g.accounts.Lookup(username)
	if err != nil {
		// An unreadable account table locks everyone out; it never crashes
		// the worker.
		g.log.Error(r.Context(), "account table load failed", "error", err)
		sendError(w, http.StatusUnauthorized, errInvalidCreds)
		return
	}
	if !ok || !accounts.Verify(rec, *body.Password) {
		sendError(w, http.StatusUnauthorized, errInvalidCreds)
		return
	}

	token, err := g.sessions.Create(username, rec.Routes, rec.Filters)
	if err != nil {
		g.log.Error(r.Context(), "session create failed", "error", err)
		sendError(w, http.StatusInternalServerError, errInternalFailure)
		return
	}

	routes := rec.Routes
	if routes == nil {
		routes = []string{}
	}
	g.setSessionCookie(w, token)
	sendJSON(w, http.StatusOK, map[string]any{
		"ok":       true,
		"username": username,
		"routes":   routes,
	})
	g.log.Info(r.Context(), "login", "username", username)
}

func (g *Gate) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, http.StatusNotFound, errNotFound)
		return
	}
	if c, err := r.Cookie(g.cookieName); err == nil {
		g.sessions.Destroy(c.Value)
	}
	g.clearSessionCookie(w)
	sendJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (g *Gate) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		sendError(w, http.StatusNotFound, errNotFound)
		return
	}
	sess := g.sessionFromRequest(r)
	if sess == nil {
		sendError(w, http.StatusUnauthorized, errNotLoggedIn)
		return
	}
	sendJSON(w, http.StatusOK, map[string]any{
		"ok":       true,
		"username": sess.Username,
		"routes":   sess.Routes,
		"filters":  sess.Filters,
		"exp":      sess.Expiry.Unix(),
	})
}
