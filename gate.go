package amtrakboard

import (
	"encoding/base64"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/theoremus-urban-solutions/amtrak-board/accounts"
	"github.com/theoremus-urban-solutions/amtrak-board/authz"
	"github.com/theoremus-urban-solutions/amtrak-board/config"
	"github.com/theoremus-urban-solutions/amtrak-board/internal/logging"
	"github.com/theoremus-urban-solutions/amtrak-board/region"
	"github.com/theoremus-urban-solutions/amtrak-board/session"
	"github.com/theoremus-urban-solutions/amtrak-board/upstream"
)

// Gate classifies every request and produces the access decision. It owns
// the collaborating services (account table, session store, upstream client,
// regional filter) so tests can swap any of them out.
type Gate struct {
	log logging.Logger

	accounts *accounts.Store
	sessions *session.Store
	upstream *upstream.Client
	nec      *region.Engine

	static     http.Handler
	cookieName string
	dataDir    string
}

// NewGate wires a gate from the loaded configuration.
func NewGate(cfg config.AppConfig, log logging.Logger) *Gate {
	return &Gate{
		log:        log,
		accounts:   accounts.NewStore(cfg.Auth.AccountsFile),
		sessions:   session.NewStore(time.Duration(cfg.Auth.SessionTTLMinutes)*time.Minute, nil),
		upstream:   upstream.NewClient(cfg.Upstream.BaseURL, time.Duration(cfg.Upstream.TimeoutMS)*time.Millisecond),
		nec:        region.NEC(cfg.Content.DataDir),
		static:     http.FileServer(http.Dir(cfg.Content.PublicDir)),
		cookieName: cfg.Auth.CookieName,
		dataDir:    cfg.Content.DataDir,
	}
}

// sessionFromRequest resolves the session cookie, if any. Expired sessions
// read as absent.
func (g *Gate) sessionFromRequest(r *http.Request) *session.Session {
	c, err := r.Cookie(g.cookieName)
	if err != nil {
		return nil
	}
	return g.sessions.Get(c.Value)
}

func (g *Gate) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     g.cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (g *Gate) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     g.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// requireAuth returns the session authorized for p, or the error tag to
// report: not_logged_in when no valid session exists, forbidden when the
// session's granted routes do not cover p.
func (g *Gate) requireAuth(r *http.Request, p string) (*session.Session, string) {
	sess := g.sessionFromRequest(r)
	if sess == nil {
		return nil, errNotLoggedIn
	}
	if !authz.Authorized(sess.Routes, p) {
		return nil, errForbidden
	}
	return sess, ""
}

// engineFor returns the filter engine selected by the session's filter
// preference, or nil when data should pass through unmodified.
func (g *Gate) engineFor(sess *session.Session) *region.Engine {
	if sess != nil && sess.Filters["region"] == "nec" {
		return g.nec
	}
	return nil
}

// publicPath reports whether p is served without any session check: the
// login page and its script, stylesheets and images, and the asset/favicon
// prefixes. Every other script is protected.
func publicPath(p string) bool {
	switch p {
	case "/login.html", "/login.js":
		return true
	}
	if strings.HasPrefix(p, "/favicon") || strings.HasPrefix(p, "/assets/") {
		return true
	}
	switch path.Ext(p) {
	case ".css", ".png", ".jpg", ".svg", ".ico":
		return true
	}
	return false
}

// handlePages serves everything that is not an auth, realtime or dataset
// route: pages, scripts and static assets.
func (g *Gate) handlePages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		sendError(w, http.StatusNotFound, errNotFound)
		return
	}
	p := r.URL.Path

	// Force a start on the login page.
	if p == "/" || p == "/index.html" {
		if g.sessionFromRequest(r) == nil {
			w.Header().Set("Location", "/login.html")
			w.WriteHeader(http.StatusFound)
			return
		}
	}

	isPublic := publicPath(p)

	if strings.HasSuffix(p, ".html") || p == "/" {
		if !isPublic {
			sess := g.sessionFromRequest(r)
			if sess == nil {
				next := base64.RawURLEncoding.EncodeToString([]byte(p))
				w.Header().Set("Location", "/login.html?next="+next)
				w.WriteHeader(http.StatusFound)
				return
			}
			if !authz.Authorized(sess.Routes, p) {
				sendForbiddenPage(w)
				return
			}
		}
		g.static.ServeHTTP(w, r)
		return
	}

	// Everything else that is not public gets the JSON-flavored gate:
	// protected scripts in particular.
	if !isPublic {
		if _, errTag := g.requireAuth(r, p); errTag != "" {
			if errTag == errForbidden {
				sendError(w, http.StatusForbidden, errForbidden)
			} else {
				sendError(w, http.StatusUnauthorized, errNotLoggedIn)
			}
			return
		}
	}

	g.static.ServeHTTP(w, r)
}
