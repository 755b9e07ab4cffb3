package amtrakboard

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/theoremus-urban-solutions/amtrak-board/session"
	"github.com/theoremus-urban-solutions/amtrak-board/upstream"
)

type relayFilter int

const (
	relayUnfiltered relayFilter = iota
	relayTrains
	relayStations
)

// handleRealtime serves the protected proxy endpoints under /rt/. The
// liveness probe is registered separately and stays public.
func (g *Gate) handleRealtime(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		sendError(w, http.StatusNotFound, errNotFound)
		return
	}
	p := r.URL.Path

	sess, errTag := g.requireAuth(r, p)
	switch errTag {
	case errNotLoggedIn:
		sendError(w, http.StatusUnauthorized, errNotLoggedIn)
		return
	case errForbidden:
		sendError(w, http.StatusForbidden, errForbidden)
		return
	}

	switch {
	case strings.HasPrefix(p, "/rt/trains"):
		g.relay(w, sess, "/trains", relayTrains)
	case strings.HasPrefix(p, "/rt/stations"):
		g.relay(w, sess, "/stations", relayStations)
	case strings.HasPrefix(p, "/rt/stale"):
		g.relay(w, sess, "/stale", relayUnfiltered)
	default:
		sendError(w, http.StatusNotFound, errNotFound)
	}
}

// relay fetches an upstream path and writes it through, applying the
// session's regional filter to train and station payloads.
func (g *Gate) relay(w http.ResponseWriter, sess *session.Session, upstreamPath string, kind relayFilter) {
	data, ctype, err := g.upstream.Fetch(upstreamPath)
	if err != nil {
		body := map[string]any{"error": errProxyFailed, "message": err.Error()}
		var ue *upstream.Error
		if errors.As(err, &ue) {
			if ue.Status != 0 {
				body["upstream_status"] = ue.Status
			}
			if ue.Body != "" {
				body["body"] = ue.Body
			}
		}
		g.log.Warn(context.Background(), "upstream fetch failed", "path", upstreamPath, "error", err)
		sendJSON(w, http.StatusBadGateway, body)
		return
	}

	if engine := g.engineFor(sess); engine != nil {
		var changed bool
		switch kind {
		case relayTrains:
			data, changed = engine.FilterTrains(data)
		case relayStations:
			data, changed = engine.FilterStations(data)
		}
		if changed {
			ctype = jsonContentType
		}
	}

	w.Header().Set("Content-Type", ctype)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
