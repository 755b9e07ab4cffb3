package amtrakboard

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// handleData serves the protected local dataset files under /data/,
// applying the session's regional filter to JSON payloads.
func (g *Gate) handleData(w http.ResponseWriter, r *http.Request) {
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

	rel := strings.TrimPrefix(path.Clean(p), "/data/")
	if rel == "" || strings.HasPrefix(rel, "..") || strings.HasPrefix(rel, "/") {
		sendError(w, http.StatusNotFound, errNotFound)
		return
	}
	fsPath := filepath.Join(g.dataDir, filepath.FromSlash(rel))
	info, err := os.Stat(fsPath)
	if err != nil || info.IsDir() {
		sendError(w, http.StatusNotFound, errNotFound)
		return
	}

	raw, err := os.ReadFile(fsPath)
	if err != nil {
		g.log.Error(r.Context(), "dataset read failed", "path", fsPath, "error", err)
		sendJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   errDataReadFailed,
			"message": err.Error(),
		})
		return
	}

	if engine := g.engineFor(sess); engine != nil && strings.HasSuffix(rel, ".json") {
		raw = engine.FilterDataFile(rel, raw)
	}

	w.Header().Set("Content-Type", jsonContentType)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}
