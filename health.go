package amtrakboard

import "net/http"

// handlePing is the public liveness probe. It bypasses every session check.
func handlePing(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, map[string]any{"ok": true})
}
