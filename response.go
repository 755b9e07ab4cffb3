package amtrakboard

import (
	"encoding/json"
	"net/http"
)

// Error tags returned in JSON bodies. Authorization failures are always
// recoverable at the request boundary; none of these crash a worker.
const (
	errBadRequest      = "bad_request"
	errInvalidCreds    = "invalid_credentials"
	errNotLoggedIn     = "not_logged_in"
	errForbidden       = "forbidden"
	errNotFound        = "not_found"
	errProxyFailed     = "proxy_failed"
	errDataReadFailed  = "data_read_failed"
	errInternalFailure = "internal_error"
)

const jsonContentType = "application/json; charset=utf-8"

func sendJSON(w http.ResponseWriter, code int, obj any) {
	body, err := json.Marshal(obj)
	if err != nil {
		body = []byte(`{"error":"internal_error"}`)
		code = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", jsonContentType)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	_, _ = w.Write(body)
}

func sendError(w http.ResponseWriter, code int, tag string) {
	sendJSON(w, code, map[string]string{"error": tag})
}

var forbiddenPage = []byte("<!doctype html><meta charset='utf-8'><title>Forbidden</title>" +
	"<h1>403 Forbidden</h1><p>Your account does not have access to this page.</p>")

func sendForbiddenPage(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write(forbiddenPage)
}
