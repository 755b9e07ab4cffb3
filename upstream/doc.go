// Package upstream fetches realtime JSON from the Amtraker API on behalf of
// the request gate. Failures are surfaced as *Error values carrying the
// upstream status code (when one was received) and a truncated body excerpt,
// which the gate turns into a proxy_failed response.
package upstream
