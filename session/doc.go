// Package session issues and tracks opaque login tokens.
//
// Sessions live entirely in RAM and are lost on restart, which is acceptable
// for the deployment scale this gateway targets. Expired entries are evicted
// lazily during lookup; there is no background sweeper, so a session that is
// abandoned and never queried again is reclaimed only at process restart.
package session
