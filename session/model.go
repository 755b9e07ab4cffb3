package session

import "time"

// Session is the server-side state for one login. Routes and Filters are
// copied from the account record at login time and never change afterwards,
// even if the account is edited while the session is live.
type Session struct {
	Token    string
	Username string
	Routes   []string
	Filters  map[string]string
	Expiry   time.Time
}
