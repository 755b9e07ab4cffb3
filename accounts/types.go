package accounts

// Record is one stored account. Salt and Hash are base64url encoded, with or
// without padding. Records are immutable once loaded; a session copies Routes
// and Filters at login and keeps that snapshot for its lifetime.
type Record struct {
	Algo    string            `json:"algo" validate:"required"`
	Salt    string            `json:"salt" validate:"required"`
	Hash    string            `json:"hash" validate:"required"`
	Iter    int               `json:"iter" validate:"gte=0"`
	DKLen   int               `json:"dklen" validate:"gte=0"`
	Routes  []string          `json:"routes"`
	Filters map[string]string `json:"filters,omitempty"`
}
