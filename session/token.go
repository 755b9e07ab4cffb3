package session

import (
	"crypto/rand"
	"encoding/base64"
)

const tokenBytes = 32

// newToken returns a fresh 256-bit token as unpadded base64url. Collisions
// are cryptographically infeasible, so the store does not check for them.
func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
