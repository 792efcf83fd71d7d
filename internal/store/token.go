package store

import (
	"crypto/rand"
	"encoding/hex"
)

// newToken returns a random hex string suitable as a session token.
func newToken() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "token-unknown"
	}
	return hex.EncodeToString(b[:])
}
