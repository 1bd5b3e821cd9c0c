package pkg

import (
	"crypto/rand"
	"encoding/hex"
)

const (
	SessionCookieName = "user_session"

	sessionIDLength = 16
)

// GenerateNewSessionID - returns a random hex identifier for a browser session.
func GenerateNewSessionID() string {
	buf := make([]byte, sessionIDLength)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
