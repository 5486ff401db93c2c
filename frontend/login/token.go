package login

import (
	"crypto/rand"
	"encoding/hex"
)

const sessionTokenBytes = 32

// newSessionToken returns a hex-encoded random token used as the
// sessions table primary key and the cookie value.
func newSessionToken() string {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
