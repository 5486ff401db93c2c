package session

import (
	"net/http"
	"time"
)

// CookieName carries the session token. The client JS reads it only to
// know whether a session exists; the token itself stays HttpOnly.
const CookieName = "X-Session-Token"

// Duration is how long a freshly issued session stays valid.
const Duration = 12 * time.Hour

// SessionCookie builds the session cookie. A negative maxAge clears it.
func SessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   false,
	}
}

// DefaultExpiry returns the expiry instant for a session issued now.
func DefaultExpiry() time.Time {
	return time.Now().Add(Duration)
}
