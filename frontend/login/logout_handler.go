package login

import (
	"net/http"

	"github.com/ledesmaled1977/ledesma-led-app/infrastructure/cache"
	sessioncookie "github.com/ledesmaled1977/ledesma-led-app/infrastructure/session"
	"github.com/ledesmaled1977/ledesma-led-app/infrastructure/sqlite"
)

// LogoutHandler removes session state and clears the cookie.
func LogoutHandler(db *sqlite.DB, sessionCache *cache.UserSessionCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessioncookie.CookieName)
		if err == nil && cookie.Value != "" {
			sessionCache.DeleteSessionBySessionToken(cookie.Value)
			_ = DeleteSessionByToken(r.Context(), db, cookie.Value)
		}
		http.SetCookie(w, sessioncookie.SessionCookie("", -1))
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}
