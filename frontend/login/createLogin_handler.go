package login

import (
	"database/sql"
	"net/http"
	"net/url"
	"strings"

	"github.com/ledesmaled1977/ledesma-led-app/infrastructure/cache"
	sessioncookie "github.com/ledesmaled1977/ledesma-led-app/infrastructure/session"
	"github.com/ledesmaled1977/ledesma-led-app/infrastructure/sqlite"
	"github.com/ledesmaled1977/ledesma-led-app/models"
)

// CreateLoginHandler authenticates the user and issues a session cookie.
func CreateLoginHandler(db *sqlite.DB, sessionCache *cache.UserSessionCache, userCache *cache.UserCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/login?error="+url.QueryEscape("datos de formulario no validos"), http.StatusSeeOther)
			return
		}

		username := strings.TrimSpace(r.FormValue("username"))
		password := strings.TrimSpace(r.FormValue("password"))
		if username == "" || password == "" {
			http.Redirect(w, r, "/login?error="+url.QueryEscape("usuario y contrasena son obligatorios"), http.StatusSeeOther)
			return
		}

		user, err := authenticateUser(r.Context(), db, username, password)
		if err != nil {
			if err == sql.ErrNoRows {
				http.Redirect(w, r, "/login?error="+url.QueryEscape("Usuario o contrasena incorrectos"), http.StatusSeeOther)
				return
			}
			http.Redirect(w, r, "/login?error="+url.QueryEscape("error de autenticacion"), http.StatusSeeOther)
			return
		}

		session := newSession(user)
		if err := persistSession(r.Context(), db, session); err != nil {
			http.Redirect(w, r, "/login?error="+url.QueryEscape("no se pudo crear la sesion"), http.StatusSeeOther)
			return
		}

		sessionCache.AddSession(session)
		userCache.Add(user.Username, user)

		http.SetCookie(w, sessioncookie.SessionCookie(session.ID, 12*60*60))
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func newSession(user models.User) models.Session {
	return models.Session{
		ID:        newSessionToken(),
		UserID:    user.ID,
		User:      user,
		ExpiresAt: sessioncookie.DefaultExpiry(),
	}
}
