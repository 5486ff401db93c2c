package login

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/ledesmaled1977/ledesma-led-app/infrastructure/sqlite"
)

// CreateUserHandler registers a new account and sends the user to the
// login screen.
func CreateUserHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/register?error="+url.QueryEscape("datos de formulario no validos"), http.StatusSeeOther)
			return
		}

		fullname := r.FormValue("fullname")
		username := r.FormValue("username")
		password := r.FormValue("password")

		if err := RegisterUser(r.Context(), db, fullname, username, password); err != nil {
			if errors.Is(err, ErrUsernameExists) {
				http.Redirect(w, r, "/register?error="+url.QueryEscape("El usuario ya existe o hubo un error."), http.StatusSeeOther)
				return
			}
			slog.Error("register user failed", slog.Any("err", err))
			http.Redirect(w, r, "/register?error="+url.QueryEscape("El usuario ya existe o hubo un error."), http.StatusSeeOther)
			return
		}

		http.Redirect(w, r, "/login?success="+url.QueryEscape("Usuario registrado exitosamente"), http.StatusSeeOther)
	}
}
