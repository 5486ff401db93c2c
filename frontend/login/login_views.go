package login

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"github.com/ledesmaled1977/ledesma-led-app/frontend/shared/html"
)

// LoginScreen builds the login form page.
func LoginScreen(errorMessage, successMessage string) templ.Component {
	var b strings.Builder
	b.WriteString(`<main class="auth-card"><h1>Ledesma LED</h1><h2>Iniciar Sesion</h2>`)
	if errorMessage != "" {
		fmt.Fprintf(&b, `<p class="flash flash-error">%s</p>`, templ.EscapeString(errorMessage))
	}
	if successMessage != "" {
		fmt.Fprintf(&b, `<p class="flash flash-ok">%s</p>`, templ.EscapeString(successMessage))
	}
	b.WriteString(`<form method="POST" action="/login">
<label>Usuario<input type="text" name="username" required autofocus></label>
<label>Contrasena<input type="password" name="password" required></label>
<button type="submit">Entrar</button>
</form>
<p><a href="/register">Crear una cuenta</a></p></main>`)
	return html.Page("Iniciar Sesion", b.String())
}

// RegisterScreen builds the account registration page.
func RegisterScreen(errorMessage string) templ.Component {
	var b strings.Builder
	b.WriteString(`<main class="auth-card"><h1>Ledesma LED</h1><h2>Registro</h2>`)
	if errorMessage != "" {
		fmt.Fprintf(&b, `<p class="flash flash-error">%s</p>`, templ.EscapeString(errorMessage))
	}
	b.WriteString(`<form method="POST" action="/register">
<label>Nombre completo<input type="text" name="fullname" required autofocus></label>
<label>Usuario<input type="text" name="username" required></label>
<label>Contrasena<input type="password" name="password" required></label>
<button type="submit">Registrarse</button>
</form>
<p><a href="/login">Volver al inicio de sesion</a></p></main>`)
	return html.Page("Registro", b.String())
}
