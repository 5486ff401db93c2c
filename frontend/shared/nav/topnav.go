package nav

import (
	"fmt"

	"github.com/a-h/templ"

	"github.com/ledesmaled1977/ledesma-led-app/models"
)

// TopNavData is shared with page renderers.
type TopNavData struct {
	Fullname string
	Username string
	Role     string
}

func BuildTopNavData(session models.Session) TopNavData {
	return TopNavData{
		Fullname: session.User.Fullname,
		Username: session.User.Username,
		Role:     session.User.Role,
	}
}

// RenderTopNav builds the navigation bar shown on every authenticated page.
func RenderTopNav(d TopNavData) string {
	name := d.Fullname
	if name == "" {
		name = d.Username
	}
	return fmt.Sprintf(`<nav class="topnav">
<a class="brand" href="/">Ledesma LED</a>
<a href="/crear_proforma">Nueva Proforma</a>
<a href="/lista_proformas">Proformas</a>
<a href="/clientes">Clientes</a>
<span class="spacer"></span>
<span class="who">%s</span>
<a href="/logout">Salir</a>
</nav>`, templ.EscapeString(name))
}
