package clientes

import (
	"strings"

	"github.com/a-h/templ"

	"github.com/ledesmaled1977/ledesma-led-app/frontend/shared/html"
	"github.com/ledesmaled1977/ledesma-led-app/frontend/shared/nav"
)

// ClientesPage renders the client registry shell; rows and the edit
// dialog are driven by app.js over the JSON API.
func ClientesPage(navData nav.TopNavData) templ.Component {
	var b strings.Builder
	b.WriteString(nav.RenderTopNav(navData))
	b.WriteString(`<main class="page" id="clientes-page">
<h1>Clientes</h1>
<form id="cliente-form" data-cliente-id="">
<div class="form-row">
<label>Nombre<input type="text" name="nombre" id="cliente-nombre" required></label>
<label>RUC / DNI<input type="text" name="ruc_dni" id="cliente-ruc"></label>
</div>
<div class="form-row">
<label>Telefono<input type="text" name="telefono" id="cliente-telefono"></label>
<label>Email<input type="email" name="email" id="cliente-email"></label>
</div>
<label>Direccion<input type="text" name="direccion" id="cliente-direccion"></label>
<button type="submit" id="cliente-guardar">Guardar</button>
<button type="button" id="cliente-cancelar" hidden>Cancelar</button>
</form>
<table class="listing">
<thead><tr><th>Nombre</th><th>RUC / DNI</th><th>Telefono</th><th>Email</th><th>Direccion</th><th>Acciones</th></tr></thead>
<tbody id="clientes-body"></tbody>
</table>
</main>`)
	return html.Page("Clientes", b.String())
}
