package proformas

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"github.com/ledesmaled1977/ledesma-led-app/frontend/shared/html"
	"github.com/ledesmaled1977/ledesma-led-app/frontend/shared/nav"
)

// EditorPage renders the proforma editor. With proformaID == 0 it starts
// blank and app.js prefills the suggested number; otherwise app.js loads
// the existing proforma from the API.
func EditorPage(navData nav.TopNavData, proformaID int64) templ.Component {
	var b strings.Builder
	b.WriteString(nav.RenderTopNav(navData))
	title := "Nueva Proforma"
	if proformaID > 0 {
		title = "Editar Proforma"
	}
	fmt.Fprintf(&b, `<main class="page" id="proforma-editor" data-proforma-id="%d">
<h1>%s</h1>
<form id="proforma-form">
<div class="form-row">
<label>Cotizacion Nro<input type="text" name="cotizacion_nro" id="cotizacion_nro" required></label>
<label>Fecha<input type="date" name="fecha" id="fecha" required></label>
</div>
<label>Cliente<input type="text" name="cliente" id="cliente" list="clientes-sugeridos" autocomplete="off" required></label>
<datalist id="clientes-sugeridos"></datalist>
<label class="check"><input type="checkbox" name="incluye_igv" id="incluye_igv"> Incluye IGV (18%%)</label>
<table class="items" id="items-table">
<thead><tr><th>Item</th><th>Cantidad</th><th>P. Unitario</th><th>Costo</th><th></th></tr></thead>
<tbody id="items-body"></tbody>
</table>
<button type="button" id="add-item">Agregar item</button>
<p class="totals">Total: <span id="monto-total">S/ 0.00</span></p>
<button type="submit" id="guardar">Guardar</button>
</form>
</main>`, proformaID, title)
	return html.Page(title, b.String())
}

// ListPage renders the listing shell; rows arrive from the API.
func ListPage(navData nav.TopNavData) templ.Component {
	var b strings.Builder
	b.WriteString(nav.RenderTopNav(navData))
	b.WriteString(`<main class="page" id="proforma-list">
<h1>Proformas</h1>
<div class="list-controls">
<input type="search" id="buscar" placeholder="Buscar por cliente o numero...">
</div>
<table class="listing">
<thead><tr><th>Nro</th><th>Fecha</th><th>Cliente</th><th>Autor</th><th>Monto</th><th>Estado</th><th>Acciones</th></tr></thead>
<tbody id="proformas-body"></tbody>
</table>
<div class="pagination" id="paginacion"></div>
</main>`)
	return html.Page("Proformas", b.String())
}

// SuccessPage confirms a saved proforma and links its PDF.
func SuccessPage(navData nav.TopNavData, proformaID int64) templ.Component {
	var b strings.Builder
	b.WriteString(nav.RenderTopNav(navData))
	b.WriteString(`<main class="page success-card"><h1>Proforma guardada</h1>
<p>La proforma se guardo correctamente.</p>`)
	if proformaID > 0 {
		fmt.Fprintf(&b, `<p>
<a class="btn" href="/api/proforma/%d/pdf">Descargar PDF</a>
<a class="btn" href="/api/proforma/%d/preview" target="_blank">Ver PDF</a>
<a class="btn" href="/proforma/editar/%d">Seguir editando</a>
</p>`, proformaID, proformaID, proformaID)
	}
	b.WriteString(`<p><a href="/lista_proformas">Volver a la lista</a></p></main>`)
	return html.Page("Proforma guardada", b.String())
}
