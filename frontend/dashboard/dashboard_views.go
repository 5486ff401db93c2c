package dashboard

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"github.com/ledesmaled1977/ledesma-led-app/frontend/shared/html"
	"github.com/ledesmaled1977/ledesma-led-app/frontend/shared/nav"
)

// DashboardPage renders the home page: headline cards, the monthly chart
// canvas (filled by app.js from /api/dashboard_stats) and the latest
// quotations table.
func DashboardPage(navData nav.TopNavData, data DashboardData) templ.Component {
	var b strings.Builder
	b.WriteString(nav.RenderTopNav(navData))
	b.WriteString(`<main class="page" id="dashboard">` + "\n")
	fmt.Fprintf(&b, `<div class="cards">
<div class="card"><span class="card-label">Proformas</span><span class="card-value">%d</span></div>
<div class="card"><span class="card-label">Monto total</span><span class="card-value">S/ %.2f</span></div>
</div>
`, data.TotalProformas, data.TotalMonto)
	b.WriteString(`<section class="chart"><h2>Proformas por mes</h2><canvas id="stats-chart" width="600" height="220"></canvas></section>` + "\n")
	b.WriteString(`<section><h2>Ultimas proformas</h2>
<table class="listing">
<thead><tr><th>Nro</th><th>Fecha</th><th>Cliente</th><th>Monto</th><th>Estado</th><th></th></tr></thead>
<tbody>
`)
	for _, p := range data.UltimasProforma {
		fmt.Fprintf(&b, `<tr><td>%s</td><td>%s</td><td>%s</td><td>S/ %.2f</td><td><span class="status status-%s">%s</span></td><td><a href="/proforma/editar/%d">Editar</a> <a href="/api/proforma/%d/pdf">PDF</a></td></tr>
`,
			templ.EscapeString(p.CotizacionNro),
			templ.EscapeString(p.Fecha),
			templ.EscapeString(p.Cliente),
			p.MontoTotal,
			strings.ToLower(p.Status),
			templ.EscapeString(p.Status),
			p.ID, p.ID)
	}
	b.WriteString(`</tbody></table></section></main>`)
	return html.Page("Ledesma LED", b.String())
}
