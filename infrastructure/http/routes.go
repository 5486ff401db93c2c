package http

import (
	"github.com/go-chi/chi/v5"

	"github.com/ledesmaled1977/ledesma-led-app/frontend/clientes"
	"github.com/ledesmaled1977/ledesma-led-app/frontend/dashboard"
	"github.com/ledesmaled1977/ledesma-led-app/frontend/login"
	"github.com/ledesmaled1977/ledesma-led-app/frontend/proformas"
)

// RegisterLoginRoutes registers the routes reachable without a session.
func (s *Server) RegisterLoginRoutes() {
	s.router.Get("/login", login.GetLoginScreenHandler)
	s.router.Post("/login", login.CreateLoginHandler(s.DB, s.SessionCache, s.UserCache))
	s.router.Get("/register", login.GetRegisterScreenHandler)
	s.router.Post("/register", login.CreateUserHandler(s.DB))
	s.router.Get("/logout", login.LogoutHandler(s.DB, s.SessionCache))
}

// RegisterFrontendRoutes registers the authenticated server-rendered pages.
func (s *Server) RegisterFrontendRoutes(r chi.Router) chi.Router {
	r.Get("/", dashboard.DashboardPageQueryHandler(s.DB))
	r.Get("/crear_proforma", proformas.CrearProformaPageHandler(s.DB))
	r.Get("/lista_proformas", proformas.ListaProformasPageHandler(s.DB))
	r.Get("/exito", proformas.ExitoPageHandler(s.DB))
	r.Get("/clientes", clientes.ClientesPageHandler(s.DB))
	r.Get("/proforma/editar/{id}", proformas.EditarProformaPageHandler(s.DB))
	r.Get("/proforma/duplicar/{id}", proformas.DuplicarProformaHandler(s.DB))
	return r
}

// RegisterAPIRoutes registers the JSON API consumed by app.js.
func (s *Server) RegisterAPIRoutes(r chi.Router) chi.Router {
	r.Route("/api", func(r chi.Router) {
		r.Route("/proformas", func(r chi.Router) {
			r.Post("/", proformas.CreateProformaCommandHandler(s.DB))
			r.Get("/", proformas.ListProformasQueryHandler(s.DB))
			r.Get("/export", proformas.ExportCSVHandler(s.DB))
			r.Get("/next_number", proformas.NextNumberQueryHandler(s.DB))
			r.Get("/{id}", proformas.GetProformaQueryHandler(s.DB))
			r.Put("/{id}", proformas.UpdateProformaCommandHandler(s.DB))
			r.Delete("/{id}", proformas.DeleteProformaCommandHandler(s.DB))
			r.Put("/{id}/status", proformas.UpdateStatusCommandHandler(s.DB))
		})

		r.Get("/proforma/{id}/pdf", proformas.ProformaPDFHandler(s.DB))
		r.Get("/proforma/{id}/preview", proformas.ProformaPreviewHandler(s.DB))

		r.Route("/clientes", func(r chi.Router) {
			r.Get("/", clientes.ListClientesQueryHandler(s.DB))
			r.Post("/", clientes.CreateClienteCommandHandler(s.DB))
			r.Get("/search", clientes.SearchClientesQueryHandler(s.DB))
			r.Put("/{id}", clientes.UpdateClienteCommandHandler(s.DB))
			r.Delete("/{id}", clientes.DeleteClienteCommandHandler(s.DB))
		})

		r.Get("/dashboard_stats", dashboard.StatsQueryHandler(s.DB))
	})
	return r
}
