package clientes

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	sessioncontext "github.com/ledesmaled1977/ledesma-led-app/frontend/shared/context"
	"github.com/ledesmaled1977/ledesma-led-app/frontend/shared/nav"
	"github.com/ledesmaled1977/ledesma-led-app/frontend/shared/webjson"
	"github.com/ledesmaled1977/ledesma-led-app/infrastructure/sqlite"
)

func ClientesPageHandler(_ *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := ClientesPage(nav.BuildTopNavData(session)).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render clientes page", http.StatusInternalServerError)
		}
	}
}

// ListClientesQueryHandler serves the caller's full client registry.
func ListClientesQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			webjson.Error(w, http.StatusUnauthorized, "No autorizado")
			return
		}
		rows, err := ListClientes(r.Context(), db, session.UserID)
		if err != nil {
			slog.Error("list clientes failed", slog.Any("err", err))
			webjson.Error(w, http.StatusInternalServerError, "Error al obtener los clientes")
			return
		}
		webjson.Write(w, http.StatusOK, rows)
	}
}

// SearchClientesQueryHandler powers the editor autocomplete. Errors
// degrade to an empty list so typing never breaks.
func SearchClientesQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			webjson.Write(w, http.StatusUnauthorized, []ClienteRow{})
			return
		}
		rows, err := SearchClientes(r.Context(), db, session.UserID, r.URL.Query().Get("term"))
		if err != nil {
			slog.Error("search clientes failed", slog.Any("err", err))
			webjson.Write(w, http.StatusInternalServerError, []ClienteRow{})
			return
		}
		webjson.Write(w, http.StatusOK, rows)
	}
}

// CreateClienteCommandHandler inserts a new client record.
func CreateClienteCommandHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			webjson.Error(w, http.StatusUnauthorized, "No autorizado")
			return
		}
		var input ClienteInput
		if err := webjson.Decode(r, &input); err != nil {
			webjson.Fail(w, http.StatusBadRequest, "El nombre es obligatorio")
			return
		}
		if _, err := CreateCliente(r.Context(), db, session.UserID, input); err != nil {
			if errors.Is(err, ErrNombreRequired) {
				webjson.Fail(w, http.StatusBadRequest, "El nombre es obligatorio")
				return
			}
			slog.Error("create cliente failed", slog.Any("err", err))
			webjson.Fail(w, http.StatusInternalServerError, "Error interno del servidor")
			return
		}
		webjson.Write(w, http.StatusOK, map[string]any{"success": true})
	}
}

// UpdateClienteCommandHandler rewrites an owned client record.
func UpdateClienteCommandHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			webjson.Error(w, http.StatusUnauthorized, "No autorizado")
			return
		}
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			webjson.Fail(w, http.StatusBadRequest, "id no valido")
			return
		}
		var input ClienteInput
		if err := webjson.Decode(r, &input); err != nil {
			webjson.Fail(w, http.StatusBadRequest, "El nombre es obligatorio")
			return
		}
		if err := UpdateCliente(r.Context(), db, id, session.UserID, input); err != nil {
			switch {
			case errors.Is(err, ErrNombreRequired):
				webjson.Fail(w, http.StatusBadRequest, "El nombre es obligatorio")
			case errors.Is(err, ErrNotFound):
				webjson.Fail(w, http.StatusNotFound, "Cliente no encontrado o sin permisos")
			default:
				slog.Error("update cliente failed", slog.Int64("id", id), slog.Any("err", err))
				webjson.Fail(w, http.StatusInternalServerError, "Error interno del servidor")
			}
			return
		}
		webjson.Write(w, http.StatusOK, map[string]any{"success": true})
	}
}

// DeleteClienteCommandHandler removes an owned client record.
func DeleteClienteCommandHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			webjson.Error(w, http.StatusUnauthorized, "No autorizado")
			return
		}
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			webjson.Fail(w, http.StatusBadRequest, "id no valido")
			return
		}
		if err := DeleteCliente(r.Context(), db, id, session.UserID); err != nil {
			if errors.Is(err, ErrNotFound) {
				webjson.Fail(w, http.StatusNotFound, "Cliente no encontrado o sin permisos")
				return
			}
			slog.Error("delete cliente failed", slog.Int64("id", id), slog.Any("err", err))
			webjson.Fail(w, http.StatusInternalServerError, "Error interno del servidor")
			return
		}
		webjson.Write(w, http.StatusOK, map[string]any{"success": true})
	}
}
