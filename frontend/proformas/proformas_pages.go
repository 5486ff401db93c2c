package proformas

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	sessioncontext "github.com/ledesmaled1977/ledesma-led-app/frontend/shared/context"
	"github.com/ledesmaled1977/ledesma-led-app/frontend/shared/nav"
	"github.com/ledesmaled1977/ledesma-led-app/infrastructure/sqlite"
)

func CrearProformaPageHandler(_ *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := EditorPage(nav.BuildTopNavData(session), 0).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render proforma editor", http.StatusInternalServerError)
		}
	}
}

func EditarProformaPageHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		id, err := idParam(r)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		// Resolve ownership up front so a bad link 404s instead of
		// rendering an editor that can never load.
		if _, err := GetDetail(r.Context(), db, id, session.UserID); err != nil {
			if errors.Is(err, ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			slog.Error("load proforma for editor failed", slog.Int64("id", id), slog.Any("err", err))
			http.Error(w, "Error interno del servidor.", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := EditorPage(nav.BuildTopNavData(session), id).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render proforma editor", http.StatusInternalServerError)
		}
	}
}

func ListaProformasPageHandler(_ *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := ListPage(nav.BuildTopNavData(session)).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render proforma list", http.StatusInternalServerError)
		}
	}
}

func ExitoPageHandler(_ *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		id, _ := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := SuccessPage(nav.BuildTopNavData(session), id).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render success page", http.StatusInternalServerError)
		}
	}
}

// DuplicarProformaHandler copies a proforma and sends the user to the
// editor of the new copy.
func DuplicarProformaHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		id, err := idParam(r)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		newID, err := Duplicate(r.Context(), db, id, session.UserID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "Proforma no encontrada o no tiene permiso.", http.StatusNotFound)
				return
			}
			slog.Error("duplicate proforma failed", slog.Int64("id", id), slog.Any("err", err))
			http.Error(w, "Error interno del servidor.", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, fmt.Sprintf("/proforma/editar/%d", newID), http.StatusSeeOther)
	}
}
