package proformas

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	sessioncontext "github.com/ledesmaled1977/ledesma-led-app/frontend/shared/context"
	"github.com/ledesmaled1977/ledesma-led-app/frontend/shared/webjson"
	"github.com/ledesmaled1977/ledesma-led-app/infrastructure/sqlite"
	"github.com/ledesmaled1977/ledesma-led-app/models"
)

func sessionOr401(w http.ResponseWriter, r *http.Request) (models.Session, bool) {
	session, ok := sessioncontext.GetSessionFromContext(r.Context())
	if !ok {
		webjson.Error(w, http.StatusUnauthorized, "No autorizado")
	}
	return session, ok
}

func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// CreateProformaCommandHandler persists a new quotation from the editor.
func CreateProformaCommandHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionOr401(w, r)
		if !ok {
			return
		}
		var input ProformaInput
		if err := webjson.Decode(r, &input); err != nil {
			webjson.Fail(w, http.StatusBadRequest, "solicitud no valida")
			return
		}
		id, err := Create(r.Context(), db, session.UserID, input)
		if err != nil {
			if IsValidationError(err) {
				webjson.Fail(w, http.StatusBadRequest, err.Error())
				return
			}
			slog.Error("create proforma failed", slog.Any("err", err))
			webjson.Fail(w, http.StatusInternalServerError, "Error interno del servidor.")
			return
		}
		webjson.Write(w, http.StatusOK, map[string]any{"success": true, "proforma_id": id})
	}
}

// ListProformasQueryHandler serves the paginated, searchable listing.
func ListProformasQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionOr401(w, r)
		if !ok {
			return
		}
		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil || page < 1 {
			page = 1
		}
		search := r.URL.Query().Get("search")

		result, err := List(r.Context(), db, session.UserID, session.IsAdmin(), page, search)
		if err != nil {
			slog.Error("list proformas failed", slog.Any("err", err))
			webjson.Error(w, http.StatusInternalServerError, "Error al obtener las proformas")
			return
		}
		webjson.Write(w, http.StatusOK, result)
	}
}

// GetProformaQueryHandler returns one proforma for the editor.
func GetProformaQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionOr401(w, r)
		if !ok {
			return
		}
		id, err := idParam(r)
		if err != nil {
			webjson.Error(w, http.StatusBadRequest, "id no valido")
			return
		}
		detail, err := GetDetail(r.Context(), db, id, session.UserID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				webjson.Error(w, http.StatusNotFound, "Proforma no encontrada o sin permisos")
				return
			}
			slog.Error("get proforma failed", slog.Int64("id", id), slog.Any("err", err))
			webjson.Error(w, http.StatusInternalServerError, "Error al obtener los datos de la proforma")
			return
		}
		webjson.Write(w, http.StatusOK, detail)
	}
}

// UpdateProformaCommandHandler replaces an owned proforma and its items.
func UpdateProformaCommandHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionOr401(w, r)
		if !ok {
			return
		}
		id, err := idParam(r)
		if err != nil {
			webjson.Fail(w, http.StatusBadRequest, "id no valido")
			return
		}
		var input ProformaInput
		if err := webjson.Decode(r, &input); err != nil {
			webjson.Fail(w, http.StatusBadRequest, "solicitud no valida")
			return
		}
		if err := Update(r.Context(), db, id, session.UserID, input); err != nil {
			switch {
			case errors.Is(err, ErrPermissionDenied):
				webjson.Fail(w, http.StatusForbidden, "Permiso denegado")
			case IsValidationError(err):
				webjson.Fail(w, http.StatusBadRequest, err.Error())
			default:
				slog.Error("update proforma failed", slog.Int64("id", id), slog.Any("err", err))
				webjson.Fail(w, http.StatusInternalServerError, "Error interno del servidor al actualizar.")
			}
			return
		}
		webjson.Write(w, http.StatusOK, map[string]any{"success": true, "proforma_id": id})
	}
}

// DeleteProformaCommandHandler removes an owned proforma and its items.
func DeleteProformaCommandHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionOr401(w, r)
		if !ok {
			return
		}
		id, err := idParam(r)
		if err != nil {
			webjson.Fail(w, http.StatusBadRequest, "id no valido")
			return
		}
		if err := Delete(r.Context(), db, id, session.UserID); err != nil {
			if errors.Is(err, ErrPermissionDenied) {
				webjson.Fail(w, http.StatusForbidden, "No tiene permiso para eliminar esta proforma.")
				return
			}
			slog.Error("delete proforma failed", slog.Int64("id", id), slog.Any("err", err))
			webjson.Fail(w, http.StatusInternalServerError, "Error interno del servidor.")
			return
		}
		webjson.Write(w, http.StatusOK, map[string]any{"success": true})
	}
}

// UpdateStatusCommandHandler applies a status transition.
func UpdateStatusCommandHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionOr401(w, r)
		if !ok {
			return
		}
		id, err := idParam(r)
		if err != nil {
			webjson.Fail(w, http.StatusBadRequest, "id no valido")
			return
		}
		var input StatusInput
		if err := webjson.Decode(r, &input); err != nil {
			webjson.Fail(w, http.StatusBadRequest, "solicitud no valida")
			return
		}
		if err := SetStatus(r.Context(), db, id, session.UserID, input.Status); err != nil {
			switch {
			case errors.Is(err, ErrInvalidStatus):
				webjson.Fail(w, http.StatusBadRequest, "Estado no valido")
			case errors.Is(err, ErrNotFound):
				webjson.Fail(w, http.StatusNotFound, "Proforma no encontrada o sin permisos")
			default:
				slog.Error("update status failed", slog.Int64("id", id), slog.Any("err", err))
				webjson.Fail(w, http.StatusInternalServerError, "Error interno del servidor")
			}
			return
		}
		webjson.Write(w, http.StatusOK, map[string]any{"success": true, "new_status": input.Status})
	}
}

// NextNumberQueryHandler suggests the next quotation number.
func NextNumberQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionOr401(w, r)
		if !ok {
			return
		}
		next, err := NextNumber(r.Context(), db, session.UserID)
		if err != nil {
			slog.Error("next number failed", slog.Any("err", err))
			webjson.Error(w, http.StatusInternalServerError, "Error al obtener el numero de proforma")
			return
		}
		webjson.Write(w, http.StatusOK, map[string]int64{"next_number": next})
	}
}

// ExportCSVHandler streams every owned proforma flattened per item.
func ExportCSVHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionOr401(w, r)
		if !ok {
			return
		}
		// Buffer first so NoData can still produce a 404.
		var buf bytes.Buffer
		if err := WriteProformasCSV(r.Context(), db, &buf, session.UserID); err != nil {
			if errors.Is(err, ErrNoData) {
				http.Error(w, "No hay datos para exportar.", http.StatusNotFound)
				return
			}
			slog.Error("export proformas failed", slog.Any("err", err))
			http.Error(w, "Error al generar el archivo de exportacion.", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename=reporte_proformas.csv")
		_, _ = w.Write(buf.Bytes())
	}
}

// ProformaPDFHandler renders the PDF for download.
func ProformaPDFHandler(db *sqlite.DB) http.HandlerFunc {
	return documentHandler(db, "attachment")
}

// ProformaPreviewHandler renders the same PDF inline for the browser.
func ProformaPreviewHandler(db *sqlite.DB) http.HandlerFunc {
	return documentHandler(db, "inline")
}

func documentHandler(db *sqlite.DB, disposition string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionOr401(w, r)
		if !ok {
			return
		}
		id, err := idParam(r)
		if err != nil {
			http.Error(w, "id no valido", http.StatusBadRequest)
			return
		}
		proforma, items, err := fetchOwned(r.Context(), db, id, session.UserID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "Proforma no encontrada o no tiene permiso.", http.StatusNotFound)
				return
			}
			slog.Error("load proforma for pdf failed", slog.Int64("id", id), slog.Any("err", err))
			http.Error(w, "Error interno al generar el archivo PDF.", http.StatusInternalServerError)
			return
		}
		pdfBytes, err := renderProformaPDF(proforma, items)
		if err != nil {
			slog.Error("render proforma pdf failed", slog.Int64("id", id), slog.Any("err", err))
			http.Error(w, "Error interno al generar el archivo PDF.", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", disposition+"; filename="+proformaFilename(proforma.CotizacionNro))
		_, _ = w.Write(pdfBytes)
	}
}
