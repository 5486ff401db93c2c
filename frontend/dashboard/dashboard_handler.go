package dashboard

import (
	"log/slog"
	"net/http"

	sessioncontext "github.com/ledesmaled1977/ledesma-led-app/frontend/shared/context"
	"github.com/ledesmaled1977/ledesma-led-app/frontend/shared/nav"
	"github.com/ledesmaled1977/ledesma-led-app/frontend/shared/webjson"
	"github.com/ledesmaled1977/ledesma-led-app/infrastructure/sqlite"
)

// DashboardPageQueryHandler renders the home page with headline totals
// and the latest quotations.
func DashboardPageQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		data, err := LoadDashboardData(r.Context(), db, session.UserID)
		if err != nil {
			slog.Error("load dashboard failed", slog.Any("err", err))
			http.Error(w, "Error interno del servidor.", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := DashboardPage(nav.BuildTopNavData(session), data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
		}
	}
}

// StatsQueryHandler serves the monthly chart series.
func StatsQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			webjson.Error(w, http.StatusUnauthorized, "No autorizado")
			return
		}
		stats, err := LoadMonthlyStats(r.Context(), db, session.UserID)
		if err != nil {
			slog.Error("load monthly stats failed", slog.Any("err", err))
			webjson.Error(w, http.StatusInternalServerError, "Error al obtener estadisticas")
			return
		}
		webjson.Write(w, http.StatusOK, stats)
	}
}
