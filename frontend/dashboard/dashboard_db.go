package dashboard

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/ledesmaled1977/ledesma-led-app/infrastructure/sqlite"
)

// RecentProforma is one row of the dashboard's latest-quotations table.
type RecentProforma struct {
	ID            int64   `bun:"id" json:"id"`
	CotizacionNro string  `bun:"cotizacion_nro" json:"cotizacion_nro"`
	Fecha         string  `bun:"fecha" json:"fecha"`
	Cliente       string  `bun:"cliente" json:"cliente"`
	MontoTotal    float64 `bun:"monto_total" json:"monto_total"`
	IncluyeIGV    bool    `bun:"incluye_igv" json:"incluye_igv"`
	Status        string  `bun:"status" json:"status"`
}

// DashboardData feeds the home page render.
type DashboardData struct {
	TotalProformas  int
	TotalMonto      float64
	UltimasProforma []RecentProforma
}

// MonthlyStats is the chart payload: one label ("2026-03") and one count
// per month with at least one proforma in the trailing year.
type MonthlyStats struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

// LoadDashboardData gathers the caller's headline counts and their
// proformas newest-first for the home page.
func LoadDashboardData(ctx context.Context, db *sqlite.DB, userID int64) (DashboardData, error) {
	data := DashboardData{UltimasProforma: make([]RecentProforma, 0)}
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if err := tx.NewRaw(
			"SELECT COUNT(id) FROM proformas WHERE user_id = ?", userID,
		).Scan(ctx, &data.TotalProformas); err != nil {
			return err
		}
		if err := tx.NewRaw(
			"SELECT CAST(COALESCE(SUM(monto_total), 0) AS REAL) FROM proformas WHERE user_id = ?", userID,
		).Scan(ctx, &data.TotalMonto); err != nil {
			return err
		}
		return tx.NewRaw(`
SELECT id, cotizacion_nro,
       COALESCE(strftime('%d/%m/%Y', fecha), '') AS fecha,
       cliente, CAST(monto_total AS REAL) AS monto_total, incluye_igv, status
FROM proformas
WHERE user_id = ?
ORDER BY id DESC`, userID).Scan(ctx, &data.UltimasProforma)
	})
	return data, err
}

// LoadMonthlyStats counts the caller's proformas per month over the
// trailing year, oldest month first.
func LoadMonthlyStats(ctx context.Context, db *sqlite.DB, userID int64) (MonthlyStats, error) {
	stats := MonthlyStats{Labels: make([]string, 0), Data: make([]int, 0)}
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var rows []struct {
			Mes      string `bun:"mes"`
			Cantidad int    `bun:"cantidad"`
		}
		if err := tx.NewRaw(`
SELECT strftime('%Y-%m', fecha) AS mes, COUNT(id) AS cantidad
FROM proformas
WHERE user_id = ? AND fecha >= date('now', '-1 year')
GROUP BY mes
ORDER BY mes ASC`, userID).Scan(ctx, &rows); err != nil {
			return err
		}
		for _, row := range rows {
			stats.Labels = append(stats.Labels, row.Mes)
			stats.Data = append(stats.Data, row.Cantidad)
		}
		return nil
	})
	return stats, err
}
