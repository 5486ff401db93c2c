package proformas

import (
	"context"
	"encoding/csv"
	"io"

	"github.com/uptrace/bun"

	"github.com/ledesmaled1977/ledesma-led-app/infrastructure/sqlite"
)

// WriteProformasCSV flattens every proforma the caller owns into one row
// per item. Proformas without items still produce a single row with the
// item columns blank (left-join semantics). ErrNoData when the caller
// owns nothing.
func WriteProformasCSV(ctx context.Context, db *sqlite.DB, w io.Writer, userID int64) error {
	type row struct {
		CotizacionNro   string `bun:"cotizacion_nro"`
		Fecha           string `bun:"fecha"`
		Cliente         string `bun:"cliente"`
		Status          string `bun:"status"`
		ItemDescripcion string `bun:"item_descripcion"`
		Cantidad        string `bun:"cantidad"`
		PrecioUnitario  string `bun:"precio_unitario"`
		MontoTotal      string `bun:"monto_total"`
		IncluyeIGV      bool   `bun:"incluye_igv"`
	}

	rows := make([]row, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`
SELECT p.cotizacion_nro,
       COALESCE(strftime('%Y-%m-%d', p.fecha), '') AS fecha,
       p.cliente, p.status,
       COALESCE(pi.item_descripcion, '') AS item_descripcion,
       COALESCE(CAST(pi.cantidad AS TEXT), '') AS cantidad,
       COALESCE(CAST(pi.precio_unitario AS TEXT), '') AS precio_unitario,
       CAST(p.monto_total AS TEXT) AS monto_total,
       p.incluye_igv
FROM proformas p
LEFT JOIN proforma_items pi ON pi.proforma_id = p.id
WHERE p.user_id = ?
ORDER BY p.id DESC, pi.id ASC`, userID).Scan(ctx, &rows)
	})
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return ErrNoData
	}

	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{"Nro Proforma", "Fecha", "Cliente", "Estado", "Item", "Cantidad", "Precio Unitario", "Monto Total Proforma", "Incluye IGV"}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		igv := "No"
		if r.IncluyeIGV {
			igv = "Si"
		}
		record := []string{
			r.CotizacionNro,
			r.Fecha,
			r.Cliente,
			r.Status,
			r.ItemDescripcion,
			r.Cantidad,
			r.PrecioUnitario,
			r.MontoTotal,
			igv,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	return writer.Error()
}
