package proformas

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"

	"github.com/ledesmaled1977/ledesma-led-app/infrastructure/sqlite"
	"github.com/ledesmaled1977/ledesma-led-app/models"
)

var (
	ErrNotFound         = errors.New("proforma no encontrada o sin permisos")
	ErrPermissionDenied = errors.New("permiso denegado")
	ErrNoItems          = errors.New("la proforma debe tener al menos un item")
	ErrInvalidItem      = errors.New("item con cantidad o precio no valido")
	ErrInvalidFecha     = errors.New("fecha no valida")
	ErrInvalidStatus    = errors.New("estado no valido")
	ErrNoData           = errors.New("no hay datos para exportar")
)

// IsValidationError reports whether err is a malformed-input error
// rather than an ownership or storage failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrNoItems) || errors.Is(err, ErrInvalidItem) ||
		errors.Is(err, ErrInvalidFecha) || errors.Is(err, ErrInvalidStatus)
}

const fechaLayout = "2006-01-02"

// buildItems validates the posted lines and returns them as typed rows
// together with the recomputed total.
func buildItems(inputs []ItemInput) ([]models.ProformaItem, decimal.Decimal, error) {
	if len(inputs) == 0 {
		return nil, decimal.Zero, ErrNoItems
	}
	items := make([]models.ProformaItem, 0, len(inputs))
	total := decimal.Zero
	for _, in := range inputs {
		desc := strings.TrimSpace(in.Item)
		if desc == "" {
			return nil, decimal.Zero, ErrInvalidItem
		}
		cantidad := decimal.NewFromFloat(in.Cantidad)
		precio := decimal.NewFromFloat(in.PrecioUnitario)
		if cantidad.Sign() <= 0 || precio.Sign() < 0 {
			return nil, decimal.Zero, ErrInvalidItem
		}
		items = append(items, models.ProformaItem{
			ItemDescripcion: desc,
			Cantidad:        cantidad,
			PrecioUnitario:  precio,
		})
		total = total.Add(cantidad.Mul(precio))
	}
	return items, total, nil
}

func parseFecha(raw string) (time.Time, error) {
	fecha, err := time.Parse(fechaLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, ErrInvalidFecha
	}
	return fecha, nil
}

// Create validates the payload, recomputes the total and persists the
// proforma with its items in one write transaction.
func Create(ctx context.Context, db *sqlite.DB, userID int64, in ProformaInput) (int64, error) {
	items, total, err := buildItems(in.Items)
	if err != nil {
		return 0, err
	}
	fecha, err := parseFecha(in.Fecha)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	proforma := models.Proforma{
		UserID:        userID,
		CotizacionNro: strings.TrimSpace(in.CotizacionNro),
		Fecha:         fecha,
		Cliente:       in.Cliente,
		IncluyeIGV:    in.IncluyeIGV,
		MontoTotal:    total,
		Status:        models.StatusEnviada,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(&proforma).Exec(ctx); err != nil {
			return err
		}
		return insertItems(ctx, tx, proforma.ID, items)
	})
	if err != nil {
		return 0, err
	}
	return proforma.ID, nil
}

// Update requires ownership, recomputes the total and replaces the full
// item set. The replacement is delete-all-then-insert inside the same
// transaction so a partial item set is never observable.
func Update(ctx context.Context, db *sqlite.DB, id, userID int64, in ProformaInput) error {
	items, total, err := buildItems(in.Items)
	if err != nil {
		return err
	}
	fecha, err := parseFecha(in.Fecha)
	if err != nil {
		return err
	}

	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if err := requireOwner(ctx, tx, id, userID); err != nil {
			return err
		}
		_, err := tx.NewUpdate().
			Model((*models.Proforma)(nil)).
			Set("cotizacion_nro = ?", strings.TrimSpace(in.CotizacionNro)).
			Set("fecha = ?", fecha).
			Set("cliente = ?", in.Cliente).
			Set("incluye_igv = ?", in.IncluyeIGV).
			Set("monto_total = ?", total).
			Set("updated_at = ?", time.Now()).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return err
		}
		if _, err := tx.NewDelete().
			Model((*models.ProformaItem)(nil)).
			Where("proforma_id = ?", id).
			Exec(ctx); err != nil {
			return err
		}
		return insertItems(ctx, tx, id, items)
	})
}

// Duplicate copies an owned proforma under the caller's next quotation
// number and returns the new id. The copy always starts Enviada and the
// client name is suffixed to mark it.
func Duplicate(ctx context.Context, db *sqlite.DB, id, userID int64) (int64, error) {
	var newID int64
	err := db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var src models.Proforma
		err := tx.NewSelect().
			Model(&src).
			Where("p.id = ? AND p.user_id = ?", id, userID).
			Limit(1).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}

		var items []models.ProformaItem
		if err := tx.NewSelect().
			Model(&items).
			Where("proforma_id = ?", id).
			OrderExpr("id ASC").
			Scan(ctx); err != nil {
			return err
		}

		next, err := nextNumberTx(ctx, tx, userID)
		if err != nil {
			return err
		}

		now := time.Now()
		copyRow := models.Proforma{
			UserID:        userID,
			CotizacionNro: strconv.FormatInt(next, 10),
			Fecha:         now,
			Cliente:       src.Cliente + " (Copia)",
			IncluyeIGV:    src.IncluyeIGV,
			MontoTotal:    src.MontoTotal,
			Status:        models.StatusEnviada,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if _, err := tx.NewInsert().Model(&copyRow).Exec(ctx); err != nil {
			return err
		}

		copies := make([]models.ProformaItem, 0, len(items))
		for _, item := range items {
			copies = append(copies, models.ProformaItem{
				ItemDescripcion: item.ItemDescripcion,
				Cantidad:        item.Cantidad,
				PrecioUnitario:  item.PrecioUnitario,
			})
		}
		if err := insertItems(ctx, tx, copyRow.ID, copies); err != nil {
			return err
		}
		newID = copyRow.ID
		return nil
	})
	return newID, err
}

// Delete removes an owned proforma; items go with it via FK cascade.
func Delete(ctx context.Context, db *sqlite.DB, id, userID int64) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if err := requireOwner(ctx, tx, id, userID); err != nil {
			return err
		}
		_, err := tx.NewDelete().
			Model((*models.Proforma)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		return err
	})
}

// SetStatus overwrites the status of an owned proforma. The update is
// scoped to id AND owner; zero affected rows means not-found-or-forbidden.
func SetStatus(ctx context.Context, db *sqlite.DB, id, userID int64, status string) error {
	if !models.ValidStatus(status) {
		return ErrInvalidStatus
	}
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model((*models.Proforma)(nil)).
			Set("status = ?", status).
			Set("updated_at = ?", time.Now()).
			Where("id = ? AND user_id = ?", id, userID).
			Exec(ctx)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// GetDetail loads one owned proforma with its items for the editor.
func GetDetail(ctx context.Context, db *sqlite.DB, id, userID int64) (ProformaDetail, error) {
	var detail ProformaDetail
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var proforma models.Proforma
		err := tx.NewSelect().
			Model(&proforma).
			Where("p.id = ? AND p.user_id = ?", id, userID).
			Limit(1).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}

		var items []models.ProformaItem
		if err := tx.NewSelect().
			Model(&items).
			Where("proforma_id = ?", id).
			OrderExpr("id ASC").
			Scan(ctx); err != nil {
			return err
		}

		detail = ProformaDetail{
			ID:            proforma.ID,
			UserID:        proforma.UserID,
			CotizacionNro: proforma.CotizacionNro,
			Fecha:         proforma.Fecha.Format(fechaLayout),
			Cliente:       proforma.Cliente,
			IncluyeIGV:    proforma.IncluyeIGV,
			MontoTotal:    proforma.MontoTotal.InexactFloat64(),
			Status:        proforma.Status,
			Items:         make([]ItemInput, 0, len(items)),
		}
		for _, item := range items {
			detail.Items = append(detail.Items, ItemInput{
				Item:           item.ItemDescripcion,
				Cantidad:       item.Cantidad.InexactFloat64(),
				PrecioUnitario: item.PrecioUnitario.InexactFloat64(),
			})
		}
		return nil
	})
	return detail, err
}

// NextNumber returns 1 + the caller's highest numeric quotation number.
// Non-numeric numbers coerce to 0, matching how existing data behaves.
func NextNumber(ctx context.Context, db *sqlite.DB, userID int64) (int64, error) {
	var next int64
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var err error
		next, err = nextNumberTx(ctx, tx, userID)
		return err
	})
	return next, err
}

func nextNumberTx(ctx context.Context, tx bun.Tx, userID int64) (int64, error) {
	var maxNum int64
	err := tx.NewRaw(`
SELECT COALESCE(MAX(CAST(cotizacion_nro AS INTEGER)), 0)
FROM proformas
WHERE user_id = ?`, userID).Scan(ctx, &maxNum)
	if err != nil {
		return 0, err
	}
	return maxNum + 1, nil
}

// List returns one page of proformas. Admins see every row; other users
// only their own. The optional search term matches the client name or
// the quotation number, case-insensitively.
func List(ctx context.Context, db *sqlite.DB, userID int64, isAdmin bool, page int, search string) (ListResult, error) {
	if page < 1 {
		page = 1
	}
	result := ListResult{
		Proformas:  make([]ProformaRow, 0, perPage),
		Pagination: Pagination{Page: page, PerPage: perPage},
	}

	where := make([]string, 0, 2)
	args := make([]any, 0, 3)
	if !isAdmin {
		where = append(where, "p.user_id = ?")
		args = append(args, userID)
	}
	if search = strings.TrimSpace(search); search != "" {
		where = append(where, "(p.cliente LIKE ? OR p.cotizacion_nro LIKE ?)")
		like := "%" + search + "%"
		args = append(args, like, like)
	}
	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var total int
		if err := tx.NewRaw(
			"SELECT COUNT(p.id) FROM proformas p"+whereSQL, args...,
		).Scan(ctx, &total); err != nil {
			return err
		}
		result.Pagination.TotalResults = total
		result.Pagination.TotalPages = (total + perPage - 1) / perPage

		var rows []struct {
			ID            int64   `bun:"id"`
			UserID        int64   `bun:"user_id"`
			CotizacionNro string  `bun:"cotizacion_nro"`
			Fecha         string  `bun:"fecha"`
			Cliente       string  `bun:"cliente"`
			IncluyeIGV    bool    `bun:"incluye_igv"`
			MontoTotal    float64 `bun:"monto_total"`
			Status        string  `bun:"status"`
			Author        string  `bun:"author"`
		}
		pageArgs := append(append([]any{}, args...), perPage, (page-1)*perPage)
		if err := tx.NewRaw(`
SELECT p.id, p.user_id, p.cotizacion_nro,
       COALESCE(strftime('%d/%m/%Y', p.fecha), '') AS fecha,
       p.cliente, p.incluye_igv, CAST(p.monto_total AS REAL) AS monto_total, p.status,
       COALESCE(u.fullname, '') AS author
FROM proformas p
LEFT JOIN users u ON u.id = p.user_id`+whereSQL+`
ORDER BY p.id DESC
LIMIT ? OFFSET ?`, pageArgs...).Scan(ctx, &rows); err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}

		ids := make([]int64, 0, len(rows))
		for _, row := range rows {
			ids = append(ids, row.ID)
		}
		var itemRows []struct {
			ProformaID      int64   `bun:"proforma_id"`
			ItemDescripcion string  `bun:"item_descripcion"`
			Cantidad        float64 `bun:"cantidad"`
			PrecioUnitario  float64 `bun:"precio_unitario"`
		}
		if err := tx.NewSelect().
			TableExpr("proforma_items").
			ColumnExpr("proforma_id, item_descripcion").
			ColumnExpr("CAST(cantidad AS REAL) AS cantidad").
			ColumnExpr("CAST(precio_unitario AS REAL) AS precio_unitario").
			Where("proforma_id IN (?)", bun.In(ids)).
			OrderExpr("proforma_id ASC, id ASC").
			Scan(ctx, &itemRows); err != nil {
			return err
		}
		itemsByProforma := make(map[int64][]ItemRow, len(rows))
		for _, item := range itemRows {
			itemsByProforma[item.ProformaID] = append(itemsByProforma[item.ProformaID], ItemRow{
				ItemDescripcion: item.ItemDescripcion,
				Cantidad:        item.Cantidad,
				PrecioUnitario:  item.PrecioUnitario,
			})
		}

		for _, row := range rows {
			author := row.Author
			if author == "" {
				author = "Usuario Eliminado"
			}
			items := itemsByProforma[row.ID]
			if items == nil {
				items = make([]ItemRow, 0)
			}
			result.Proformas = append(result.Proformas, ProformaRow{
				ID:            row.ID,
				UserID:        row.UserID,
				CotizacionNro: row.CotizacionNro,
				Fecha:         row.Fecha,
				Cliente:       row.Cliente,
				IncluyeIGV:    row.IncluyeIGV,
				MontoTotal:    row.MontoTotal,
				Status:        row.Status,
				Author:        author,
				Items:         items,
			})
		}
		return nil
	})
	return result, err
}

// fetchOwned loads a proforma with its items for document rendering.
func fetchOwned(ctx context.Context, db *sqlite.DB, id, userID int64) (models.Proforma, []models.ProformaItem, error) {
	var proforma models.Proforma
	var items []models.ProformaItem
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().
			Model(&proforma).
			Where("p.id = ? AND p.user_id = ?", id, userID).
			Limit(1).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
		return tx.NewSelect().
			Model(&items).
			Where("proforma_id = ?", id).
			OrderExpr("id ASC").
			Scan(ctx)
	})
	return proforma, items, err
}

func requireOwner(ctx context.Context, tx bun.Tx, id, userID int64) error {
	var ownerID int64
	err := tx.NewRaw(`SELECT user_id FROM proformas WHERE id = ?`, id).Scan(ctx, &ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPermissionDenied
		}
		return err
	}
	if ownerID != userID {
		return ErrPermissionDenied
	}
	return nil
}

func insertItems(ctx context.Context, tx bun.Tx, proformaID int64, items []models.ProformaItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].ProformaID = proformaID
	}
	_, err := tx.NewInsert().Model(&items).Exec(ctx)
	return err
}
