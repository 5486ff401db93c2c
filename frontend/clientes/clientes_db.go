package clientes

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/ledesmaled1977/ledesma-led-app/infrastructure/sqlite"
	"github.com/ledesmaled1977/ledesma-led-app/models"
)

var (
	ErrNotFound       = errors.New("cliente no encontrado o sin permisos")
	ErrNombreRequired = errors.New("el nombre es obligatorio")
)

// ClienteInput carries the editable fields of a client record.
type ClienteInput struct {
	Nombre    string `json:"nombre"`
	RucDni    string `json:"ruc_dni"`
	Direccion string `json:"direccion"`
	Telefono  string `json:"telefono"`
	Email     string `json:"email"`
}

// ClienteRow is the JSON shape served to the client registry page and
// the editor autocomplete.
type ClienteRow struct {
	ID        int64  `json:"id"`
	Nombre    string `json:"nombre"`
	RucDni    string `json:"ruc_dni"`
	Direccion string `json:"direccion"`
	Telefono  string `json:"telefono"`
	Email     string `json:"email"`
}

func toRow(c models.Cliente) ClienteRow {
	return ClienteRow{
		ID:        c.ID,
		Nombre:    c.Nombre,
		RucDni:    c.RucDni,
		Direccion: c.Direccion,
		Telefono:  c.Telefono,
		Email:     c.Email,
	}
}

// ListClientes returns every client owned by userID, alphabetically.
func ListClientes(ctx context.Context, db *sqlite.DB, userID int64) ([]ClienteRow, error) {
	rows := make([]ClienteRow, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var records []models.Cliente
		if err := tx.NewSelect().
			Model(&records).
			Where("user_id = ?", userID).
			OrderExpr("nombre ASC").
			Scan(ctx); err != nil {
			return err
		}
		for _, c := range records {
			rows = append(rows, toRow(c))
		}
		return nil
	})
	return rows, err
}

// SearchClientes returns up to ten clients whose name starts with term.
func SearchClientes(ctx context.Context, db *sqlite.DB, userID int64, term string) ([]ClienteRow, error) {
	rows := make([]ClienteRow, 0)
	term = strings.TrimSpace(term)
	if term == "" {
		return rows, nil
	}
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var records []models.Cliente
		if err := tx.NewSelect().
			Model(&records).
			Where("user_id = ? AND nombre LIKE ?", userID, term+"%").
			OrderExpr("nombre ASC").
			Limit(10).
			Scan(ctx); err != nil {
			return err
		}
		for _, c := range records {
			rows = append(rows, toRow(c))
		}
		return nil
	})
	return rows, err
}

// CreateCliente inserts a new client for userID. Only the name is
// mandatory; the remaining contact fields may stay empty.
func CreateCliente(ctx context.Context, db *sqlite.DB, userID int64, in ClienteInput) (int64, error) {
	nombre := strings.TrimSpace(in.Nombre)
	if nombre == "" {
		return 0, ErrNombreRequired
	}
	now := time.Now()
	cliente := models.Cliente{
		UserID:    userID,
		Nombre:    nombre,
		RucDni:    strings.TrimSpace(in.RucDni),
		Direccion: strings.TrimSpace(in.Direccion),
		Telefono:  strings.TrimSpace(in.Telefono),
		Email:     strings.TrimSpace(in.Email),
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(&cliente).Exec(ctx)
		return err
	})
	if err != nil {
		return 0, err
	}
	return cliente.ID, nil
}

// UpdateCliente rewrites an owned client record. The update is scoped to
// id AND owner so a foreign id reads as not found.
func UpdateCliente(ctx context.Context, db *sqlite.DB, id, userID int64, in ClienteInput) error {
	nombre := strings.TrimSpace(in.Nombre)
	if nombre == "" {
		return ErrNombreRequired
	}
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model((*models.Cliente)(nil)).
			Set("nombre = ?", nombre).
			Set("ruc_dni = ?", strings.TrimSpace(in.RucDni)).
			Set("direccion = ?", strings.TrimSpace(in.Direccion)).
			Set("telefono = ?", strings.TrimSpace(in.Telefono)).
			Set("email = ?", strings.TrimSpace(in.Email)).
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

// DeleteCliente removes an owned client record.
func DeleteCliente(ctx context.Context, db *sqlite.DB, id, userID int64) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewDelete().
			Model((*models.Cliente)(nil)).
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
