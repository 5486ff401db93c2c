package proformas

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"

	"github.com/uptrace/bun"

	"github.com/ledesmaled1977/ledesma-led-app/models"
)

func TestWriteProformasCSV(t *testing.T) {
	db := openProformasTestDB(t)
	seedUser(t, db, 1, "maria", models.RoleUser)

	in := basicInput()
	in.CotizacionNro = "3"
	if _, err := Create(context.Background(), db, 1, in); err != nil {
		t.Fatalf("create: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteProformasCSV(context.Background(), db, &buf, 1); err != nil {
		t.Fatalf("export: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	// Header plus one row per item.
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0][0] != "Nro Proforma" || records[0][8] != "Incluye IGV" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	first := records[1]
	if first[0] != "3" || first[2] != "Constructora Sol" || first[3] != "Enviada" {
		t.Fatalf("unexpected first row: %v", first)
	}
	if first[4] != "Panel LED 60x60" {
		t.Fatalf("expected item description, got %q", first[4])
	}
	if first[8] != "Si" {
		t.Fatalf("expected Incluye IGV Si, got %q", first[8])
	}
}

func TestWriteProformasCSV_ZeroItemProformaStillExports(t *testing.T) {
	db := openProformasTestDB(t)
	seedUser(t, db, 1, "maria", models.RoleUser)

	// An item-less proforma can only exist from legacy data; seed one raw.
	if err := db.WithWriteTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO proformas (user_id, cotizacion_nro, fecha, cliente, incluye_igv, monto_total, status, created_at, updated_at)
VALUES (1, '9', '2026-01-15', 'Cliente Sin Items', 0, 0, 'Enviada', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
		return err
	}); err != nil {
		t.Fatalf("seed proforma: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteProformasCSV(context.Background(), db, &buf, 1); err != nil {
		t.Fatalf("export: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header plus one row, got %d records", len(records))
	}
	row := records[1]
	if row[0] != "9" || row[2] != "Cliente Sin Items" {
		t.Fatalf("unexpected row: %v", row)
	}
	if row[4] != "" || row[5] != "" || row[6] != "" {
		t.Fatalf("expected blank item columns, got %v", row)
	}
	if row[8] != "No" {
		t.Fatalf("expected Incluye IGV No, got %q", row[8])
	}
}

func TestWriteProformasCSV_NoData(t *testing.T) {
	db := openProformasTestDB(t)
	seedUser(t, db, 1, "maria", models.RoleUser)

	var buf bytes.Buffer
	err := WriteProformasCSV(context.Background(), db, &buf, 1)
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output on NoData, got %q", buf.String())
	}
}
