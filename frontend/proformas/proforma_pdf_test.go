package proformas

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledesmaled1977/ledesma-led-app/models"
)

func TestProformaFilename(t *testing.T) {
	cases := []struct {
		nro  string
		want string
	}{
		{"15", "proforma_15.pdf"},
		{"COT-2026", "proforma_COT-2026.pdf"},
		{"12/07", "proforma_1207.pdf"},
		{"a b?c", "proforma_abc.pdf"},
	}
	for _, tc := range cases {
		if got := proformaFilename(tc.nro); got != tc.want {
			t.Fatalf("filename(%q) = %q, want %q", tc.nro, got, tc.want)
		}
	}
}

func TestRenderProformaPDF(t *testing.T) {
	proforma := models.Proforma{
		ID:            7,
		UserID:        1,
		CotizacionNro: "15",
		Fecha:         time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Cliente:       "Constructora Sol",
		IncluyeIGV:    true,
		MontoTotal:    decimal.NewFromFloat(217.50),
		Status:        models.StatusEnviada,
	}
	items := []models.ProformaItem{
		{ProformaID: 7, ItemDescripcion: "Panel LED 60x60", Cantidad: decimal.NewFromInt(10), PrecioUnitario: decimal.NewFromFloat(18.50)},
		{ProformaID: 7, ItemDescripcion: "Cinta LED 5m", Cantidad: decimal.NewFromFloat(2.5), PrecioUnitario: decimal.NewFromInt(13)},
	}

	out, err := renderProformaPDF(proforma, items)
	if err != nil {
		t.Fatalf("render pdf: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output is not a PDF, starts with %q", out[:min(8, len(out))])
	}
	if len(out) < 1000 {
		t.Fatalf("suspiciously small PDF: %d bytes", len(out))
	}
}

func TestRenderProformaPDF_WithoutIGV(t *testing.T) {
	proforma := models.Proforma{
		ID:            8,
		CotizacionNro: "16",
		Fecha:         time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
		Cliente:       "Cliente Directo",
		MontoTotal:    decimal.NewFromInt(135),
		Status:        models.StatusEnviada,
	}
	items := []models.ProformaItem{
		{ProformaID: 8, ItemDescripcion: "Reflector 100W", Cantidad: decimal.NewFromInt(3), PrecioUnitario: decimal.NewFromInt(45)},
	}

	out, err := renderProformaPDF(proforma, items)
	if err != nil {
		t.Fatalf("render pdf: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
}
