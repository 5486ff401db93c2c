package proformas

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"regexp"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/ledesmaled1977/ledesma-led-app/models"
)

// igvRate is the fixed 18% sales tax applied when incluye_igv is set.
var igvRate = decimal.NewFromFloat(0.18)

var filenamePattern = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// proformaFilename derives the download name from the quotation number,
// stripped to a filesystem-safe subset.
func proformaFilename(cotizacionNro string) string {
	return filenamePattern.ReplaceAllString(fmt.Sprintf("proforma_%s.pdf", cotizacionNro), "")
}

// renderProformaPDF lays out the quotation document: company header,
// greeting, items table, subtotal, conditional IGV line and grand total,
// with the IGV notice and bank account repeated in every page footer.
func renderProformaPDF(proforma models.Proforma, items []models.ProformaItem) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Proforma "+proforma.CotizacionNro, false)
	pdf.SetMargins(20, 12, 15)
	pdf.SetAutoPageBreak(true, 28)

	pdf.SetHeaderFunc(func() {
		pdf.SetY(12)
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 7, "Ledesma LED - Cotizacion", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(0, 5, "RUC: 10105573281 (Cesar Antonio Ledesma Sanchez)", "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 5, "Jr. Tacna 121 - Urb. Cercado - Santiago de Surco, Lima, Peru", "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 5, "Celular: 941368586 | Correo: ledesmaled@hotmail.com", "", 1, "L", false, 0, "")
		pdf.Ln(10)
	})

	pdf.SetFooterFunc(func() {
		pdf.SetY(-20)
		pdf.SetFont("Helvetica", "I", 8)
		igvText := "La proforma NO incluye IGV"
		if proforma.IncluyeIGV {
			igvText = "La proforma SI incluye IGV"
		}
		pdf.CellFormat(0, 5, igvText, "", 1, "C", false, 0, "")
		pdf.SetFont("Helvetica", "", 8)
		pdf.CellFormat(0, 5, "Numero de Cuenta BCP: 194-38403786-0-01 (a nombre de Cesar Antonio Ledesma Sanchez)", "", 1, "C", false, 0, "")
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 5, fmt.Sprintf("Pagina %d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont("Helvetica", "", 11)
	fecha := ""
	if !proforma.Fecha.IsZero() {
		fecha = proforma.Fecha.Format("02/01/2006")
	}
	pdf.CellFormat(0, 7, "Fecha: "+fecha, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Cotizacion Nro: "+proforma.CotizacionNro, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Cliente: "+proforma.Cliente, "", 1, "L", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Helvetica", "I", 11)
	pdf.MultiCell(0, 7, "Estimado Cliente. Aqui le enviamos la proforma del trabajo a tratar.", "", "L", false)
	pdf.Ln(5)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(80, 10, "Item", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 10, "Cant.", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 10, "P. Unit.", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 10, "Costo", "1", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	subtotal := decimal.Zero
	for _, item := range items {
		costo := item.Cantidad.Mul(item.PrecioUnitario)
		subtotal = subtotal.Add(costo)
		pdf.CellFormat(80, 10, item.ItemDescripcion, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 10, item.Cantidad.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 10, "S/ "+item.PrecioUnitario.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 10, "S/ "+costo.StringFixed(2), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetX(100)
	pdf.CellFormat(40, 10, "SUBTOTAL:", "", 0, "R", false, 0, "")
	pdf.CellFormat(25, 10, "S/ "+subtotal.StringFixed(2), "", 1, "R", false, 0, "")

	total := subtotal
	if proforma.IncluyeIGV {
		igv := subtotal.Mul(igvRate)
		pdf.SetX(100)
		pdf.CellFormat(40, 10, "IGV (18%):", "", 0, "R", false, 0, "")
		pdf.CellFormat(25, 10, "S/ "+igv.StringFixed(2), "", 1, "R", false, 0, "")
		total = total.Add(igv)
	}

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetX(100)
	pdf.CellFormat(40, 10, "TOTAL:", "", 0, "R", false, 0, "")
	pdf.CellFormat(25, 10, "S/ "+total.StringFixed(2), "", 1, "R", false, 0, "")

	if err := stampTrackingBarcode(pdf, proforma); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// stampTrackingBarcode places a code128 of the quotation number at the
// bottom-left of the current page so printed copies stay traceable.
func stampTrackingBarcode(pdf *gofpdf.Fpdf, proforma models.Proforma) error {
	value := "PROFORMA-" + proforma.CotizacionNro
	barcodePNG, err := renderCode128PNG(value, 600, 120)
	if err != nil {
		return err
	}

	opt := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	imageName := fmt.Sprintf("proforma-barcode-%d", proforma.ID)
	pdf.RegisterImageOptionsReader(imageName, opt, bytes.NewReader(barcodePNG))

	_, pageH := pdf.GetPageSize()
	pdf.ImageOptions(imageName, 20, pageH-42, 50, 10, false, opt, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(20, pageH-31)
	pdf.CellFormat(50, 4, value, "", 0, "C", false, 0, "")
	return nil
}

func renderCode128PNG(value string, width, height int) ([]byte, error) {
	code, err := code128.Encode(value)
	if err != nil {
		return nil, err
	}
	scaled, err := barcode.Scale(code, width, height)
	if err != nil {
		return nil, err
	}
	normalized := toNRGBA(scaled)
	var out bytes.Buffer
	if err := png.Encode(&out, normalized); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func toNRGBA(src image.Image) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	return dst
}
