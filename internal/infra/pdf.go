package infra

// pdf.go generates the stay receipt using go-pdf/fpdf: a thermal
// receipt-style ticket with the room charge, consumption lines, the
// total and the payment breakdown. The output file is saved to
// storagePath/recibo_{codigo}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"hostalpos/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateReceiptPDF renders the receipt for a checked-out booking.
// storagePath is the directory where the PDF will be written (created if
// needed). Returns the absolute path to the generated file.
func GenerateReceiptPDF(booking *model.Booking, hotelName, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("recibo_%s.pdf", booking.BookingCode)
	filePath := filepath.Join(storagePath, fileName)

	// 74mm x 105mm, close to thermal receipt paper
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8 // total margins = 8mm

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, hotelName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Recibo de Estadia", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Booking info ─────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, booking.BookingCode, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	if booking.Room != nil {
		pdf.CellFormat(contentW, 4, "Habitacion "+booking.Room.RoomNumber, "", 1, "L", false, 0, "")
	}
	if booking.Customer != nil {
		pdf.CellFormat(contentW, 4, booking.Customer.Nombre, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(contentW, 4, "Ingreso:  "+booking.CheckIn.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	salida := booking.CheckOut
	if booking.ActualCheckOut != nil {
		salida = *booking.ActualCheckOut
	}
	pdf.CellFormat(contentW, 4, "Salida:   "+salida.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Charges ──────────────────────────────────────────────────────────────
	col1 := contentW * 0.52
	col2 := contentW * 0.16
	col3 := contentW * 0.32

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Concepto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Importe", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	tarifa := "Habitacion"
	if booking.RateType != nil {
		tarifa = "Habitacion (" + booking.RateType.Nombre + ")"
	}
	pdf.CellFormat(col1, 5, tarifa, "", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, booking.TotalHoras.StringFixed(1)+"h", "", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, booking.RoomSubtotal.StringFixed(2), "", 1, "R", false, 0, "")

	for _, item := range booking.Consumptions {
		nombre := item.Descripcion
		if len(nombre) > 22 {
			nombre = nombre[:21] + "…"
		}
		pdf.CellFormat(col1, 5, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", item.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, item.TotalLinea.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 7)
	if !booking.DiscountAmount.IsZero() {
		pdf.CellFormat(col1+col2, 5, "Descuento:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, "-"+booking.DiscountAmount.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, booking.TotalAmount.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Payments ─────────────────────────────────────────────────────────────
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 7)
	for _, pago := range booking.Payments {
		if !pago.CuentaParaSaldo() {
			continue
		}
		metodo := pago.Moneda
		if pago.Method != nil {
			metodo = pago.Method.Nombre
		}
		pdf.CellFormat(col1+col2, 4, "Pago ("+metodo+"):", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, pago.AmountBase.StringFixed(2), "", 1, "R", false, 0, "")
	}
	saldo := booking.Balance()
	if !saldo.IsZero() {
		pdf.SetFont("Helvetica", "B", 7)
		pdf.CellFormat(col1+col2, 4, "Saldo pendiente:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, saldo.StringFixed(2), "", 1, "R", false, 0, "")
	}

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "Gracias por su visita", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
