package pdf

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// InvoiceDocument carries everything the renderer needs; it is assembled
// by the handler so this package stays free of domain imports.
type InvoiceDocument struct {
	CompanyName  string
	CompanyPhone string
	CompanyEmail string

	InvoiceId  string
	Status     string
	Month      int
	Year       int
	IssuedAt   time.Time
	DueDate    *time.Time
	Notes      string

	ClientName    string
	ClientCode    string
	ClientAddress string
	ClientPhone   string

	Lines   []LineItem
	Amount  float64
	Applied float64
	Balance float64
}

type LineItem struct {
	Description string
	Amount      float64
}

var monthNames = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

func periodLabel(month, year int) string {
	if month >= 1 && month <= 12 {
		return fmt.Sprintf("%s %d", monthNames[month-1], year)
	}
	return fmt.Sprintf("%d/%d", month, year)
}

func money(v float64) string {
	return fmt.Sprintf("C$ %.2f", v)
}

// RenderInvoice writes the invoice as a single-page PDF.
func RenderInvoice(w io.Writer, doc *InvoiceDocument) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Factura %s", doc.InvoiceId), true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Header
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(doc.CompanyName), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 5, tr(doc.CompanyPhone), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, tr(doc.CompanyEmail), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Factura - %s", periodLabel(doc.Month, doc.Year))), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("No. %s", doc.InvoiceId)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Emitida: %s", doc.IssuedAt.Format("02/01/2006"))), "", 1, "L", false, 0, "")
	if doc.DueDate != nil {
		pdf.CellFormat(0, 5, tr(fmt.Sprintf("Vence: %s", doc.DueDate.Format("02/01/2006"))), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// Client block
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 7, tr("Cliente"), "", 1, "L", true, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("%s (%s)", doc.ClientName, doc.ClientCode)), "", 1, "L", false, 0, "")
	if doc.ClientAddress != "" {
		pdf.CellFormat(0, 6, tr(doc.ClientAddress), "", 1, "L", false, 0, "")
	}
	if doc.ClientPhone != "" {
		pdf.CellFormat(0, 6, tr(doc.ClientPhone), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// Detail table
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(140, 8, tr("Descripción"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 8, tr("Monto"), "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	if len(doc.Lines) == 0 {
		pdf.CellFormat(140, 8, tr(fmt.Sprintf("Servicio %s", periodLabel(doc.Month, doc.Year))), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, money(doc.Amount), "1", 1, "R", false, 0, "")
	} else {
		for _, line := range doc.Lines {
			pdf.CellFormat(140, 8, tr(line.Description), "1", 0, "L", false, 0, "")
			pdf.CellFormat(40, 8, money(line.Amount), "1", 1, "R", false, 0, "")
		}
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(140, 8, tr("Total"), "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, money(doc.Amount), "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(140, 8, tr("Pagado"), "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, money(doc.Applied), "1", 1, "R", false, 0, "")
	pdf.CellFormat(140, 8, tr("Saldo pendiente"), "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, money(doc.Balance), "1", 1, "R", false, 0, "")
	pdf.Ln(6)

	// Status stamp
	switch doc.Status {
	case "PAID":
		pdf.SetTextColor(0, 140, 0)
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 10, tr("PAGADA"), "", 1, "C", false, 0, "")
	case "CANCELLED":
		pdf.SetTextColor(180, 0, 0)
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 10, tr("ANULADA"), "", 1, "C", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)

	if doc.Notes != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, tr(doc.Notes), "", "L", false)
	}

	return pdf.Output(w)
}
