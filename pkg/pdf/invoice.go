// Package pdf renders invoices as printable PDF documents.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"

	"go-gestion-ws/internal/model"
)

// RenderInvoice builds the PDF for a single invoice: company header, invoice
// metadata, item table and the subtotal / ITBIS / total footer.
func RenderInvoice(inv *model.Invoice, company model.CompanyInfo) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 10, 14)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(182, 10, "FACTURA", "", 1, "C", false, 0, "")
	if company.Name != "" {
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(182, 6, company.Name, "", 1, "C", false, 0, "")
		if company.RNC != "" {
			pdf.CellFormat(182, 6, fmt.Sprintf("RNC: %s", company.RNC), "", 1, "C", false, 0, "")
		}
	}
	pdf.Ln(6)

	// Invoice metadata
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(182, 8, fmt.Sprintf("Factura #: %s", inv.ID), "", 1, "L", false, 0, "")
	pdf.CellFormat(182, 8, fmt.Sprintf("Fecha: %s", inv.Date), "", 1, "L", false, 0, "")
	pdf.CellFormat(182, 8, fmt.Sprintf("Cliente: %s", inv.ClientName), "", 1, "L", false, 0, "")
	pdf.CellFormat(182, 8, fmt.Sprintf("Estado: %s", inv.Status), "", 1, "L", false, 0, "")

	pdf.SetLineWidth(0.5)
	x, y := pdf.GetXY()
	pdf.Line(x, y+2, x+182, y+2)
	pdf.Ln(6)

	if len(inv.Items) == 0 {
		pdf.CellFormat(182, 8, "No hay items en esta factura", "", 1, "L", false, 0, "")
	} else {
		// Item table
		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(41, 128, 185)
		pdf.SetTextColor(255, 255, 255)
		pdf.CellFormat(80, 7, "Producto", "1", 0, "L", true, 0, "")
		pdf.CellFormat(30, 7, "Cantidad", "1", 0, "C", true, 0, "")
		pdf.CellFormat(36, 7, "Precio", "1", 0, "R", true, 0, "")
		pdf.CellFormat(36, 7, "Total", "1", 1, "R", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(0, 0, 0)
		for _, item := range inv.Items {
			pdf.CellFormat(80, 6, item.ProductName, "1", 0, "L", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
			pdf.CellFormat(36, 6, fmt.Sprintf("$%.2f", item.Price), "1", 0, "R", false, 0, "")
			pdf.CellFormat(36, 6, fmt.Sprintf("$%.2f", item.Total), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(8)

		subtotal, tax := inv.SubtotalAndTax()
		pdf.CellFormat(182, 7, fmt.Sprintf("Subtotal: $%.2f", subtotal), "", 1, "R", false, 0, "")
		pdf.CellFormat(182, 7, fmt.Sprintf("ITBIS (%.0f%%): $%.2f", model.TaxRate*100, tax), "", 1, "R", false, 0, "")
		pdf.SetFont("Arial", "B", 13)
		pdf.CellFormat(182, 9, fmt.Sprintf("Total: $%.2f", inv.Total), "", 1, "R", false, 0, "")
	}

	// Footer
	pdf.SetY(-30)
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(182, 6, "Gracias por su compra", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}
