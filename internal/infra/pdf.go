package infra

// pdf.go — Order invoice generation using go-pdf/fpdf.
// Produces an A4 invoice with:
//   - Store name header
//   - Order number, date, customer block
//   - Item table (name, quantity, unit price, subtotal)
//   - Bold total
//
// The output file is saved to storagePath/invoice_{number}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"gemstore/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateInvoicePDF writes an invoice for an order and returns the absolute
// path to the generated file. storagePath is created if needed.
func GenerateInvoicePDF(order *model.Order, storeName, currency, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("invoice_%d.pdf", order.Number)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentW, 10, storeName, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Invoice", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ── Order info ───────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Order #%d", order.Number), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, order.CreatedAt.Format("02 Jan 2006 15:04"), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, order.CustomerName, "", 1, "L", false, 0, "")
	if order.ShippingAddr != nil {
		pdf.CellFormat(contentW, 5, *order.ShippingAddr, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// ── Item table ───────────────────────────────────────────────────────────
	colName := contentW * 0.45
	colQty := contentW * 0.15
	colPrice := contentW * 0.20
	colSub := contentW * 0.20

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(colName, 7, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colQty, 7, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colPrice, 7, "Unit", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colSub, 7, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range order.Items {
		pdf.CellFormat(colName, 6, item.Name, "", 0, "L", false, 0, "")
		pdf.CellFormat(colQty, 6, fmt.Sprintf("%d", item.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(colPrice, 6, item.UnitPrice.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(colSub, 6, item.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Total ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(colName+colQty+colPrice, 8, "Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(colSub, 8, fmt.Sprintf("%s %s", order.Total.StringFixed(2), currency), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}
