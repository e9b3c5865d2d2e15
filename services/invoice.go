package services

import (
	"fmt"
	"io"
	"strconv"

	"github.com/Govind-619/ShopSphere/models"
	"github.com/jung-kurt/gofpdf"
)

// WriteInvoice renders a one-page PDF invoice for order.
func WriteInvoice(w io.Writer, storeName string, order models.Order) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, tr(storeName))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "INVOICE")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(100, 7, "Order ID: "+order.ID)
	pdf.Ln(7)
	pdf.Cell(100, 7, "Order Date: "+order.CreatedAt.Format("2006-01-02 15:04:05"))
	pdf.Ln(7)
	pdf.Cell(60, 7, "Payment Method: "+string(order.PaymentMethod))
	pdf.Cell(60, 7, "Status: "+string(order.Status))
	pdf.Ln(10)

	// Billing
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(100, 8, "Billed To:")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(100, 7, tr(order.CustomerName))
	pdf.Ln(6)
	if order.Email != "" {
		pdf.Cell(100, 7, order.Email)
		pdf.Ln(6)
	}
	pdf.Cell(100, 7, "Phone: "+tr(order.Phone))
	pdf.Ln(6)
	pdf.MultiCell(150, 6, tr(order.Address), "", "L", false)
	pdf.Ln(6)

	// Items
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(80, 8, "Product", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "Price", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "Total", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 11)
	for _, item := range order.Items {
		pdf.CellFormat(80, 8, tr(item.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, strconv.Itoa(item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 8, money(item.EffectivePrice()), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, money(item.LineTotal()), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	// Totals
	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(130, 8, "Subtotal:", "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(30, 8, money(order.Subtotal), "", 1, "R", false, 0, "")
	if order.CouponApplied {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(130, 8, fmt.Sprintf("Coupon %s (%.0f%%):", order.CouponCode, order.DiscountPercent), "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(30, 8, "-"+money(order.Subtotal-order.TotalAmount), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(130, 10, "Grand Total:", "", 0, "L", false, 0, "")
	pdf.CellFormat(30, 10, money(order.TotalAmount), "", 1, "R", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 11)
	pdf.Cell(0, 10, tr("Thank you for shopping with "+storeName+"!"))

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render invoice %s: %w", order.ID, err)
	}
	return nil
}

func money(v float64) string {
	return fmt.Sprintf("Rs. %.2f", v)
}
