package services

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Govind-619/ShopSphere/models"
	"github.com/Govind-619/ShopSphere/utils"
	"github.com/tealeg/xlsx"
)

// OrdersReport aggregates the orders written to a spreadsheet.
type OrdersReport struct {
	Orders         int                        `json:"orders"`
	Items          int                        `json:"items"`
	Customers      int                        `json:"customers"`
	Gross          float64                    `json:"gross"`
	Discounts      float64                    `json:"discounts"`
	Net            float64                    `json:"net"`
	ByStatus       map[models.OrderStatus]int `json:"by_status"`
	CouponsUsed    int                        `json:"coupons_used"`
	CashOnDelivery int                        `json:"cash_on_delivery"`
}

// ReportWindow is a half-open [Start, End) range of order creation times. A
// zero window covers every order.
type ReportWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (w ReportWindow) IsZero() bool {
	return w.Start.IsZero() && w.End.IsZero()
}

func (w ReportWindow) Contains(t time.Time) bool {
	if w.IsZero() {
		return true
	}
	return !t.Before(w.Start) && t.Before(w.End)
}

const maxCustomReportDays = 90

// ParseReportWindow resolves a report period relative to now. Periods are
// "all" (or empty), "day", "week" (last 7 days including today), "month"
// (last 30 days) and "custom", which reads YYYY-MM-DD start and end dates and
// includes the whole end day.
func ParseReportWindow(period, startDate, endDate string, now time.Time) (ReportWindow, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := today.AddDate(0, 0, 1)

	switch strings.ToLower(strings.TrimSpace(period)) {
	case "", "all":
		return ReportWindow{}, nil
	case "day":
		return ReportWindow{Start: today, End: tomorrow}, nil
	case "week":
		return ReportWindow{Start: today.AddDate(0, 0, -6), End: tomorrow}, nil
	case "month":
		return ReportWindow{Start: today.AddDate(0, 0, -29), End: tomorrow}, nil
	case "custom":
		if startDate == "" || endDate == "" {
			return ReportWindow{}, utils.BadRequestError("Both start_date and end_date are required for custom period", nil)
		}
		start, err := time.ParseInLocation("2006-01-02", startDate, now.Location())
		if err != nil {
			return ReportWindow{}, utils.BadRequestError("Start date must be in YYYY-MM-DD format", err)
		}
		end, err := time.ParseInLocation("2006-01-02", endDate, now.Location())
		if err != nil {
			return ReportWindow{}, utils.BadRequestError("End date must be in YYYY-MM-DD format", err)
		}
		end = end.AddDate(0, 0, 1)
		if !end.After(start) {
			return ReportWindow{}, utils.BadRequestError("End date must not be before start date", nil)
		}
		if end.Sub(start) > maxCustomReportDays*24*time.Hour {
			return ReportWindow{}, utils.BadRequestError(fmt.Sprintf("Date range cannot exceed %d days", maxCustomReportDays), nil)
		}
		return ReportWindow{Start: start, End: end}, nil
	default:
		return ReportWindow{}, utils.BadRequestError("period must be one of all, day, week, month, custom", nil)
	}
}

// FilterOrders keeps the orders created inside w, preserving order.
func FilterOrders(orders []models.Order, w ReportWindow) []models.Order {
	if w.IsZero() {
		return orders
	}
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if w.Contains(o.CreatedAt) {
			out = append(out, o)
		}
	}
	return out
}

// SummarizeOrders computes the report totals.
func SummarizeOrders(orders []models.Order) OrdersReport {
	report := OrdersReport{ByStatus: make(map[models.OrderStatus]int)}
	customers := make(map[string]struct{})
	for _, o := range orders {
		report.Orders++
		report.Items += o.ItemCount()
		report.Gross += o.Subtotal
		report.Net += o.TotalAmount
		report.ByStatus[o.Status]++
		customers[o.UserID] = struct{}{}
		if o.CouponApplied {
			report.CouponsUsed++
		}
		if o.PaymentMethod == models.PaymentCOD {
			report.CashOnDelivery++
		}
	}
	report.Customers = len(customers)
	report.Gross = roundMoney(report.Gross)
	report.Net = roundMoney(report.Net)
	report.Discounts = roundMoney(report.Gross - report.Net)
	return report
}

func boldStyle() *xlsx.Style {
	style := xlsx.NewStyle()
	font := xlsx.DefaultFont()
	font.Bold = true
	style.Font = *font
	return style
}

// WriteOrdersSheet writes orders and a summary block as an xlsx workbook.
func WriteOrdersSheet(w io.Writer, storeName string, orders []models.Order) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return fmt.Errorf("create orders sheet: %w", err)
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString(storeName + " - Orders")
	titleRow.Cells[0].SetStyle(boldStyle())
	sheet.AddRow() // spacing

	headers := []string{"Order ID", "User ID", "Customer", "Date", "Items", "Subtotal", "Coupon", "Discount %", "Total", "Payment", "Status"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		cell.SetStyle(boldStyle())
	}

	for _, o := range orders {
		row := sheet.AddRow()
		row.AddCell().SetString(o.ID)
		row.AddCell().SetString(o.UserID)
		row.AddCell().SetString(o.CustomerName)
		row.AddCell().SetString(o.CreatedAt.Format("2006-01-02 15:04"))
		row.AddCell().SetInt(o.ItemCount())
		row.AddCell().SetFloat(o.Subtotal)
		row.AddCell().SetString(o.CouponCode)
		row.AddCell().SetFloat(o.DiscountPercent)
		row.AddCell().SetFloat(o.TotalAmount)
		row.AddCell().SetString(string(o.PaymentMethod))
		row.AddCell().SetString(string(o.Status))
	}

	sheet.AddRow() // spacing

	report := SummarizeOrders(orders)
	summaryRow := sheet.AddRow()
	summaryRow.AddCell().SetString("Summary")
	summaryRow.Cells[0].SetStyle(boldStyle())
	summary := [][]string{
		{"Total Orders", fmt.Sprintf("%d", report.Orders)},
		{"Total Items", fmt.Sprintf("%d", report.Items)},
		{"Total Customers", fmt.Sprintf("%d", report.Customers)},
		{"Gross Amount", fmt.Sprintf("%.2f", report.Gross)},
		{"Coupon Discounts", fmt.Sprintf("%.2f", report.Discounts)},
		{"Net Amount", fmt.Sprintf("%.2f", report.Net)},
		{"Orders With Coupon", fmt.Sprintf("%d", report.CouponsUsed)},
		{"Cash On Delivery", fmt.Sprintf("%d", report.CashOnDelivery)},
	}
	for _, status := range models.OrderStatuses {
		if n := report.ByStatus[status]; n > 0 {
			summary = append(summary, []string{"Status: " + string(status), fmt.Sprintf("%d", n)})
		}
	}
	for _, data := range summary {
		row := sheet.AddRow()
		row.AddCell().SetString(data[0])
		row.AddCell().SetString(data[1])
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write orders sheet: %w", err)
	}
	return nil
}
