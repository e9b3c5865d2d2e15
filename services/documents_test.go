package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/Govind-619/ShopSphere/models"
	"github.com/Govind-619/ShopSphere/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func sampleOrders() []models.Order {
	created := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)
	return []models.Order{
		{
			ID: "o1", UserID: "u1", CustomerName: "Asha Rao", Phone: "9876543210", Address: "12 Lake Road",
			PaymentMethod: models.PaymentCOD, Status: models.OrderStatusPlaced, CreatedAt: created,
			Items: []models.OrderItem{
				{ProductID: "a", Name: "Chair", Price: 500, Quantity: 2},
				{ProductID: "b", Name: "Cushion", Price: 300, DiscountPrice: price(250), Quantity: 1},
			},
			Subtotal: 1250, DiscountPercent: 10, TotalAmount: 1125, CouponApplied: true, CouponCode: "SAVE10",
		},
		{
			ID: "o2", UserID: "u2", CustomerName: "Ravi", Phone: "1", Address: "x",
			PaymentMethod: models.PaymentOnline, Status: models.OrderStatusDelivered, CreatedAt: created,
			Items:    []models.OrderItem{{ProductID: "c", Name: "Lamp", Price: 100, Quantity: 1}},
			Subtotal: 100, TotalAmount: 100,
		},
	}
}

func TestWriteInvoice(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteInvoice(&buf, "ShopSphere", sampleOrders()[0]))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestSummarizeOrders(t *testing.T) {
	report := SummarizeOrders(sampleOrders())
	assert.Equal(t, 2, report.Orders)
	assert.Equal(t, 4, report.Items)
	assert.Equal(t, 2, report.Customers)
	assert.Equal(t, 1350.0, report.Gross)
	assert.Equal(t, 1225.0, report.Net)
	assert.Equal(t, 125.0, report.Discounts)
	assert.Equal(t, 1, report.CouponsUsed)
	assert.Equal(t, 1, report.CashOnDelivery)
	assert.Equal(t, 1, report.ByStatus[models.OrderStatusDelivered])
}

func TestWriteOrdersSheet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOrdersSheet(&buf, "ShopSphere", sampleOrders()))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)
	sheet := file.Sheets[0]
	assert.Equal(t, "Orders", sheet.Name)
	assert.Equal(t, "ShopSphere - Orders", sheet.Rows[0].Cells[0].String())
	assert.Equal(t, "Order ID", sheet.Rows[2].Cells[0].String())
	assert.Equal(t, "o1", sheet.Rows[3].Cells[0].String())
	assert.Equal(t, "SAVE10", sheet.Rows[3].Cells[6].String())
}

func TestParseReportWindow(t *testing.T) {
	now := time.Date(2024, 6, 15, 18, 0, 0, 0, time.UTC)
	day := func(d int) time.Time { return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		period, start, end string
		want               ReportWindow
		wantErr            bool
	}{
		{period: "", want: ReportWindow{}},
		{period: "day", want: ReportWindow{Start: day(15), End: day(16)}},
		{period: "Week", want: ReportWindow{Start: day(9), End: day(16)}},
		{period: "month", want: ReportWindow{Start: time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC), End: day(16)}},
		{period: "custom", start: "2024-06-01", end: "2024-06-01", want: ReportWindow{Start: day(1), End: day(2)}},
		{period: "custom", start: "2024-06-01", wantErr: true},
		{period: "custom", start: "06/01/2024", end: "2024-06-02", wantErr: true},
		{period: "custom", start: "2024-06-10", end: "2024-06-01", wantErr: true},
		{period: "custom", start: "2024-01-01", end: "2024-06-01", wantErr: true},
		{period: "year", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.period+tt.start+tt.end, func(t *testing.T) {
			got, err := ParseReportWindow(tt.period, tt.start, tt.end, now)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, utils.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterOrders(t *testing.T) {
	orders := sampleOrders()
	orders[1].CreatedAt = time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	assert.Len(t, FilterOrders(orders, ReportWindow{}), 2)

	window := ReportWindow{Start: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), End: time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC)}
	got := FilterOrders(orders, window)
	require.Len(t, got, 1)
	assert.Equal(t, "o2", got[0].ID)
}
