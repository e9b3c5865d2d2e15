package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Govind-619/ShopSphere/utils"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogs runs fn with the shared logger writing JSON into a buffer.
func captureLogs(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevFormatter, prevLevel := utils.Logger.Out, utils.Logger.Formatter, utils.Logger.Level
	utils.Logger.SetOutput(&buf)
	utils.Logger.SetFormatter(&logrus.JSONFormatter{})
	utils.Logger.SetLevel(logrus.InfoLevel)
	t.Cleanup(func() {
		utils.Logger.SetOutput(prevOut)
		utils.Logger.SetFormatter(prevFormatter)
		utils.Logger.SetLevel(prevLevel)
	})
	fn()
	return buf.String()
}

func TestAnalyzeCountsDomainEvents(t *testing.T) {
	logs := captureLogs(t, func() {
		utils.LogEvent("order_placed", logrus.Fields{"order_id": "o1", "user_id": "u1", "total": 1125.0, "coupon": "SAVE10"})
		utils.LogEvent("order_placed", logrus.Fields{"order_id": "o2", "user_id": "u1", "total": 100.0, "coupon": ""})
		utils.LogEvent("coupon_rejected", logrus.Fields{"code": "BOGUS"})
		utils.LogEvent("invalid_transition", logrus.Fields{"order_id": "o1", "from": "Placed", "to": "Return Requested"})
		utils.LogEvent("order_status_changed", logrus.Fields{"order_id": "o1", "from": "Placed", "to": "Shipped"})
		utils.LogRequest("POST", "/v1/user/checkout", "127.0.0.1", "req-1", 422, 0)
		utils.LogRequest("GET", "/v1/user/cart", "127.0.0.1", "req-2", 200, 0)
		utils.LogError("Failed to place order for user ID: %s: %v", "u9", "timeout")
	})

	stats, err := analyze(strings.NewReader(logs + "not json\n"))
	require.NoError(t, err)

	assert.Equal(t, 9, stats.Lines)
	assert.Equal(t, 1, stats.Unparsed)
	assert.Equal(t, 2, stats.OrdersPlaced)
	assert.InDelta(t, 1225.0, stats.OrderRevenue, 0.001)
	assert.Equal(t, 1, stats.CouponOrders)
	assert.Equal(t, 2, stats.UserActivities["u1"])
	assert.Equal(t, 1, stats.RejectedCodes["BOGUS"])
	assert.Equal(t, 1, stats.Transitions["Placed -> Return Requested"])
	assert.Equal(t, 1, stats.StatusChanges["Shipped"])
	assert.Equal(t, 1, stats.FailedRequests)
	assert.Equal(t, 1, stats.TotalErrors)
	assert.Equal(t, 1, stats.ErrorPatterns["Failed to place order for user ID"])
}

func TestTopCountsOrdering(t *testing.T) {
	got := topCounts(map[string]int{"b": 2, "a": 2, "c": 5, "d": 1}, 3)
	assert.Equal(t, []countEntry{{"c", 5}, {"a", 2}, {"b", 2}}, got)
}

func TestPrintReport(t *testing.T) {
	stats := newLogStats()
	stats.OrdersPlaced = 3
	stats.RejectedCodes["BOGUS"] = 2

	var out bytes.Buffer
	printReport(&out, stats, 5)
	assert.Contains(t, out.String(), "Orders Placed: 3")
	assert.Contains(t, out.String(), "BOGUS: 2 attempts")
}
