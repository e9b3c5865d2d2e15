package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"
)

type LogStats struct {
	Lines              int
	Unparsed           int
	TotalErrors        int
	OrdersPlaced       int
	OrderRevenue       float64
	CouponOrders       int
	CouponsRejected    int
	InvalidTransitions int
	StatusChanges      map[string]int
	FailedRequests     int
	RejectedCodes      map[string]int
	Transitions        map[string]int
	UserActivities     map[string]int
	ErrorPatterns      map[string]int
}

func newLogStats() *LogStats {
	return &LogStats{
		StatusChanges:  make(map[string]int),
		RejectedCodes:  make(map[string]int),
		Transitions:    make(map[string]int),
		UserActivities: make(map[string]int),
		ErrorPatterns:  make(map[string]int),
	}
}

func main() {
	logFile := flag.String("file", "./logs/app.log", "JSON log file written with LOG_FILE; - reads stdin")
	top := flag.Int("top", 5, "entries to show in the top lists")
	flag.Parse()

	var in io.Reader = os.Stdin
	if *logFile != "-" {
		file, err := os.Open(*logFile)
		if err != nil {
			fmt.Printf("Error opening log file %s: %v\n", *logFile, err)
			os.Exit(1)
		}
		defer file.Close()
		in = file
	}

	stats, err := analyze(in)
	if err != nil {
		fmt.Printf("Error reading logs: %v\n", err)
		os.Exit(1)
	}
	printReport(os.Stdout, stats, *top)
}

// analyze reads one logrus JSON entry per line. Lines that are not JSON
// objects are counted and skipped.
func analyze(r io.Reader) (*LogStats, error) {
	stats := newLogStats()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		stats.Lines++

		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			stats.Unparsed++
			continue
		}
		record(stats, entry)
	}
	return stats, scanner.Err()
}

func record(stats *LogStats, entry map[string]interface{}) {
	if str(entry, "level") == "error" {
		stats.TotalErrors++
		extractErrorPattern(str(entry, "msg"), stats)
	}

	switch str(entry, "event") {
	case "order_placed":
		stats.OrdersPlaced++
		stats.OrderRevenue += num(entry, "total")
		if str(entry, "coupon") != "" {
			stats.CouponOrders++
		}
		if user := str(entry, "user_id"); user != "" {
			stats.UserActivities[user]++
		}
	case "coupon_rejected":
		stats.CouponsRejected++
		stats.RejectedCodes[str(entry, "code")]++
	case "invalid_transition":
		stats.InvalidTransitions++
		stats.Transitions[str(entry, "from")+" -> "+str(entry, "to")]++
	case "order_status_changed":
		stats.StatusChanges[str(entry, "to")]++
	}

	if str(entry, "msg") == "request" && num(entry, "status") >= 400 {
		stats.FailedRequests++
	}
}

func str(entry map[string]interface{}, key string) string {
	switch v := entry[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func num(entry map[string]interface{}, key string) float64 {
	v, _ := entry[key].(float64)
	return v
}

func extractErrorPattern(msg string, stats *LogStats) {
	// Keep the message up to the first detail separator
	pattern := msg
	if i := strings.Index(pattern, ":"); i > 0 {
		pattern = pattern[:i]
	}
	pattern = strings.TrimSpace(pattern)
	if pattern != "" {
		stats.ErrorPatterns[pattern]++
	}
}

func printReport(w io.Writer, stats *LogStats, top int) {
	fmt.Fprintln(w, "\n=== Log Analysis Report ===")
	fmt.Fprintln(w, "Generated:", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Lines read: %d (unparsed: %d)\n", stats.Lines, stats.Unparsed)

	fmt.Fprintln(w, "\n1. Orders:")
	fmt.Fprintf(w, "   Orders Placed: %d\n", stats.OrdersPlaced)
	fmt.Fprintf(w, "   Revenue: %.2f\n", stats.OrderRevenue)
	fmt.Fprintf(w, "   Orders With Coupon: %d\n", stats.CouponOrders)

	fmt.Fprintln(w, "\n2. Coupons:")
	fmt.Fprintf(w, "   Rejected Coupon Codes: %d\n", stats.CouponsRejected)
	printTop(w, stats.RejectedCodes, top, "attempts")

	fmt.Fprintln(w, "\n3. Order Lifecycle:")
	fmt.Fprintf(w, "   Invalid Transitions: %d\n", stats.InvalidTransitions)
	printTop(w, stats.Transitions, top, "attempts")
	fmt.Fprintln(w, "   Status Changes:")
	printTop(w, stats.StatusChanges, len(stats.StatusChanges), "orders")

	fmt.Fprintln(w, "\n4. Error Statistics:")
	fmt.Fprintf(w, "   Total Errors: %d\n", stats.TotalErrors)
	fmt.Fprintf(w, "   Failed Requests: %d\n", stats.FailedRequests)

	fmt.Fprintln(w, "\n5. Most Active Customers:")
	printTop(w, stats.UserActivities, top, "orders")

	fmt.Fprintln(w, "\n6. Most Common Errors:")
	printTop(w, stats.ErrorPatterns, top, "occurrences")
}

type countEntry struct {
	key   string
	count int
}

// topCounts sorts by count, then key, and keeps at most limit entries.
func topCounts(counts map[string]int, limit int) []countEntry {
	var list []countEntry
	for k, n := range counts {
		list = append(list, countEntry{k, n})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].count != list[j].count {
			return list[i].count > list[j].count
		}
		return list[i].key < list[j].key
	})
	if len(list) > limit {
		list = list[:limit]
	}
	return list
}

func printTop(w io.Writer, counts map[string]int, limit int, unit string) {
	for _, e := range topCounts(counts, limit) {
		fmt.Fprintf(w, "   %s: %d %s\n", e.key, e.count, unit)
	}
}
