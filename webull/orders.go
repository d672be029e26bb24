// Package webull reads Webull account export CSVs: order history into
// normalized trades, and transfer history into external cash flows.
package webull

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"tradegains"
	"tradegains/date"
)

// orderRow mirrors the columns of a Webull orders export. Every field is
// read as text so one bad cell drops one row instead of failing the file.
type orderRow struct {
	Name       string `csv:"Name"`
	Symbol     string `csv:"Symbol"`
	Side       string `csv:"Side"`
	Status     string `csv:"Status"`
	Filled     string `csv:"Filled"`
	TotalQty   string `csv:"Total Qty"`
	Price      string `csv:"Price"`
	AvgPrice   string `csv:"Avg Price"`
	PlacedTime string `csv:"Placed Time"`
	FilledTime string `csv:"Filled Time"`
}

// tzSuffix matches trailing timezone abbreviations like " EDT" that Webull
// appends to its timestamps.
var tzSuffix = regexp.MustCompile(`\s+[A-Z]{2,4}$`)

// timeLayouts are the timestamp shapes seen across Webull export versions,
// tried in order after the timezone suffix is stripped.
var timeLayouts = []string{
	"01/02/2006 15:04:05",
	"2006-01-02 15:04:05",
	"01/02/2006 15:04",
	"2006-01-02 15:04",
	"01/02/2006",
	"2006-01-02",
}

// timedOrder keeps the full execution timestamp alongside the normalized
// trade so orders from several files can be ordered intraday before the
// time of day is discarded.
type timedOrder struct {
	when  time.Time
	trade tradegains.Trade
}

// ParseOrders reads one Webull orders CSV and returns the filled orders as
// normalized trades, sorted by execution time. Rows that are not filled, or
// that carry no parsable timestamp or price, are dropped.
func ParseOrders(r io.Reader) ([]tradegains.Trade, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading orders csv: %w", err)
	}
	orders, err := decodeOrders(data)
	if err != nil {
		return nil, err
	}
	return sortOrders(orders), nil
}

func decodeOrders(data []byte) ([]timedOrder, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var rows []orderRow
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, fmt.Errorf("decoding orders csv: %w", err)
	}
	var orders []timedOrder
	for _, row := range rows {
		if !strings.Contains(strings.ToLower(row.Status), "fill") {
			continue
		}
		when, ok := parseTime(row.FilledTime)
		if !ok {
			when, ok = parseTime(row.PlacedTime)
		}
		if !ok {
			continue
		}
		price, ok := parseDecimal(row.AvgPrice)
		if !ok {
			price, ok = parseDecimal(row.Price)
		}
		if !ok {
			continue
		}
		qty, ok := parseDecimal(row.Filled)
		if !ok {
			qty, ok = parseDecimal(row.TotalQty)
		}
		if !ok {
			qty = decimal.Zero
		}
		trade := tradegains.NormalizeTrade(date.FromTime(when), row.Symbol, row.Side, qty, price, decimal.Zero)
		orders = append(orders, timedOrder{when: when, trade: trade})
	}
	return orders, nil
}

// sortOrders orders executions chronologically by full timestamp and strips
// the time of day.
func sortOrders(orders []timedOrder) []tradegains.Trade {
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].when.Before(orders[j].when) })
	trades := make([]tradegains.Trade, len(orders))
	for i, o := range orders {
		trades[i] = o.trade
	}
	return trades
}

// parseTime reads a Webull timestamp, tolerating the trailing timezone
// token and the date and time shapes the export has used over time.
func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(tzSuffix.ReplaceAllString(strings.TrimSpace(s), ""))
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseDecimal reads a numeric cell, tolerating currency symbols and
// thousands separators.
func parseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "$", "")
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
