package tradegains

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"tradegains/date"
)

// Trade is one filled order, normalized to a uniform sign convention:
// Quantity is positive for buys and negative for sells, CashFlow is the
// signed cash impact on the account (negative for buys, positive for
// sells) with fees folded in.
type Trade struct {
	Date     date.Date
	Symbol   string
	Quantity decimal.Decimal
	Price    decimal.Decimal // execution price per unit, always positive
	CashFlow decimal.Decimal
}

// NormalizeTrade builds a Trade from raw order fields. The side string is
// interpreted with IsSell, the quantity may come signed or unsigned, and
// the fee is charged to the account on both sides.
func NormalizeTrade(day date.Date, symbol, side string, quantity, price, fee decimal.Decimal) Trade {
	qty := quantity.Abs()
	gross := qty.Mul(price)
	t := Trade{Date: day, Symbol: NormalizeSymbol(symbol), Price: price}
	if IsSell(side) {
		t.Quantity = qty.Neg()
		t.CashFlow = gross.Sub(fee)
	} else {
		t.Quantity = qty
		t.CashFlow = gross.Add(fee).Neg()
	}
	return t
}

// NormalizeSymbol returns the symbol trimmed and upper-cased.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// IsSell reports whether a broker side field denotes a sale. Webull uses
// variants like "Sell" and "Sell Short"; anything else counts as a buy.
func IsSell(side string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(side)), "sell")
}

// SortTrades orders trades chronologically, keeping the input order for
// trades on the same date.
func SortTrades(trades []Trade) {
	sort.SliceStable(trades, func(i, j int) bool { return trades[i].Date.Before(trades[j].Date) })
}

// Symbols returns the distinct symbols appearing in trades, sorted.
func Symbols(trades []Trade) []string {
	seen := make(map[string]bool)
	var symbols []string
	for _, t := range trades {
		if !seen[t.Symbol] {
			seen[t.Symbol] = true
			symbols = append(symbols, t.Symbol)
		}
	}
	sort.Strings(symbols)
	return symbols
}
