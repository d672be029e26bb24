package tradegains

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNormalizeTrade(t *testing.T) {
	t.Run("buy charges cost plus fee", func(t *testing.T) {
		tr := NormalizeTrade(day("2025-01-02"), " aapl ", "Buy", dec(10), dec(100), dec(1.5))
		if got, want := tr.Symbol, "AAPL"; got != want {
			t.Errorf("Symbol = %q, want %q", got, want)
		}
		if got, want := tr.Quantity, dec(10); !got.Equal(want) {
			t.Errorf("Quantity = %v, want %v", got, want)
		}
		if got, want := tr.CashFlow, dec(-1001.5); !got.Equal(want) {
			t.Errorf("CashFlow = %v, want %v", got, want)
		}
	})

	t.Run("sell credits proceeds minus fee", func(t *testing.T) {
		tr := NormalizeTrade(day("2025-01-10"), "MSFT", "Sell", dec(5), dec(120), dec(0.5))
		if got, want := tr.Quantity, dec(-5); !got.Equal(want) {
			t.Errorf("Quantity = %v, want %v", got, want)
		}
		if got, want := tr.CashFlow, dec(599.5); !got.Equal(want) {
			t.Errorf("CashFlow = %v, want %v", got, want)
		}
	})

	t.Run("signed input quantity is normalized", func(t *testing.T) {
		tr := NormalizeTrade(day("2025-01-10"), "MSFT", "Sell Short", dec(-5), dec(120), decimal.Zero)
		if got, want := tr.Quantity, dec(-5); !got.Equal(want) {
			t.Errorf("Quantity = %v, want %v", got, want)
		}
	})
}

func TestIsSell(t *testing.T) {
	tests := []struct {
		side string
		want bool
	}{
		{"Sell", true},
		{"SELL", true},
		{"sell short", true},
		{" Sell ", true},
		{"Buy", false},
		{"BUY", false},
		{"Short", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsSell(tt.side); got != tt.want {
			t.Errorf("IsSell(%q) = %v, want %v", tt.side, got, tt.want)
		}
	}
}

func TestSortTrades_stableOnSameDate(t *testing.T) {
	trades := []Trade{
		sell("2025-01-02", "AAPL", 1, 100),
		buy("2025-01-01", "AAPL", 2, 100),
		buy("2025-01-02", "AAPL", 3, 100),
	}
	SortTrades(trades)
	if !trades[0].Date.Before(trades[1].Date) {
		t.Errorf("first trade not earliest: %v", trades[0].Date)
	}
	// The two 01-02 trades keep their input order.
	if !trades[1].Quantity.Equal(dec(-1)) || !trades[2].Quantity.Equal(dec(3)) {
		t.Errorf("same-date order not preserved: %v then %v", trades[1].Quantity, trades[2].Quantity)
	}
}

func TestSymbols(t *testing.T) {
	trades := []Trade{
		buy("2025-01-01", "MSFT", 1, 10),
		buy("2025-01-02", "AAPL", 1, 10),
		sell("2025-01-03", "MSFT", 1, 11),
	}
	got := Symbols(trades)
	want := []string{"AAPL", "MSFT"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Symbols = %v, want %v", got, want)
	}
}
