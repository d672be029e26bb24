package tradegains

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAggregate_buyThenPartialSell(t *testing.T) {
	// Buy 10 @ $100 on day 1, sell 5 @ $120 on day 10.
	trades := []Trade{
		buy("2025-01-01", "AAPL", 10, 100),
		sell("2025-01-10", "AAPL", 5, 120),
	}
	positions, flows, err := Aggregate(trades, false)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	pos := positions["AAPL"]
	if pos == nil {
		t.Fatal("Aggregate() missing AAPL position")
	}
	if got, want := pos.Quantity, dec(5); !got.Equal(want) {
		t.Errorf("Quantity = %v, want %v", got, want)
	}
	// A sell never moves the average cost.
	if got, want := pos.AvgCost, dec(100); !got.Equal(want) {
		t.Errorf("AvgCost = %v, want %v", got, want)
	}

	want := []CashFlow{flow("2025-01-01", -1000), flow("2025-01-10", 600)}
	if len(flows) != len(want) {
		t.Fatalf("flows = %d entries, want %d", len(flows), len(want))
	}
	for i := range want {
		if flows[i].Date != want[i].Date || !flows[i].Amount.Equal(want[i].Amount) {
			t.Errorf("flows[%d] = %v %v, want %v %v", i, flows[i].Date, flows[i].Amount, want[i].Date, want[i].Amount)
		}
	}
}

func TestAggregate_weightedAverageCost(t *testing.T) {
	trades := []Trade{
		buy("2025-01-01", "AAPL", 10, 100),
		buy("2025-02-01", "AAPL", 10, 120),
	}
	positions, _, err := Aggregate(trades, false)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	// (10*100 + 10*120) / 20 = 110
	if got, want := positions["AAPL"].AvgCost, dec(110); !got.Equal(want) {
		t.Errorf("AvgCost = %v, want %v", got, want)
	}
}

func TestAggregate_sameDateFlowsAreSummed(t *testing.T) {
	trades := []Trade{
		buy("2025-01-01", "AAPL", 10, 100),
		buy("2025-01-01", "MSFT", 2, 200),
	}
	_, flows, err := Aggregate(trades, false)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if len(flows) != 1 {
		t.Fatalf("flows = %d entries, want 1", len(flows))
	}
	if got, want := flows[0].Amount, dec(-1400); !got.Equal(want) {
		t.Errorf("flows[0].Amount = %v, want %v", got, want)
	}
}

func TestAggregate_overSell(t *testing.T) {
	trades := []Trade{
		buy("2025-01-01", "AAPL", 5, 100),
		sell("2025-01-02", "AAPL", 10, 100),
	}

	t.Run("rejected by default", func(t *testing.T) {
		_, _, err := Aggregate(trades, false)
		var dataErr *DataError
		if !errors.As(err, &dataErr) {
			t.Fatalf("Aggregate() error = %v, want *DataError", err)
		}
		if dataErr.Symbol != "AAPL" || dataErr.Date != day("2025-01-02") {
			t.Errorf("DataError names %q on %s, want AAPL on 2025-01-02", dataErr.Symbol, dataErr.Date)
		}
	})

	t.Run("allowed when short selling is on", func(t *testing.T) {
		positions, _, err := Aggregate(trades, true)
		if err != nil {
			t.Fatalf("Aggregate() error = %v", err)
		}
		if got, want := positions["AAPL"].Quantity, dec(-5); !got.Equal(want) {
			t.Errorf("Quantity = %v, want %v", got, want)
		}
	})
}

func TestAggregate_fullClose(t *testing.T) {
	trades := []Trade{
		buy("2025-01-01", "AAPL", 10, 100),
		sell("2025-01-05", "AAPL", 10, 110),
	}
	positions, _, err := Aggregate(trades, false)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	pos := positions["AAPL"]
	if pos == nil {
		t.Fatal("closed position should stay in the result")
	}
	if pos.Open() {
		t.Errorf("Open() = true for a fully closed position, Quantity = %v", pos.Quantity)
	}
}

func TestAggregate_buyCoveringShortExactly(t *testing.T) {
	trades := []Trade{
		sell("2025-01-01", "AAPL", 5, 100),
		buy("2025-01-02", "AAPL", 5, 90),
	}
	positions, _, err := Aggregate(trades, true)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	pos := positions["AAPL"]
	if !pos.Quantity.IsZero() {
		t.Errorf("Quantity = %v, want 0", pos.Quantity)
	}
	if !pos.AvgCost.Equal(decimal.Zero) {
		t.Errorf("AvgCost = %v, want 0 after flat cover", pos.AvgCost)
	}
}

func TestAggregate_unorderedInput(t *testing.T) {
	// Aggregate must fold chronologically even when trades arrive shuffled.
	trades := []Trade{
		sell("2025-01-10", "AAPL", 5, 120),
		buy("2025-01-01", "AAPL", 10, 100),
	}
	positions, flows, err := Aggregate(trades, false)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if got, want := positions["AAPL"].Quantity, dec(5); !got.Equal(want) {
		t.Errorf("Quantity = %v, want %v", got, want)
	}
	if flows[0].Date != day("2025-01-01") {
		t.Errorf("first flow on %s, want 2025-01-01", flows[0].Date)
	}
}
