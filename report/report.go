// Package report renders analysis results to markdown. The output is
// plain markdown so it can be written to a file as-is or run through a
// terminal renderer.
package report

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"

	"tradegains"
)

// Filename is the report file written to the output directory.
const Filename = "report.md"

// Markdown renders the full analysis report. A failed metric does not
// abort the render: its rows are omitted and a note names the error, so
// one diverging rate never hides the rest of the report.
func Markdown(a *tradegains.Analysis) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Performance Report from %s to %s", a.Window.From, a.Window.To))

	if n := len(a.Valuations); n > 0 {
		start, end := a.Valuations[0], a.Valuations[n-1]
		doc.Table(md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignRight,
			},
			Header: []string{
				md.Bold("Ending Value"),
				md.Bold(tradegains.USD(end.Value).String()),
			},
			Rows: [][]string{
				{"Starting Value", tradegains.USD(start.Value).String()},
				{"Trades", fmt.Sprintf("%d", len(a.Trades))},
			},
		})
	}
	if a.CashBasis {
		doc.PlainText("No market prices were available; values are the running cost of open positions, not market value.")
	}

	doc.H2("Returns")
	returns := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Metric", "Return"},
	}
	if a.TWR.Method != "" {
		returns.Rows = append(returns.Rows,
			[]string{"Time-Weighted (cumulative)", a.TWR.Value.SignedString()},
			[]string{"Time-Weighted (annualized)", tradegains.Annualize(a.TWR.Value, a.Window.Days()).SignedString()},
		)
	}
	if a.MWR.Method != "" {
		returns.Rows = append(returns.Rows,
			[]string{"Money-Weighted (annual)", a.MWR.Value.SignedString()},
		)
	}
	doc.Table(returns)
	if a.TWRErr != nil {
		doc.PlainText(fmt.Sprintf("Time-weighted return unavailable: %v.", a.TWRErr))
	}
	if a.MWRErr != nil {
		doc.PlainText(fmt.Sprintf("Money-weighted return unavailable: %v.", a.MWRErr))
	}

	if a.RiskErr == nil {
		doc.H2("Risk")
		doc.Table(md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignRight,
			},
			Header: []string{"Metric", "Value"},
			Rows: [][]string{
				{"Annualized Volatility", a.Risk.AnnualizedVolatility.String()},
				{"Sharpe Ratio", fmt.Sprintf("%.2f", a.Risk.SharpeRatio)},
				{"Max Drawdown", a.Risk.MaxDrawdown.SignedString()},
			},
		})
	}

	if a.BenchmarkSymbol != "" {
		doc.H2(fmt.Sprintf("Benchmark: %s", a.BenchmarkSymbol))
		switch {
		case a.BenchmarkErr != nil:
			doc.PlainText(fmt.Sprintf("Benchmark comparison unavailable: %v.", a.BenchmarkErr))
		case len(a.Benchmark) == 0 || len(a.Growth) == 0:
			doc.PlainText("Not enough overlapping data to compare.")
		default:
			port := a.Growth[len(a.Growth)-1].Return
			bench := a.Benchmark[len(a.Benchmark)-1].Return
			doc.Table(md.TableSet{
				Alignment: []md.TableAlignment{
					md.AlignLeft,
					md.AlignRight,
				},
				Header: []string{"Series", "Cumulative Return"},
				Rows: [][]string{
					{"Portfolio", port.SignedString()},
					{a.BenchmarkSymbol, bench.SignedString()},
					{md.Bold("Difference"), md.Bold((port - bench).SignedString())},
				},
			})
		}
	}

	doc.H2("Open Positions")
	if open := countOpen(a.Positions); open == 0 {
		doc.PlainText("No open positions at the end of the window.")
	} else {
		doc.Table(positionsTable(a.Positions, true))
	}

	if len(a.External) > 0 {
		doc.H2("Cash Flows")
		var in, out decimal.Decimal
		for _, f := range a.External {
			if f.Amount.IsNegative() {
				in = in.Add(f.Amount.Neg())
			} else {
				out = out.Add(f.Amount)
			}
		}
		doc.Table(md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignRight,
			},
			Header: []string{"Flow", "Amount"},
			Rows: [][]string{
				{"Deposits", tradegains.USD(in).String()},
				{"Withdrawals", tradegains.USD(out).String()},
				{md.Bold("Net Invested"), md.Bold(tradegains.USD(in.Sub(out)).String())},
			},
		})
	}

	if len(a.Warnings) > 0 {
		doc.H2("Warnings")
		items := make([]string, len(a.Warnings))
		for i, w := range a.Warnings {
			items[i] = w.String()
		}
		doc.BulletList(items...)
	}

	return doc.String()
}

func countOpen(positions map[string]*tradegains.Position) int {
	n := 0
	for _, p := range positions {
		if p.Open() {
			n++
		}
	}
	return n
}
