package report

import (
	"bytes"
	"sort"

	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"

	"tradegains"
)

// HoldingsMarkdown renders per-symbol positions as a markdown table.
// Closed positions are listed with a zero quantity so the full trading
// history stays visible.
func HoldingsMarkdown(positions map[string]*tradegains.Position) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Holdings")
	if len(positions) == 0 {
		doc.PlainText("No positions.")
		return doc.String()
	}
	doc.Table(positionsTable(positions, false))
	return doc.String()
}

// positionsTable builds the Symbol/Quantity/Avg Cost/Cost Basis table
// with a bold total row. openOnly drops fully closed positions.
func positionsTable(positions map[string]*tradegains.Position, openOnly bool) md.TableSet {
	symbols := make([]string, 0, len(positions))
	for s, p := range positions {
		if openOnly && !p.Open() {
			continue
		}
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Symbol", "Quantity", "Avg Cost", "Cost Basis"},
	}
	var total decimal.Decimal
	for _, s := range symbols {
		p := positions[s]
		table.Rows = append(table.Rows, []string{
			p.Symbol,
			p.Quantity.String(),
			tradegains.USD(p.AvgCost).String(),
			tradegains.USD(p.CostBasis()).String(),
		})
		total = total.Add(p.CostBasis())
	}
	table.Rows = append(table.Rows, []string{
		md.Bold("Total"), "", "", md.Bold(tradegains.USD(total).String()),
	})
	return table
}
