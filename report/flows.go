package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"tradegains"
)

// FlowsMarkdown renders a dated cash-flow series. Amounts follow the
// account convention, so deposits carry a negative sign in the data; they
// are displayed unsigned with an explicit direction column instead.
func FlowsMarkdown(flows []tradegains.CashFlow) string {
	var b strings.Builder

	fmt.Fprint(&b, "# External Cash Flows\n\n")
	if len(flows) == 0 {
		fmt.Fprintln(&b, "No external cash flows recorded.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Date | Direction | Amount |")
	fmt.Fprintln(&b, "|:---|:---|---:|")

	var net decimal.Decimal
	for _, f := range flows {
		direction := "deposit"
		if f.Amount.IsPositive() {
			direction = "withdrawal"
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", f.Date, direction, tradegains.USD(f.Amount.Abs()).String())
		net = net.Add(f.Amount)
	}
	fmt.Fprintf(&b, "| **Net Invested** | | **%s** |\n", tradegains.USD(net.Neg()).String())

	return b.String()
}
