package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"tradegains"
	"tradegains/report"
	"tradegains/webull"
)

type flowsCmd struct{}

func (*flowsCmd) Name() string     { return "flows" }
func (*flowsCmd) Synopsis() string { return "show the external cash-flow series" }
func (*flowsCmd) Usage() string {
	return `tg flows

  Print the dated external cash flows: the configured transfers when
  present, the trade-implied flows otherwise.
`
}

func (*flowsCmd) SetFlags(f *flag.FlagSet) {}

func (c *flowsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	var flows []tradegains.CashFlow
	if cfg.Transfers.Enabled() {
		flows, err = webull.LoadTransfers(cfg.Transfers.Folder, cfg.Transfers.Patterns)
	} else {
		var trades []tradegains.Trade
		trades, err = webull.LoadOrders(cfg.Trades.Folder, cfg.Trades.Patterns)
		if err == nil {
			_, flows, err = tradegains.Aggregate(trades, cfg.Analysis.AllowShortSelling)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(report.FlowsMarkdown(flows))
	return subcommands.ExitSuccess
}
