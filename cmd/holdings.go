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

type holdingsCmd struct{}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "show the per-symbol positions" }
func (*holdingsCmd) Usage() string {
	return `tg holdings

  Fold the configured trade exports into per-symbol positions and print
  them, closed positions included.
`
}

func (*holdingsCmd) SetFlags(f *flag.FlagSet) {}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	trades, err := webull.LoadOrders(cfg.Trades.Folder, cfg.Trades.Patterns)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	positions, _, err := tradegains.Aggregate(trades, cfg.Analysis.AllowShortSelling)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(report.HoldingsMarkdown(positions))
	return subcommands.ExitSuccess
}
