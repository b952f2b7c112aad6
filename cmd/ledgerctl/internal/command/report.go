package command

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/MrJamesThe3rd/duo/internal/report"
)

type reportCmd struct {
	raw   bool
	width int
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "print the ledger summary report" }
func (*reportCmd) Usage() string {
	return `ledgerctl report [-raw] [-width <n>]

  Prints balances, settlement and statistics. The markdown is rendered for
  the terminal unless -raw is given.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "print plain markdown")
	f.IntVar(&c.width, "width", 100, "word wrap width")
}

func (c *reportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	a, err := open(ctx)
	if err != nil {
		return fail("Error opening ledger: %v", err)
	}
	defer a.Close()

	summary, err := a.Reports.Summary(ctx)
	if err != nil {
		return fail("Error building report: %v", err)
	}

	md := report.Markdown(summary)
	if c.raw {
		fmt.Print(md)
		return subcommands.ExitSuccess
	}

	out, err := report.Render(md, c.width)
	if err != nil {
		return fail("Error rendering report: %v", err)
	}

	fmt.Print(out)

	return subcommands.ExitSuccess
}
