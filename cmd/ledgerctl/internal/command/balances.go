package command

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"

	"github.com/MrJamesThe3rd/duo/internal/ledger"
)

type balancesCmd struct{}

func (*balancesCmd) Name() string     { return "balances" }
func (*balancesCmd) Synopsis() string { return "show each participant's income, expense and transfers" }
func (*balancesCmd) Usage() string {
	return `ledgerctl balances

  Prints the per-participant balance over every non-voided record.
`
}

func (*balancesCmd) SetFlags(*flag.FlagSet) {}

func (*balancesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	a, err := open(ctx)
	if err != nil {
		return fail("Error opening ledger: %v", err)
	}
	defer a.Close()

	snap, err := a.Records.Refresh(ctx)
	if err != nil {
		return fail("Error reading ledger: %v", err)
	}

	participants := a.Records.Participants()
	balances := ledger.Balances(snap.Transactions, participants)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Person\tIncome\tExpense\tIn\tOut\tNet\t")

	for _, p := range participants {
		b := balances[p]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n", p,
			ledger.FormatAmount(b.Income), ledger.FormatAmount(b.Expense),
			ledger.FormatAmount(b.TransfersIn), ledger.FormatAmount(b.TransfersOut),
			signed(b.Net()))
	}

	if err := tw.Flush(); err != nil {
		return fail("Error writing output: %v", err)
	}

	if len(snap.Issues) > 0 {
		fmt.Fprintf(os.Stderr, "%d malformed values were replaced with defaults\n", len(snap.Issues))
	}

	return subcommands.ExitSuccess
}

func signed(n int64) string {
	if n < 0 {
		return "-" + ledger.FormatAmount(-n)
	}

	return ledger.FormatAmount(n)
}
