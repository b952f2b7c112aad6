package command

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/MrJamesThe3rd/duo/internal/ledger"
)

type settleCmd struct {
	verbose bool
}

func (*settleCmd) Name() string     { return "settle" }
func (*settleCmd) Synopsis() string { return "show who owes whom on shared expenses" }
func (*settleCmd) Usage() string {
	return `ledgerctl settle [-v]

  Nets the shared expenses and prints the transfers that even them out.
`
}

func (c *settleCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.verbose, "v", false, "also print what each participant paid and owes")
}

func (c *settleCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	a, err := open(ctx)
	if err != nil {
		return fail("Error opening ledger: %v", err)
	}
	defer a.Close()

	snap, err := a.Records.Refresh(ctx)
	if err != nil {
		return fail("Error reading ledger: %v", err)
	}

	s := ledger.Settle(snap.Transactions, a.Records.Participants())

	if c.verbose {
		fmt.Printf("Shared expenses: %s\n", ledger.FormatAmount(s.TotalShared))

		for _, p := range s.Positions {
			fmt.Printf("  %s paid %s, owes %s, balance %s\n",
				p.Person, ledger.FormatAmount(p.Paid), ledger.FormatAmount(p.Owed), signed(p.Balance))
		}
	}

	if len(s.Transfers) == 0 {
		fmt.Println("All settled.")
		return subcommands.ExitSuccess
	}

	for _, t := range s.Transfers {
		fmt.Printf("%s pays %s %s\n", t.From, t.To, ledger.FormatAmount(t.Amount))
	}

	return subcommands.ExitSuccess
}
