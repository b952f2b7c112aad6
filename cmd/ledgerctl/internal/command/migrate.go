package command

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"
)

type migrateCmd struct{}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "append missing columns to the row source header" }
func (*migrateCmd) Usage() string {
	return `ledgerctl migrate

  Adds the ledger columns missing from the header row. Existing columns are
  never removed or reordered, so running it twice is harmless.
`
}

func (*migrateCmd) SetFlags(*flag.FlagSet) {}

func (*migrateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	a, err := open(ctx)
	if err != nil {
		return fail("Error opening ledger: %v", err)
	}
	defer a.Close()

	added, err := a.Records.Migrate(ctx)
	if err != nil {
		return fail("Error migrating headers: %v", err)
	}

	if len(added) == 0 {
		fmt.Println("Headers are up to date.")
		return subcommands.ExitSuccess
	}

	fmt.Printf("Added %d columns: %s\n", len(added), strings.Join(added, ", "))

	return subcommands.ExitSuccess
}
