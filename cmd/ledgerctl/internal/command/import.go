package command

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/MrJamesThe3rd/duo/internal/importer"
)

type importCmd struct {
	format string
	actor  string
	dryRun bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "append records from CSV exports" }
func (*importCmd) Usage() string {
	return `ledgerctl import [-format auto|canonical|legacy] [-actor <name>] [-n] <file.csv>...

  Reads CSV files in any common encoding and appends the records whose ID is
  not in the ledger yet. Invalid rows are reported and skipped.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", string(importer.FormatAuto), "header layout of the files")
	f.StringVar(&c.actor, "actor", "", "participant recorded as creator (defaults to APP_ACTOR)")
	f.BoolVar(&c.dryRun, "n", false, "parse only, do not write")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	a, err := open(ctx)
	if err != nil {
		return fail("Error opening ledger: %v", err)
	}
	defer a.Close()

	actor := c.actor
	if actor == "" {
		actor = a.Config.Actor()
	}

	for _, path := range f.Args() {
		if err := c.importFile(ctx, a.Imports, path, actor); err != nil {
			return fail("Error importing %s: %v", path, err)
		}
	}

	return subcommands.ExitSuccess
}

func (c *importCmd) importFile(ctx context.Context, svc *importer.Service, path, actor string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	format := importer.Format(c.format)

	if c.dryRun {
		parsed, err := svc.Parse(format, file)
		if err != nil {
			return err
		}

		fmt.Printf("%s: %d rows, %s layout, %s\n", path, len(parsed.Rows), parsed.Profile, parsed.Charset)

		return nil
	}

	res, err := svc.Import(ctx, format, file, actor)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d imported, %d already present, %d rejected\n", path, res.Imported, res.Skipped, len(res.Rejected))

	for _, rej := range res.Rejected {
		fmt.Printf("  row %d: %v\n", rej.Line, rej.Err)
	}

	return nil
}
