package command

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
)

type exportCmd struct {
	filterFlags

	output  string
	archive bool
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write records as CSV, optionally archiving a snapshot" }
func (*exportCmd) Usage() string {
	return `ledgerctl export [-o <file>] [-archive] [filters]

  Writes the matching records, newest first, under the canonical headers.
  With -archive the snapshot is uploaded to the configured archive instead.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	c.register(f)
	f.StringVar(&c.output, "o", "", "output file (default stdout)")
	f.BoolVar(&c.archive, "archive", false, "upload to ARCHIVE_BACKEND")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	a, err := open(ctx)
	if err != nil {
		return fail("Error opening ledger: %v", err)
	}
	defer a.Close()

	filter, err := c.filter(a.Records.Location())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	if c.archive {
		if a.Archive == nil {
			return fail("ARCHIVE_BACKEND is not configured")
		}

		name, err := a.Reports.Archive(ctx, filter, a.Archive)
		if err != nil {
			return fail("Error archiving export: %v", err)
		}

		fmt.Printf("Archived %s\n", name)

		return subcommands.ExitSuccess
	}

	var w io.Writer = os.Stdout

	if c.output != "" {
		file, err := os.Create(c.output)
		if err != nil {
			return fail("Error creating %s: %v", c.output, err)
		}
		defer file.Close()

		w = file
	}

	n, err := a.Reports.Export(ctx, filter, w)
	if err != nil {
		return fail("Error exporting: %v", err)
	}

	if c.output != "" {
		fmt.Printf("Wrote %d records to %s\n", n, c.output)
	}

	return subcommands.ExitSuccess
}
