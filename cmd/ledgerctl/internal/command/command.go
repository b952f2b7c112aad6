// Package command holds the ledgerctl subcommands.
package command

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/MrJamesThe3rd/duo/internal/app"
	"github.com/MrJamesThe3rd/duo/internal/config"
	"github.com/MrJamesThe3rd/duo/internal/ledger"
	"github.com/MrJamesThe3rd/duo/internal/record"
)

// Commands lists every subcommand in help order.
var Commands = []subcommands.Command{
	&balancesCmd{},
	&settleCmd{},
	&reportCmd{},
	&migrateCmd{},
	&importCmd{},
	&exportCmd{},
	&tokenCmd{},
}

// open loads the configuration from the environment and wires the services.
func open(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	return app.New(ctx, cfg)
}

func fail(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	return subcommands.ExitFailure
}

// filterFlags are the record filter options shared by several commands.
type filterFlags struct {
	person   string
	kind     string
	method   string
	from     string
	to       string
	withVoid bool
}

func (f *filterFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.person, "person", "", "only records involving this participant")
	fs.StringVar(&f.kind, "kind", "", "only records of this kind (income, expense, transfer)")
	fs.StringVar(&f.method, "method", "", "only records paid with this payment method")
	fs.StringVar(&f.from, "from", "", "first day, YYYY-MM-DD")
	fs.StringVar(&f.to, "to", "", "last day, YYYY-MM-DD")
	fs.BoolVar(&f.withVoid, "voided", false, "include voided records")
}

func (f *filterFlags) filter(loc *time.Location) (record.Filter, error) {
	out := record.Filter{
		Person:        f.person,
		Kind:          ledger.Kind(f.kind),
		PaymentMethod: f.method,
		IncludeVoided: f.withVoid,
	}

	if out.Kind != "" && !out.Kind.Valid() {
		return out, fmt.Errorf("unknown kind %q", f.kind)
	}

	for _, d := range []struct {
		raw string
		dst **time.Time
	}{{f.from, &out.From}, {f.to, &out.To}} {
		if d.raw == "" {
			continue
		}

		t, err := time.ParseInLocation(time.DateOnly, d.raw, loc)
		if err != nil {
			return out, fmt.Errorf("invalid date %q: %w", d.raw, err)
		}

		*d.dst = &t
	}

	return out, nil
}
