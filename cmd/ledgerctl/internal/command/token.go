package command

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type tokenCmd struct{}

func (*tokenCmd) Name() string     { return "token" }
func (*tokenCmd) Synopsis() string { return "issue an API bearer token for a participant" }
func (*tokenCmd) Usage() string {
	return `ledgerctl token <participant>

  Signs a token with AUTH_SECRET that lets the participant use the API.
`
}

func (*tokenCmd) SetFlags(*flag.FlagSet) {}

func (*tokenCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	a, err := open(ctx)
	if err != nil {
		return fail("Error opening ledger: %v", err)
	}
	defer a.Close()

	if a.Config.Auth.Secret == "" {
		return fail("AUTH_SECRET is not set")
	}

	token, err := a.Tokens.Issue(f.Arg(0))
	if err != nil {
		return fail("Error issuing token: %v", err)
	}

	fmt.Println(token)

	return subcommands.ExitSuccess
}
