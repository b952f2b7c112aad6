package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/duo/cmd/ledgerctl/internal/command"
)

func main() {
	_ = godotenv.Load()

	name := path.Base(os.Args[0])

	// Answers shell completion requests and exits when one is pending.
	command.Completion().Complete(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	for _, c := range command.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
