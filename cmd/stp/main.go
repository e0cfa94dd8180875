package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/google/subcommands"

	"github.com/sslteam/stp/cmd/internal/history"
	"github.com/sslteam/stp/cmd/internal/rate"
	"github.com/sslteam/stp/cmd/internal/serve"
	"github.com/sslteam/stp/cmd/internal/simulate"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")

	subcommands.Register(&simulate.Command{}, "")
	subcommands.Register(&history.Command{}, "")
	subcommands.Register(&serve.Command{}, "")
	subcommands.Register(&rate.Command{}, "")

	flag.Parse()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(int(subcommands.Execute(ctx)))
}
