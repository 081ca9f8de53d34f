package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/firetruck-io/firetruck-go/internal/config"
	"github.com/firetruck-io/firetruck-go/pkg/firetruck"
	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "firetruck: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(&cli{out: os.Stdout, loadConfig: config.Load})
	return root.ExecuteContext(ctx)
}

// cli carries the dependencies shared by every command.
type cli struct {
	out        io.Writer
	loadConfig func() (*config.Config, error)
	// clientOpts are appended to the config-derived client options.
	clientOpts []firetruck.Option
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "firetruck",
		Short:         "Call the FireTruck API from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(c.out)

	for _, method := range firetruck.ValidMethods() {
		root.AddCommand(newRequestCmd(c, method))
	}
	root.AddCommand(newHistoryCmd(c))
	return root
}
