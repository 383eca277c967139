// Package cli implements the splitctl command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mmynk/splitledger/internal/ledger"
)

// Opener opens the ledger a command operates on.
type Opener func(ctx context.Context) (*ledger.Ledger, error)

// app carries the ledger between the root hook and the subcommands.
type app struct {
	open   Opener
	ledger *ledger.Ledger
}

// Execute runs splitctl with args. The ledger is opened lazily before the
// subcommand runs and closed afterwards, whether or not the command failed.
// The closing flush outlives a cancelled ctx so an interrupt cannot lose it.
func Execute(ctx context.Context, open Opener, args []string, stdout, stderr io.Writer) error {
	a := &app{open: open}

	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if a.ledger != nil {
		err = errors.Join(err, a.ledger.Close(context.WithoutCancel(ctx)))
	}
	return err
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "splitctl",
		Short:         "Record shared expenses and work out who owes whom",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.open(cmd.Context())
			if err != nil {
				return fmt.Errorf("open ledger: %w", err)
			}
			a.ledger = l
			return nil
		},
	}

	root.AddCommand(
		a.personCommand(),
		a.addCommand(),
		a.balancesCommand(),
		a.historyCommand(),
		a.settleCommand(),
	)
	return root
}
