package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ledger-dex/node/app"
	"github.com/ledger-dex/node/app/config"
)

func applyCmd(ctx *config.LedgerContext) *cobra.Command {
	return &cobra.Command{
		Use:   "apply [block file]",
		Short: "Apply a json lines block file and print one result per block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, err := openLedger(ctx)
			if err != nil {
				return err
			}
			setupPublisher(ctx, ledger)
			defer ledger.StopPublisher()

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			enc := json.NewEncoder(cmd.OutOrStdout())
			applied, err := applyBlocks(ledger, f, func(res app.BlockResult) error {
				return enc.Encode(res)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "applied %d blocks, height %d, app hash %X\n",
				applied, ledger.LastBlockHeight(), ledger.LastCommitID().Hash)
			return nil
		},
	}
}
