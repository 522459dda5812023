package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ledger-dex/node/app"
	"github.com/ledger-dex/node/app/config"
	"github.com/ledger-dex/node/plugins/assets"
)

func initCmd(ctx *config.LedgerContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default app.toml and an empty genesis file into the home directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.Config
			configFile := filepath.Join(cfg.HomeDir, config.ConfigDir, config.AppConfigFileName+".toml")
			if _, err := os.Stat(configFile); err == nil {
				return errors.Errorf("%s already exists", configFile)
			}
			if err := config.WriteConfigFile(configFile, cfg); err != nil {
				return err
			}

			genesisFile := cfg.ResolvePath(cfg.GenesisFile)
			if _, err := os.Stat(genesisFile); os.IsNotExist(err) {
				genesis := app.GenesisState{
					GenesisTime: time.Now().UTC().Truncate(time.Second),
					Assets:      assets.GenesisState{},
				}
				bz, err := json.MarshalIndent(genesis, "", "  ")
				if err != nil {
					return err
				}
				if err := os.WriteFile(genesisFile, bz, 0644); err != nil {
					return errors.Wrap(err, "failed to write genesis file")
				}
			}
			fmt.Println("initialized", cfg.HomeDir)
			return nil
		},
	}
	return cmd
}
