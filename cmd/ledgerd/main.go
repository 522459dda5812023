package main

import (
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/ledger-dex/node/app/config"
	bnclog "github.com/ledger-dex/node/common/log"
	"github.com/ledger-dex/node/version"
)

const (
	flagHome = "home"

	defaultHome = "~/.ledgerd"
)

func main() {
	ctx := config.NewDefaultContext()
	rootCmd := &cobra.Command{
		Use:               "ledgerd",
		Short:             "Ledger Daemon (asset exchange with maker/taker fees)",
		SilenceUsage:      true,
		PersistentPreRunE: persistentPreRunEFn(ctx),
	}
	rootCmd.PersistentFlags().String(flagHome, defaultHome, "directory for config and data")
	if err := viper.BindPFlag(flagHome, rootCmd.PersistentFlags().Lookup(flagHome)); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(
		initCmd(ctx),
		startCmd(ctx),
		applyCmd(ctx),
		versionCmd,
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the app version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Version)
	},
}

func persistentPreRunEFn(ctx *config.LedgerContext) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == versionCmd.Name() {
			return nil
		}
		home, err := homedir.Expand(viper.GetString(flagHome))
		if err != nil {
			return err
		}
		if _, err := ctx.ParseConfig(home); err != nil {
			return err
		}

		logger, err := newLogger(ctx.Config)
		if err != nil {
			return err
		}
		logger = logger.With("module", "main")
		bnclog.InitLogger(logger)
		ctx.Logger = logger
		return nil
	}
}

func newLogger(cfg *config.LedgerConfig) (log.Logger, error) {
	logger := bnclog.NewConsoleLogger()
	if !cfg.LogToConsole {
		logger, _ = bnclog.NewFileLogger(cfg.ResolvePath(cfg.LogFilePath), cfg.LogFileMaxSize, cfg.LogFileMaxBackups)
	}
	return bnclog.WithLevel(logger, cfg.LogLevel)
}
