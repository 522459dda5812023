package main

import (
	"net"
	"net/http"
	"os"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	cmn "github.com/tendermint/tendermint/libs/common"

	"github.com/ledger-dex/node/app/config"
	"github.com/ledger-dex/node/plugins/api"
)

const (
	flagBlocks         = "blocks"
	flagPrometheusAddr = "prometheus-addr"
)

func startCmd(ctx *config.LedgerContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Replay a block file and serve the query api",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := ctx.Logger
			ledger, err := openLedger(ctx)
			if err != nil {
				return err
			}
			setupPublisher(ctx, ledger)

			var listeners []net.Listener
			if ctx.Config.APIConfig.Enabled {
				handler := api.NewHandler(ledger, ledger.AccountKeeper, ledger.AssetMapper, ctx.Config.APIConfig, logger.With("module", "api"))
				listener, err := api.Serve(handler, ctx.Config.APIConfig, logger.With("module", "api"))
				if err != nil {
					return errors.Wrap(err, "failed to start api server")
				}
				listeners = append(listeners, listener)
			}
			if addr := viper.GetString(flagPrometheusAddr); addr != "" {
				srv := &http.Server{
					Addr: addr,
					Handler: promhttp.InstrumentMetricHandler(
						prometheus.DefaultRegisterer, promhttp.HandlerFor(
							prometheus.DefaultGatherer,
							promhttp.HandlerOpts{MaxRequestsInFlight: 10},
						),
					),
				}
				go func() {
					if err := srv.ListenAndServe(); err != http.ErrServerClosed {
						logger.Error("prometheus server stopped", "err", err)
					}
				}()
			}

			if blocks := viper.GetString(flagBlocks); blocks != "" {
				f, err := os.Open(blocks)
				if err != nil {
					return err
				}
				applied, err := applyBlocks(ledger, f, nil)
				f.Close()
				if err != nil {
					return err
				}
				logger.Info("replayed blocks", "applied", applied, "height", ledger.LastBlockHeight())
			}

			// wait forever and cleanup
			cmn.TrapSignal(logger, func() {
				ledger.StopPublisher()
				for _, l := range listeners {
					if err := l.Close(); err != nil {
						logger.Error("error closing listener", "err", err)
					}
				}
			})
			select {}
		},
	}
	cmd.Flags().String(flagBlocks, "", "json lines block file to replay before serving")
	cmd.Flags().String(flagPrometheusAddr, "", "address to expose prometheus metrics on, empty to disable")
	viper.BindPFlag(flagBlocks, cmd.Flags().Lookup(flagBlocks))
	viper.BindPFlag(flagPrometheusAddr, cmd.Flags().Lookup(flagPrometheusAddr))
	return cmd
}
