package api

import (
	"net"
	"net/http"

	"github.com/tendermint/tendermint/libs/log"
	tmserver "github.com/tendermint/tendermint/rpc/lib/server"

	"github.com/ledger-dex/node/app/config"
	"github.com/ledger-dex/node/common/account"
	"github.com/ledger-dex/node/plugins/assets/store"
)

const maxOpenConnections = 100

// NewHandler builds the query api router over ledger.
func NewHandler(ledger Ledger, accounts account.Keeper, assets store.Mapper, cfg *config.APIConfig, logger log.Logger) http.Handler {
	return newServer(ledger, accounts, assets, cfg, logger).bindRoutes().router
}

// Serve starts the query api in the background. Closing the returned listener stops it.
func Serve(handler http.Handler, cfg *config.APIConfig, logger log.Logger) (net.Listener, error) {
	tmCfg := tmserver.DefaultConfig()
	tmCfg.MaxOpenConnections = maxOpenConnections
	listener, err := tmserver.Listen("tcp://"+cfg.ServerAddress, tmCfg)
	if err != nil {
		return nil, err
	}
	go func() {
		// wrap to handle the error
		if err := tmserver.StartHTTPServer(listener, handler, logger, tmCfg); err != nil {
			logger.Error("api server stopped", "err", err)
		}
	}()
	logger.Info("REST server started", "addr", cfg.ServerAddress)
	return listener, nil
}
