package api

import (
	"github.com/gorilla/mux"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/ledger-dex/node/app/config"
	"github.com/ledger-dex/node/common/account"
	hnd "github.com/ledger-dex/node/plugins/api/handlers"
	"github.com/ledger-dex/node/plugins/assets/store"
)

const (
	maxDepthLevels = 1000
	maxTrades      = 100
)

type server struct {
	router *mux.Router
	logger log.Logger

	// settings
	maxDepthLevels int

	// handler dependencies
	querier  hnd.Querier
	name     string
	accounts account.Keeper
	assets   store.Mapper
}

// Ledger is what the api needs from the running ledger.
type Ledger interface {
	hnd.Querier
	Name() string
}

// newServer provides a new server structure.
func newServer(ledger Ledger, accounts account.Keeper, assets store.Mapper, cfg *config.APIConfig, logger log.Logger) *server {
	levels := cfg.MaxDepthLevels
	if levels <= 0 || levels > maxDepthLevels {
		levels = maxDepthLevels
	}
	return &server{
		router:         mux.NewRouter(),
		logger:         logger,
		maxDepthLevels: levels,
		querier:        ledger,
		name:           ledger.Name(),
		accounts:       accounts,
		assets:         assets,
	}
}
