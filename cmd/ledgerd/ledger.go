package main

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	dbm "github.com/tendermint/tendermint/libs/db"

	"github.com/ledger-dex/node/app"
	"github.com/ledger-dex/node/app/config"
	"github.com/ledger-dex/node/app/pub"
)

const (
	dbName = "ledger"

	maxBlockLineSize = 64 * 1024 * 1024
)

// openLedger opens the state in the data directory and loads genesis into a fresh one.
func openLedger(ctx *config.LedgerContext) (*app.LedgerApp, error) {
	cfg := ctx.Config
	dataDir := filepath.Join(cfg.HomeDir, config.DataDir)
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, err
	}
	db := dbm.NewDB(dbName, dbm.DBBackendType(cfg.DBBackend), dataDir)
	ledger, err := app.NewLedgerApp(ctx.Logger, db, cfg)
	if err != nil {
		return nil, err
	}
	if ledger.LastBlockHeight() == 0 {
		genesis, err := app.LoadGenesis(cfg.ResolvePath(cfg.GenesisFile))
		if err != nil {
			return nil, err
		}
		if err := ledger.InitChain(genesis); err != nil {
			return nil, errors.Wrap(err, "failed to load genesis")
		}
	}
	return ledger, nil
}

// setupPublisher picks kafka over the local file publisher. Nothing is published when neither is enabled.
func setupPublisher(ctx *config.LedgerContext, ledger *app.LedgerApp) {
	cfg := ctx.Config
	if !cfg.ShouldPublishAny() {
		return
	}
	var publisher pub.MarketDataPublisher
	switch {
	case cfg.PublishKafka:
		publisher = pub.NewKafkaMarketDataPublisher(ctx.Logger, cfg.PublicationConfig)
	case cfg.PublishLocal:
		publisher = pub.NewLocalMarketDataPublisher(cfg.ResolvePath(config.DataDir), ctx.Logger, cfg.PublicationConfig)
	default:
		return
	}
	ledger.SetPublisher(publisher, pub.PrometheusMetrics())
}

// applyBlocks applies every block of a json lines file, skipping the ones already committed.
func applyBlocks(ledger *app.LedgerApp, r io.Reader, onResult func(app.BlockResult) error) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxBlockLineSize)
	applied := 0
	for line := 1; scanner.Scan(); line++ {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var block app.Block
		if err := json.Unmarshal(scanner.Bytes(), &block); err != nil {
			return applied, errors.Wrapf(err, "invalid block on line %d", line)
		}
		if block.Height <= ledger.LastBlockHeight() {
			continue
		}
		res, err := ledger.ApplyBlock(block)
		if err != nil {
			return applied, err
		}
		applied++
		if onResult != nil {
			if err := onResult(res); err != nil {
				return applied, err
			}
		}
	}
	return applied, scanner.Err()
}
