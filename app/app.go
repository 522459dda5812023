package app

import (
	"encoding/binary"
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/cosmos/cosmos-sdk/store"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/pkg/errors"
	"github.com/tendermint/iavl"
	abci "github.com/tendermint/tendermint/abci/types"
	dbm "github.com/tendermint/tendermint/libs/db"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/ledger-dex/node/app/config"
	"github.com/ledger-dex/node/app/pub"
	"github.com/ledger-dex/node/app/router"
	"github.com/ledger-dex/node/common"
	"github.com/ledger-dex/node/common/account"
	"github.com/ledger-dex/node/common/upgrade"
	"github.com/ledger-dex/node/common/utils"
	"github.com/ledger-dex/node/plugins/assets"
	assetStore "github.com/ledger-dex/node/plugins/assets/store"
	"github.com/ledger-dex/node/plugins/dex"
	"github.com/ledger-dex/node/plugins/dex/matcheng"
	"github.com/ledger-dex/node/plugins/dex/order"
	"github.com/ledger-dex/node/wire"
)

const (
	appName = "Ledger"

	recentFillsCapacity = 1000
)

var lastBlockTimeKey = []byte("lastBlockTime")

// LedgerApp applies blocks of transactions to the ledger state.
// Blocks are applied one message at a time; the query side shares the working state under mtx.
type LedgerApp struct {
	mtx    sync.RWMutex
	cdc    *wire.Codec
	cms    sdk.CommitMultiStore
	router router.Router
	gate   *upgrade.Gate
	logger log.Logger

	AccountKeeper account.Keeper
	AssetMapper   assetStore.Mapper
	DexKeeper     *order.Keeper

	publicationConfig *config.PublicationConfig
	publisher         pub.MarketDataPublisher
	metrics           *pub.Metrics

	// fills of the latest committed blocks, oldest first
	recentFills *utils.Ring[matcheng.Fill]
	// committed versions of the account store
	accountHistory *iavl.MutableTree

	// block being applied
	deliverCtx sdk.Context
	inBlock    bool
}

// NewLedgerApp opens the committed state in db and recovers the order books.
func NewLedgerApp(logger log.Logger, db dbm.DB, cfg *config.LedgerConfig) (*LedgerApp, error) {
	pruning, err := cfg.PruningStrategy()
	if err != nil {
		return nil, err
	}
	cms := store.NewCommitMultiStore(db)
	for _, key := range common.StoreKeys {
		cms.MountStoreWithDB(key, sdk.StoreTypeIAVL, nil)
	}
	cms.SetPruning(pruning)
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "failed to load the state")
	}

	cdc := MakeCodec()
	app := &LedgerApp{
		cdc:               cdc,
		cms:               cms,
		router:            router.NewRouter(),
		gate:              upgrade.NewGate(upgrade.FromUnix(cfg.MakerTakerFeeTime)),
		logger:            logger.With("module", "app"),
		AccountKeeper:     account.NewKeeper(cdc, common.AccountStoreKey),
		AssetMapper:       assetStore.NewMapper(cdc, common.AssetStoreKey),
		publicationConfig: cfg.PublicationConfig,
		recentFills:       utils.NewRing[matcheng.Fill](recentFillsCapacity),
		accountHistory:    iavl.NewMutableTree(dbm.NewPrefixDB(db, storePrefix(common.AccountStoreName)), cfg.CacheSize),
	}
	app.DexKeeper = order.NewKeeper(cdc, common.DexStoreKey, app.AccountKeeper, app.AssetMapper, app.gate, logger)

	for r, h := range assets.Routes(app.AssetMapper, app.AccountKeeper, app.gate) {
		app.router.AddRoute(r, h)
	}
	for r, h := range dex.Routes(app.DexKeeper) {
		app.router.AddRoute(r, h)
	}

	count, err := app.DexKeeper.LoadOrderBooks(app.queryContext())
	if err != nil {
		return nil, err
	}
	app.logger.Info("loaded state", "height", app.LastBlockHeight(), "openOrders", count,
		"makerTakerFeeActivation", upgrade.FromUnix(cfg.MakerTakerFeeTime))
	return app, nil
}

// SetPublisher hands every committed block's fills to publisher.
func (app *LedgerApp) SetPublisher(publisher pub.MarketDataPublisher, metrics *pub.Metrics) {
	app.publisher = publisher
	app.metrics = metrics
	pub.Setup(app.logger, app.publicationConfig, metrics, publisher)
}

func (app *LedgerApp) StopPublisher() {
	if app.publisher != nil {
		pub.Stop(app.publisher)
		app.publisher = nil
	}
}

func (app *LedgerApp) Gate() *upgrade.Gate {
	return app.gate
}

// storePrefix is where the commit multistore keeps the nodes of a substore.
func storePrefix(name string) []byte {
	return []byte("s/k:" + name + "/")
}

func (app *LedgerApp) LastBlockHeight() int64 {
	return app.cms.LastCommitID().Version
}

func (app *LedgerApp) LastCommitID() sdk.CommitID {
	return app.cms.LastCommitID()
}

func (app *LedgerApp) mainStore() sdk.KVStore {
	return app.cms.GetKVStore(common.MainStoreKey)
}

func (app *LedgerApp) lastBlockTime() time.Time {
	bz := app.mainStore().Get(lastBlockTimeKey)
	if bz == nil {
		return time.Time{}
	}
	return time.Unix(0, int64(binary.BigEndian.Uint64(bz))).UTC()
}

func (app *LedgerApp) newContext(height int64, blockTime time.Time) sdk.Context {
	header := abci.Header{Height: height, Time: blockTime}
	return sdk.NewContext(app.cms, header, sdk.RunTxModeDeliver, app.logger)
}

func (app *LedgerApp) queryContext() sdk.Context {
	return app.newContext(app.LastBlockHeight(), app.lastBlockTime())
}

// InitChain loads the genesis state. It is only valid on an empty ledger.
func (app *LedgerApp) InitChain(genesis GenesisState) error {
	app.mtx.Lock()
	defer app.mtx.Unlock()
	if app.LastBlockHeight() != 0 {
		return errors.Errorf("ledger already has %d blocks", app.LastBlockHeight())
	}
	ctx := app.newContext(0, genesis.GenesisTime)
	if err := assets.InitGenesis(ctx, app.AssetMapper, app.AccountKeeper, genesis.Assets); err != nil {
		return err
	}
	app.setLastBlockTime(genesis.GenesisTime)
	app.logger.Info("initialized chain", "assets", len(genesis.Assets.Assets), "time", genesis.GenesisTime)
	return nil
}

func (app *LedgerApp) setLastBlockTime(t time.Time) {
	var bz [8]byte
	binary.BigEndian.PutUint64(bz[:], uint64(t.UnixNano()))
	app.mainStore().Set(lastBlockTimeKey, bz[:])
}

// BeginBlock opens the next block. Heights are consecutive and block times never go backwards.
func (app *LedgerApp) BeginBlock(height int64, blockTime time.Time) error {
	app.mtx.Lock()
	defer app.mtx.Unlock()
	if app.inBlock {
		return errors.New("previous block is not committed")
	}
	if expected := app.LastBlockHeight() + 1; height != expected {
		return errors.Errorf("expected block %d, got %d", expected, height)
	}
	if last := app.lastBlockTime(); blockTime.Before(last) {
		return errors.Errorf("block time %v is before the last block time %v", blockTime, last)
	}
	app.deliverCtx = app.newContext(height, blockTime.UTC())
	app.inBlock = true
	app.setLastBlockTime(blockTime)
	return nil
}

// DeliverTx decodes and applies one json tx.
func (app *LedgerApp) DeliverTx(txBytes []byte) sdk.Result {
	msg, err := DecodeTx(txBytes)
	if err != nil {
		return sdk.ErrTxDecode(err.Error()).Result()
	}
	return app.DeliverMsg(msg)
}

// DeliverMsg applies msg on a cache of the block state. Its writes and book changes are kept only if it succeeds.
func (app *LedgerApp) DeliverMsg(msg sdk.Msg) (result sdk.Result) {
	app.mtx.Lock()
	defer app.mtx.Unlock()
	if !app.inBlock {
		return sdk.ErrInternal("no block in progress").Result()
	}
	if err := msg.ValidateBasic(); err != nil {
		return err.Result()
	}
	handler := app.router.Route(msg.Route())
	if handler == nil {
		return sdk.ErrUnknownRequest(fmt.Sprintf("Unrecognized msg route: %s", msg.Route())).Result()
	}

	cache := app.deliverCtx.MultiStore().CacheMultiStore()
	ctx := app.deliverCtx.WithMultiStore(cache)
	defer func() {
		if r := recover(); r != nil {
			app.DexKeeper.DropPendingBookUpdates()
			app.logger.Error("msg panicked", "msg", msg.Route(), "err", r, "stack", string(debug.Stack()))
			result = sdk.ErrInternal(fmt.Sprintf("msg panicked: %v", r)).Result()
		}
	}()

	result = handler(ctx, msg)
	if !result.IsOK() {
		app.DexKeeper.DropPendingBookUpdates()
		app.logger.Debug("msg rejected", "msg", msg.Route(), "log", result.Log)
		return result
	}
	cache.Write()
	app.DexKeeper.ApplyPendingBookUpdates()
	return result
}

// EndBlock runs the end of block hooks and returns the assets whose taker fee was normalized.
func (app *LedgerApp) EndBlock() []string {
	app.mtx.Lock()
	defer app.mtx.Unlock()
	return assets.EndBlocker(app.deliverCtx, app.AssetMapper, app.gate)
}

// Commit persists the block and hands its fills to the publisher.
func (app *LedgerApp) Commit() (sdk.CommitID, error) {
	app.mtx.Lock()
	defer app.mtx.Unlock()
	if !app.inBlock {
		return sdk.CommitID{}, errors.New("no block in progress")
	}
	id := app.cms.Commit()
	app.inBlock = false
	fills := app.DexKeeper.PopRoundFills()
	app.recentFills.Push(fills...)
	app.logger.Info("committed block", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash), "fills", len(fills))

	if app.publisher != nil && pub.IsLive {
		pub.ToPublishCh <- pub.NewBlockInfoToPublish(id.Version, app.deliverCtx.BlockHeader().Time.UnixNano()/int64(time.Millisecond), fills)
	}
	return id, nil
}

// WithQueryContext runs fn against the current state under the read lock.
func (app *LedgerApp) WithQueryContext(fn func(ctx sdk.Context)) {
	app.mtx.RLock()
	defer app.mtx.RUnlock()
	ctx := app.queryContext()
	if app.inBlock {
		ctx = app.deliverCtx
	}
	fn(ctx)
}

// BalanceAt reads the balance of addr in denom as committed at height.
func (app *LedgerApp) BalanceAt(addr sdk.AccAddress, denom string, height int64) (int64, error) {
	app.mtx.RLock()
	defer app.mtx.RUnlock()
	if last := app.LastBlockHeight(); height <= 0 || height > last {
		return 0, errors.Errorf("height %d is not committed, last is %d", height, last)
	}
	tree, err := app.accountHistory.GetImmutable(height)
	if err != nil {
		return 0, errors.Wrapf(err, "state of height %d is not kept", height)
	}
	return app.AccountKeeper.GetBalanceAt(tree, addr, strings.ToUpper(denom)), nil
}

// OrderBook returns the depth of a market under the read lock.
func (app *LedgerApp) OrderBook(pair string, maxLevels int) (buys, sells []matcheng.PriceLevel) {
	app.mtx.RLock()
	defer app.mtx.RUnlock()
	return app.DexKeeper.GetOrderBookLevels(pair, maxLevels)
}

func (app *LedgerApp) OpenOrders(addr sdk.AccAddress) []matcheng.LimitOrder {
	app.mtx.RLock()
	defer app.mtx.RUnlock()
	return app.DexKeeper.GetOpenOrders(addr)
}

// RecentFills returns the latest committed fills of pair, newest first, at most limit of them.
func (app *LedgerApp) RecentFills(pair string, limit int) []matcheng.Fill {
	app.mtx.RLock()
	defer app.mtx.RUnlock()
	all := app.recentFills.Elements()
	res := make([]matcheng.Fill, 0)
	for i := len(all) - 1; i >= 0 && len(res) < limit; i-- {
		if all[i].Pair == pair {
			res = append(res, all[i])
		}
	}
	return res
}

func (app *LedgerApp) Pairs() []string {
	app.mtx.RLock()
	defer app.mtx.RUnlock()
	return app.DexKeeper.GetPairs()
}

func (app *LedgerApp) Name() string {
	return appName
}
