package order

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
	"github.com/cosmos/cosmos-sdk/store"
	abci "github.com/tendermint/tendermint/abci/types"
	dbm "github.com/tendermint/tendermint/libs/db"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/ledger-dex/node/common"
	"github.com/ledger-dex/node/common/account"
	"github.com/ledger-dex/node/common/testutils"
	"github.com/ledger-dex/node/common/types"
	"github.com/ledger-dex/node/common/upgrade"
	"github.com/ledger-dex/node/plugins/assets"
	"github.com/ledger-dex/node/plugins/assets/issue"
	assetStore "github.com/ledger-dex/node/plugins/assets/store"
	"github.com/ledger-dex/node/plugins/assets/update"
	me "github.com/ledger-dex/node/plugins/dex/matcheng"
	dexTypes "github.com/ledger-dex/node/plugins/dex/types"
	"github.com/ledger-dex/node/wire"
)

var (
	activation = time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
	expiration = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
)

type fixture struct {
	cdc         *wire.Codec
	db          dbm.DB
	ms          sdk.CommitMultiStore
	ctx         sdk.Context
	ak          account.Keeper
	assetMapper assetStore.Mapper
	gate        *upgrade.Gate
	keeper      *Keeper
	handler     sdk.Handler

	jill, izzy, alice, bob sdk.AccAddress
}

func newFixture(t *testing.T) *fixture {
	cdc := wire.NewCodec()
	db, ms := testutils.SetupMultiStoreWithDBForUnitTest()
	f := &fixture{
		cdc:         cdc,
		db:          db,
		ms:          ms,
		ctx:         sdk.NewContext(ms, abci.Header{Height: 1, Time: activation.Add(-time.Hour)}, sdk.RunTxModeDeliver, log.NewNopLogger()),
		ak:          account.NewKeeper(cdc, common.AccountStoreKey),
		assetMapper: assetStore.NewMapper(cdc, common.AssetStoreKey),
		gate:        upgrade.NewGate(activation),
		jill:        testutils.NamedAddr("jill"),
		izzy:        testutils.NamedAddr("izzy"),
		alice:       testutils.NamedAddr("alice"),
		bob:         testutils.NamedAddr("bob"),
	}
	f.keeper = NewKeeper(cdc, common.DexStoreKey, f.ak, f.assetMapper, f.gate, log.NewNopLogger())
	f.handler = NewHandler(f.keeper)

	routes := assets.Routes(f.assetMapper, f.ak, f.gate)
	deliverAsset := func(msg sdk.Msg) {
		require.True(t, f.deliver(routes[msg.Route()], msg).IsOK(), fmt.Sprint(msg))
	}
	deliverAsset(issue.NewIssueMsg(f.jill, "JCOIN", 2, 1000000000, 2*types.OnePercent, true))
	deliverAsset(issue.NewIssueMsg(f.izzy, "ICOIN", 3, 1000000000, 5*types.OnePercent, true))
	deliverAsset(issue.NewMintMsg(f.jill, "JCOIN", 1000000, f.alice))
	deliverAsset(issue.NewMintMsg(f.izzy, "ICOIN", 1000000, f.bob))
	return f
}

// deliver runs one message the way the app does: on a cache, committed only on success.
func (f *fixture) deliver(handler sdk.Handler, msg sdk.Msg) sdk.Result {
	cache := f.ctx.MultiStore().CacheMultiStore()
	res := handler(f.ctx.WithMultiStore(cache), msg)
	if res.IsOK() {
		cache.Write()
		f.keeper.ApplyPendingBookUpdates()
	} else {
		f.keeper.DropPendingBookUpdates()
	}
	return res
}

// tx runs fn on a cache like deliver does and returns its error.
func (f *fixture) tx(fn func(ctx sdk.Context) sdk.Error) sdk.Error {
	cache := f.ctx.MultiStore().CacheMultiStore()
	if err := fn(f.ctx.WithMultiStore(cache)); err != nil {
		f.keeper.DropPendingBookUpdates()
		return err
	}
	cache.Write()
	f.keeper.ApplyPendingBookUpdates()
	return nil
}

func (f *fixture) placeErr(sender sdk.AccAddress, sell, receive sdk.Coin, exp time.Time) sdk.Error {
	return f.tx(func(ctx sdk.Context) sdk.Error {
		_, err := f.keeper.ApplyOrderPlacement(ctx, NewNewOrderMsg(sender, sell, receive, exp))
		return err
	})
}

func (f *fixture) cancelErr(sender sdk.AccAddress, id uint64) sdk.Error {
	return f.tx(func(ctx sdk.Context) sdk.Error {
		return f.keeper.CancelOrder(ctx, NewCancelOrderMsg(sender, id))
	})
}

func (f *fixture) activateTakerFees(t *testing.T) {
	f.ctx = f.ctx.WithBlockTime(activation)
	assets.EndBlocker(f.ctx, f.assetMapper, f.gate)
	routes := assets.Routes(f.assetMapper, f.ak, f.gate)
	for _, msg := range []update.UpdateFeeOptionsMsg{
		update.NewUpdateFeeOptionsMsg(f.jill, "JCOIN", 2*types.OnePercent).WithTakerFeePercent(types.OnePercent),
		update.NewUpdateFeeOptionsMsg(f.izzy, "ICOIN", 5*types.OnePercent).WithTakerFeePercent(250),
	} {
		require.True(t, f.deliver(routes[msg.Route()], msg).IsOK())
	}
}

func (f *fixture) place(t *testing.T, sender sdk.AccAddress, sell, receive sdk.Coin) uint64 {
	res := f.deliver(f.handler, NewNewOrderMsg(sender, sell, receive, expiration))
	require.True(t, res.IsOK(), res.Log)
	var resp NewOrderResponse
	require.NoError(t, json.Unmarshal(res.Data, &resp))
	return resp.OrderID
}

func (f *fixture) balance(addr sdk.AccAddress, denom string) int64 {
	return f.ak.GetBalance(f.ctx, addr, denom)
}

func TestMakerTakerFees(t *testing.T) {
	f := newFixture(t)
	f.activateTakerFees(t)

	aliceOrder := f.place(t, f.alice, sdk.NewCoin("JCOIN", 1000), sdk.NewCoin("ICOIN", 300000))
	require.Equal(t, uint64(1), aliceOrder)
	require.Equal(t, int64(999000), f.balance(f.alice, "JCOIN"))

	bobOrder := f.place(t, f.bob, sdk.NewCoin("ICOIN", 300000), sdk.NewCoin("JCOIN", 1000))
	require.Equal(t, uint64(2), bobOrder)

	// alice is the maker and pays the ICOIN maker fee, bob pays the JCOIN taker fee
	require.Equal(t, int64(300000-15000), f.balance(f.alice, "ICOIN"))
	require.Equal(t, int64(1000-10), f.balance(f.bob, "JCOIN"))
	require.Equal(t, int64(700000), f.balance(f.bob, "ICOIN"))
	require.Equal(t, int64(15000), f.assetMapper.GetAccumulatedFees(f.ctx, "ICOIN"))
	require.Equal(t, int64(10), f.assetMapper.GetAccumulatedFees(f.ctx, "JCOIN"))

	_, open := f.keeper.GetOpenOrder(aliceOrder)
	require.False(t, open)
	_, open = f.keeper.GetOpenOrder(bobOrder)
	require.False(t, open)

	fills := f.keeper.PopRoundFills()
	require.Len(t, fills, 1)
	require.Equal(t, aliceOrder, fills[0].MakerId)
	require.Equal(t, bobOrder, fills[0].TakerId)
	require.Equal(t, sdk.NewCoin("ICOIN", 15000), fills[0].MakerFee)
	require.Equal(t, sdk.NewCoin("JCOIN", 10), fills[0].TakerFee)
	require.Empty(t, f.keeper.PopRoundFills())
}

func TestNoTakerFeeBeforeActivation(t *testing.T) {
	f := newFixture(t)

	f.place(t, f.alice, sdk.NewCoin("JCOIN", 1000), sdk.NewCoin("ICOIN", 300000))
	f.place(t, f.bob, sdk.NewCoin("ICOIN", 300000), sdk.NewCoin("JCOIN", 1000))

	require.Equal(t, int64(300000-15000), f.balance(f.alice, "ICOIN"))
	require.Equal(t, int64(1000), f.balance(f.bob, "JCOIN"))
	require.Equal(t, int64(0), f.assetMapper.GetAccumulatedFees(f.ctx, "JCOIN"))
}

func TestTakerFeeDefaultsToMakerFee(t *testing.T) {
	f := newFixture(t)
	f.ctx = f.ctx.WithBlockTime(activation)

	f.place(t, f.alice, sdk.NewCoin("JCOIN", 1000), sdk.NewCoin("ICOIN", 300000))
	f.place(t, f.bob, sdk.NewCoin("ICOIN", 300000), sdk.NewCoin("JCOIN", 1000))

	require.Equal(t, int64(1000-20), f.balance(f.bob, "JCOIN"))
}

func TestPartialFill(t *testing.T) {
	f := newFixture(t)
	f.activateTakerFees(t)

	aliceOrder := f.place(t, f.alice, sdk.NewCoin("JCOIN", 1000), sdk.NewCoin("ICOIN", 300000))
	f.place(t, f.bob, sdk.NewCoin("ICOIN", 150000), sdk.NewCoin("JCOIN", 500))

	require.Equal(t, int64(150000-7500), f.balance(f.alice, "ICOIN"))
	require.Equal(t, int64(500-5), f.balance(f.bob, "JCOIN"))

	order, open := f.keeper.GetOpenOrder(aliceOrder)
	require.True(t, open)
	require.Equal(t, int64(500), order.ForSale)
	require.Equal(t, int64(150000), order.MinToReceive())

	stored, ok := f.keeper.orderMapper.GetOrder(f.ctx, aliceOrder)
	require.True(t, ok)
	require.Equal(t, int64(500), stored.ForSale)

	buys, sells := f.keeper.GetOrderBookLevels("ICOIN_JCOIN", 10)
	require.Len(t, buys, 1)
	require.Empty(t, sells)
	require.Equal(t, int64(500), buys[0].ForSale)
}

func TestTakerRestsWhenNotCrossing(t *testing.T) {
	f := newFixture(t)

	aliceOrder := f.place(t, f.alice, sdk.NewCoin("JCOIN", 1000), sdk.NewCoin("ICOIN", 300000))
	bobOrder := f.place(t, f.bob, sdk.NewCoin("ICOIN", 200000), sdk.NewCoin("JCOIN", 1000))

	require.Empty(t, f.keeper.PopRoundFills())
	require.Len(t, f.keeper.GetOpenOrders(f.alice), 1)
	require.Len(t, f.keeper.GetOpenOrders(f.bob), 1)
	require.Equal(t, aliceOrder, f.keeper.GetOpenOrders(f.alice)[0].Id)
	require.Equal(t, bobOrder, f.keeper.GetOpenOrders(f.bob)[0].Id)
	require.Equal(t, int64(800000), f.balance(f.bob, "ICOIN"))
	require.Equal(t, []string{"ICOIN_JCOIN"}, f.keeper.GetPairs())
}

func TestTakerDustIsRefunded(t *testing.T) {
	f := newFixture(t)

	f.place(t, f.alice, sdk.NewCoin("JCOIN", 1000), sdk.NewCoin("ICOIN", 300000))
	bobOrder := f.place(t, f.bob, sdk.NewCoin("ICOIN", 300100), sdk.NewCoin("JCOIN", 1000))

	_, open := f.keeper.GetOpenOrder(bobOrder)
	require.False(t, open)
	require.Equal(t, int64(1000000-300000), f.balance(f.bob, "ICOIN"))
	require.Equal(t, int64(1000), f.balance(f.bob, "JCOIN"))
}

func TestPartialFillRefundsTakerRemainder(t *testing.T) {
	f := newFixture(t)

	aliceOrder := f.place(t, f.alice, sdk.NewCoin("JCOIN", 1000), sdk.NewCoin("ICOIN", 300000))
	// 150001 ICOIN buy 500 JCOIN at 300 each; the odd ICOIN is not paid to alice
	bobOrder := f.place(t, f.bob, sdk.NewCoin("ICOIN", 150001), sdk.NewCoin("JCOIN", 500))

	_, open := f.keeper.GetOpenOrder(bobOrder)
	require.False(t, open)
	require.Equal(t, int64(1000000-150000), f.balance(f.bob, "ICOIN"))
	require.Equal(t, int64(500), f.balance(f.bob, "JCOIN"))
	order, open := f.keeper.GetOpenOrder(aliceOrder)
	require.True(t, open)
	require.Equal(t, int64(500), order.ForSale)

	fills := f.keeper.PopRoundFills()
	require.Len(t, fills, 1)
	require.Equal(t, sdk.NewCoin("ICOIN", 150000), fills[0].TakerPays)
}

func TestRejectedOrderChangesNothing(t *testing.T) {
	f := newFixture(t)
	carl := testutils.NamedAddr("carl")

	err := f.placeErr(carl, sdk.NewCoin("JCOIN", 10), sdk.NewCoin("ICOIN", 10), expiration)
	require.NotNil(t, err)
	require.Equal(t, dexTypes.CodeInsufficientFunds, err.Code())

	err = f.placeErr(f.alice, sdk.NewCoin("JCOIN", 10), sdk.NewCoin("NOPE", 10), expiration)
	require.NotNil(t, err)
	require.Equal(t, dexTypes.CodeInvalidTradingPair, err.Code())

	err = f.placeErr(f.alice, sdk.NewCoin("JCOIN", 10), sdk.NewCoin("ICOIN", 10), f.ctx.BlockHeader().Time)
	require.NotNil(t, err)
	require.Equal(t, dexTypes.CodeInvalidOrderParam, err.Code())

	require.Equal(t, int64(1000000), f.balance(f.alice, "JCOIN"))
	require.Empty(t, f.keeper.GetPairs())

	// the failed placements did not consume ids
	require.Equal(t, uint64(1), f.place(t, f.alice, sdk.NewCoin("JCOIN", 10), sdk.NewCoin("ICOIN", 10)))
}

func TestCancelOrder(t *testing.T) {
	f := newFixture(t)
	id := f.place(t, f.alice, sdk.NewCoin("JCOIN", 1000), sdk.NewCoin("ICOIN", 300000))

	err := f.cancelErr(f.bob, id)
	require.NotNil(t, err)
	require.Equal(t, dexTypes.CodeNotOrderOwner, err.Code())

	res := f.deliver(f.handler, NewCancelOrderMsg(f.alice, id))
	require.True(t, res.IsOK(), res.Log)
	require.Equal(t, int64(1000000), f.balance(f.alice, "JCOIN"))
	_, open := f.keeper.GetOpenOrder(id)
	require.False(t, open)
	buys, _ := f.keeper.GetOrderBookLevels("ICOIN_JCOIN", 10)
	require.Empty(t, buys)

	err = f.cancelErr(f.alice, id)
	require.NotNil(t, err)
	require.Equal(t, dexTypes.CodeOrderNotFound, err.Code())
}

func TestLoadOrderBooks(t *testing.T) {
	f := newFixture(t)
	first := f.place(t, f.alice, sdk.NewCoin("JCOIN", 1000), sdk.NewCoin("ICOIN", 300000))
	second := f.place(t, f.alice, sdk.NewCoin("JCOIN", 500), sdk.NewCoin("ICOIN", 150000))
	f.place(t, f.bob, sdk.NewCoin("ICOIN", 100000), sdk.NewCoin("JCOIN", 1000))
	f.ms.Commit()

	reloaded := store.NewCommitMultiStore(f.db)
	for _, key := range common.StoreKeys {
		reloaded.MountStoreWithDB(key, sdk.StoreTypeIAVL, nil)
	}
	require.NoError(t, reloaded.LoadLatestVersion())
	ctx := sdk.NewContext(reloaded, abci.Header{Height: 2, Time: f.ctx.BlockHeader().Time}, sdk.RunTxModeDeliver, log.NewNopLogger())
	recovered := NewKeeper(f.cdc, common.DexStoreKey, f.ak, f.assetMapper, f.gate, log.NewNopLogger())
	count, err := recovered.LoadOrderBooks(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, count)

	aliceOrders := recovered.GetOpenOrders(f.alice)
	require.Len(t, aliceOrders, 2)
	require.Equal(t, int64(500), aliceOrders[1].ForSale)
	require.Equal(t, "ICOIN_JCOIN", aliceOrders[1].Pair)
	buys, sells := recovered.GetOrderBookLevels("ICOIN_JCOIN", 10)
	require.Len(t, buys, 1)
	require.Len(t, sells, 1)
	require.Equal(t, 2, buys[0].Orders)

	var ids []uint64
	recovered.engines["ICOIN_JCOIN"].Book.Iterate(me.BUYSIDE, func(order *me.LimitOrder) bool {
		ids = append(ids, order.Id)
		return false
	})
	require.Equal(t, []uint64{first, second}, ids)
}

func TestHandlerRejectsUnknownMsg(t *testing.T) {
	f := newFixture(t)
	msg := update.NewUpdateFeeOptionsMsg(f.jill, "JCOIN", 0)
	require.False(t, f.handler(f.ctx, msg).IsOK())
}
