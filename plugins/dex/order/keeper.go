package order

import (
	"fmt"
	"sort"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"
	tmlog "github.com/tendermint/tendermint/libs/log"

	"github.com/ledger-dex/node/common/account"
	"github.com/ledger-dex/node/common/upgrade"
	assetStore "github.com/ledger-dex/node/plugins/assets/store"
	me "github.com/ledger-dex/node/plugins/dex/matcheng"
	"github.com/ledger-dex/node/plugins/dex/store"
	dexTypes "github.com/ledger-dex/node/plugins/dex/types"
	"github.com/ledger-dex/node/plugins/dex/utils"
	"github.com/ledger-dex/node/wire"
)

// Keeper settles orders against the ledger and owns the in-memory books.
// The books and the order arena only change through pending updates, applied once the message's writes are committed.
type Keeper struct {
	ak          account.Keeper
	assetMapper assetStore.Mapper
	orderMapper store.OrderMapper
	feeCalc     FeeCalculator

	engines    map[string]*me.MatchEng
	orders     map[uint64]*me.LimitOrder // open orders by id
	roundFills []me.Fill                 // fills settled in the current block
	pending    []func()                  // book updates of the message being applied
	logger     tmlog.Logger
}

// NewKeeper - Returns the Keeper
func NewKeeper(cdc *wire.Codec, key sdk.StoreKey, ak account.Keeper, assetMapper assetStore.Mapper, gate *upgrade.Gate, logger tmlog.Logger) *Keeper {
	return &Keeper{
		ak:          ak,
		assetMapper: assetMapper,
		orderMapper: store.NewOrderMapper(cdc, key),
		feeCalc:     NewFeeCalculator(assetMapper, gate),
		engines:     make(map[string]*me.MatchEng),
		orders:      make(map[uint64]*me.LimitOrder),
		logger:      logger.With("module", "dex"),
	}
}

func (kp *Keeper) engine(pair string) *me.MatchEng {
	eng, ok := kp.engines[pair]
	if !ok {
		eng = me.NewMatchEng(pair)
		kp.engines[pair] = eng
	}
	return eng
}

// ApplyPendingBookUpdates runs the book updates of a committed message in order.
func (kp *Keeper) ApplyPendingBookUpdates() {
	updates := kp.pending
	kp.pending = nil
	for _, update := range updates {
		update()
	}
}

// DropPendingBookUpdates forgets the book updates of a rejected message.
func (kp *Keeper) DropPendingBookUpdates() {
	kp.pending = nil
}

// ApplyOrderPlacement locks the amount to sell, matches the order against the book and settles every fill.
// Validation happens before any write; once settlement starts, a failure is a ledger inconsistency and panics.
func (kp *Keeper) ApplyOrderPlacement(ctx sdk.Context, msg NewOrderMsg) (uint64, sdk.Error) {
	if err := msg.ValidateBasic(); err != nil {
		return 0, err
	}
	sell := sdk.NewCoin(strings.ToUpper(msg.AmountToSell.Denom), msg.AmountToSell.Amount)
	receive := sdk.NewCoin(strings.ToUpper(msg.MinToReceive.Denom), msg.MinToReceive.Amount)
	for _, symbol := range []string{sell.Denom, receive.Denom} {
		if !kp.assetMapper.Exists(ctx, symbol) {
			return 0, dexTypes.ErrInvalidTradingPair(fmt.Sprintf("asset %s does not exist", symbol))
		}
	}
	if !msg.Expiration.After(ctx.BlockHeader().Time) {
		return 0, dexTypes.ErrInvalidOrderParam("expiration", "should be later than the block time")
	}
	if err := kp.ak.Debit(ctx, msg.Sender, sell); err != nil {
		return 0, dexTypes.ErrInsufficientFunds(fmt.Sprintf("%s can not lock %d%s", msg.Sender, sell.Amount, sell.Denom))
	}

	pair := utils.Assets2TradingPair(sell.Denom, receive.Denom)
	side := me.BUYSIDE
	if base, _, _ := utils.TradingPair2Assets(pair); base == sell.Denom {
		side = me.SELLSIDE
	}
	taker := &me.LimitOrder{
		Id:           kp.orderMapper.NextOrderId(ctx),
		Owner:        msg.Sender,
		Pair:         pair,
		Side:         side,
		SellPrice:    me.SellPrice{Base: sell, Quote: receive},
		ForSale:      sell.Amount,
		Expiration:   msg.Expiration,
		CreateHeight: ctx.BlockHeight(),
	}

	eng := kp.engine(pair)
	res := eng.Match(taker)
	transfers := make([]Transfer, 0, 2*len(res.Fills)+1)
	for i := range res.Fills {
		fill := &res.Fills[i]
		makerTran, takerTran := fillTransfers(ctx, kp.feeCalc, fill)
		transfers = append(transfers, makerTran, takerTran)

		maker, ok := kp.orders[fill.MakerId]
		if !ok {
			panic(fmt.Errorf("maker %d is in the book but not open", fill.MakerId))
		}
		if fill.MakerClosed {
			if fill.MakerRemaining > 0 {
				transfers = append(transfers, refundTransfer(maker, fill.MakerRemaining, eventDustRefund))
			}
			kp.orderMapper.DeleteOrder(ctx, maker.Id)
		} else {
			updated := *maker
			updated.ForSale = fill.MakerRemaining
			kp.orderMapper.SetOrder(ctx, &updated)
		}
	}

	if res.Rest {
		rested := *taker
		rested.ForSale = res.Remaining
		kp.orderMapper.SetOrder(ctx, &rested)
	} else if res.Remaining > 0 {
		event := eventUnmatchedRefund
		if len(res.Fills) > 0 {
			event = eventDustRefund
		}
		transfers = append(transfers, refundTransfer(taker, res.Remaining, event))
	}

	kp.settle(ctx, transfers)

	kp.pending = append(kp.pending, func() {
		if err := eng.Apply(taker, res); err != nil {
			panic(err)
		}
		for _, fill := range res.Fills {
			if fill.MakerClosed {
				delete(kp.orders, fill.MakerId)
			}
		}
		if res.Rest {
			kp.orders[taker.Id] = taker
		}
		kp.roundFills = append(kp.roundFills, res.Fills...)
	})

	kp.logger.Debug("placed order", "id", taker.Id, "pair", pair, "side", side,
		"fills", len(res.Fills), "remaining", res.Remaining, "rest", res.Rest)
	return taker.Id, nil
}

// settle credits every transfer net of its fee and adds the fee to the issuer's accumulated fees.
func (kp *Keeper) settle(ctx sdk.Context, transfers []Transfer) {
	for _, tran := range transfers {
		kp.ak.Credit(ctx, tran.accAddress, tran.Net())
		if tran.fee.Amount > 0 {
			if err := kp.assetMapper.AddAccumulatedFees(ctx, tran.fee.Denom, tran.fee.Amount); err != nil {
				panic(err)
			}
		}
	}
}

// CancelOrder releases the remaining locked amount of an open order to its owner.
func (kp *Keeper) CancelOrder(ctx sdk.Context, msg CancelOrderMsg) sdk.Error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	order, ok := kp.orders[msg.OrderId]
	if !ok {
		return dexTypes.ErrOrderNotFound(msg.OrderId)
	}
	if !order.Owner.Equals(msg.Sender) {
		return dexTypes.ErrNotOrderOwner(msg.OrderId)
	}

	kp.settle(ctx, []Transfer{refundTransfer(order, order.ForSale, eventCancel)})
	kp.orderMapper.DeleteOrder(ctx, order.Id)

	eng := kp.engine(order.Pair)
	kp.pending = append(kp.pending, func() {
		if _, err := eng.Book.Remove(order.Id); err != nil {
			panic(err)
		}
		delete(kp.orders, order.Id)
	})
	kp.logger.Debug("cancelled order", "id", order.Id, "refund", order.ForSale)
	return nil
}

// PopRoundFills returns the fills settled since the last call.
func (kp *Keeper) PopRoundFills() []me.Fill {
	fills := kp.roundFills
	kp.roundFills = nil
	return fills
}

func (kp *Keeper) GetOpenOrder(id uint64) (me.LimitOrder, bool) {
	order, ok := kp.orders[id]
	if !ok {
		return me.LimitOrder{}, false
	}
	return *order, true
}

// GetOpenOrders lists the open orders of addr by id.
func (kp *Keeper) GetOpenOrders(addr sdk.AccAddress) []me.LimitOrder {
	res := make([]me.LimitOrder, 0)
	for _, order := range kp.orders {
		if order.Owner.Equals(addr) {
			res = append(res, *order)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Id < res[j].Id })
	return res
}

// GetOrderBookLevels returns the depth of both sides of a market, best price first.
func (kp *Keeper) GetOrderBookLevels(pair string, maxLevels int) (buys, sells []me.PriceLevel) {
	eng, ok := kp.engines[strings.ToUpper(pair)]
	if !ok {
		return []me.PriceLevel{}, []me.PriceLevel{}
	}
	return eng.Book.Depth(me.BUYSIDE, maxLevels), eng.Book.Depth(me.SELLSIDE, maxLevels)
}

func (kp *Keeper) GetPairs() []string {
	pairs := make([]string, 0, len(kp.engines))
	for pair := range kp.engines {
		pairs = append(pairs, pair)
	}
	sort.Strings(pairs)
	return pairs
}
