package matcheng

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/ledger-dex/node/common/utils"
)

// MatchEng matches incoming orders of one market against its book.
// Match only plans; the book changes in Apply, after the plan has been settled.
type MatchEng struct {
	Pair string
	Book *OrderBook
	// LastTradePrice is the maker price of the latest fill
	LastTradePrice SellPrice
}

func NewMatchEng(pair string) *MatchEng {
	return &MatchEng{
		Pair: pair,
		Book: NewOrderBook(),
	}
}

// crosses reports whether the taker accepts the maker's price.
func crosses(maker, taker *LimitOrder) bool {
	return utils.CmpProducts(taker.SellPrice.Base.Amount, maker.SellPrice.Base.Amount,
		maker.SellPrice.Quote.Amount, taker.SellPrice.Quote.Amount) >= 0
}

// Match walks the opposing side best first and plans fills at the maker prices.
// Rounding favours the maker: it never receives less than its price asks. The taker is charged only for
// whole units it receives, and a fill that would take its running totals below its own price ends the walk.
func (me *MatchEng) Match(taker *LimitOrder) MatchResult {
	res := MatchResult{Remaining: taker.ForSale}
	stoppedByPrice := true
	// set when the remainder must be refunded instead of rested
	refund := false
	var paid, received int64

	me.Book.Iterate(OppositeSide(taker.Side), func(maker *LimitOrder) bool {
		if res.Remaining == 0 {
			stoppedByPrice = false
			return true
		}
		if !crosses(maker, taker) {
			return true
		}

		mBase, mQuote := maker.SellPrice.Base.Amount, maker.SellPrice.Quote.Amount
		takerCanBuy, ok := utils.MulDivFloor(res.Remaining, mBase, mQuote)
		if !ok {
			takerCanBuy = maker.ForSale
		}
		if takerCanBuy == 0 {
			refund = true
			return true
		}

		fill := Fill{
			Pair:    me.Pair,
			MakerId: maker.Id,
			TakerId: taker.Id,
			Maker:   maker.Owner,
			Taker:   taker.Owner,
		}
		bought := takerCanBuy
		if bought > maker.ForSale {
			bought = maker.ForSale
		}
		takerPays, ok := utils.MulDivCeil(bought, mQuote, mBase)
		if !ok || takerPays > res.Remaining {
			panic(fmt.Errorf("fill of maker %d by taker %d overpays", maker.Id, taker.Id))
		}
		if !meetsPrice(taker, received+bought, paid+takerPays) {
			refund = true
			return true
		}
		fill.MakerPays = sdk.NewCoin(maker.SellDenom(), bought)
		fill.TakerPays = sdk.NewCoin(taker.SellDenom(), takerPays)
		fill.MakerRemaining = maker.ForSale - bought
		if fill.MakerRemaining == 0 {
			fill.MakerClosed = true
		} else {
			left := *maker
			left.ForSale = fill.MakerRemaining
			fill.MakerClosed = left.IsDust()
		}
		paid += takerPays
		received += bought
		res.Remaining -= takerPays
		res.Fills = append(res.Fills, fill)

		if bought < maker.ForSale {
			// what is left can not buy a unit here, nor deeper in the book
			refund = res.Remaining > 0
			stoppedByPrice = false
			return true
		}
		return false
	})

	if res.Remaining > 0 && stoppedByPrice && !refund {
		left := *taker
		left.ForSale = res.Remaining
		res.Rest = !left.IsDust()
	}
	return res
}

// meetsPrice reports whether receiving received for paid honours the order's own price.
func meetsPrice(order *LimitOrder, received, paid int64) bool {
	return utils.CmpProducts(received, order.SellPrice.Base.Amount, paid, order.SellPrice.Quote.Amount) >= 0
}

// Apply mutates the book according to a plan returned by Match for the same taker.
func (me *MatchEng) Apply(taker *LimitOrder, res MatchResult) error {
	for _, fill := range res.Fills {
		maker, ok := me.Book.Get(fill.MakerId)
		if !ok {
			return fmt.Errorf("maker %d of the plan is not in the book", fill.MakerId)
		}
		me.LastTradePrice = maker.SellPrice
		remaining := fill.MakerRemaining
		if fill.MakerClosed {
			remaining = 0
		}
		if err := me.Book.ReduceOrRemove(fill.MakerId, remaining); err != nil {
			return err
		}
	}
	taker.ForSale = res.Remaining
	if res.Rest {
		return me.Book.Insert(taker)
	}
	return nil
}
