package matcheng

import (
	"fmt"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/ledger-dex/node/common/utils"
)

const (
	UNKNOWN int8 = 0
	// BUYSIDE orders sell the quote asset of the pair to buy its base asset.
	BUYSIDE int8 = 1
	// SELLSIDE orders sell the base asset.
	SELLSIDE int8 = 2
)

func OppositeSide(side int8) int8 {
	switch side {
	case BUYSIDE:
		return SELLSIDE
	case SELLSIDE:
		return BUYSIDE
	}
	return UNKNOWN
}

func IsValidSide(side int8) bool {
	return side == BUYSIDE || side == SELLSIDE
}

// SellPrice is the limit of an order: Base is the original amount to sell,
// Quote the original minimum to receive for it.
type SellPrice struct {
	Base  sdk.Coin `json:"base"`
	Quote sdk.Coin `json:"quote"`
}

func (p SellPrice) String() string {
	return fmt.Sprintf("%d%s/%d%s", p.Quote.Amount, p.Quote.Denom, p.Base.Amount, p.Base.Denom)
}

type LimitOrder struct {
	Id           uint64         `json:"id"`
	Owner        sdk.AccAddress `json:"owner"`
	Pair         string         `json:"pair"`
	Side         int8           `json:"side"`
	SellPrice    SellPrice      `json:"sell_price"`
	ForSale      int64          `json:"for_sale"`
	Expiration   time.Time      `json:"expiration"`
	CreateHeight int64          `json:"create_height"`
}

func (o *LimitOrder) SellDenom() string    { return o.SellPrice.Base.Denom }
func (o *LimitOrder) ReceiveDenom() string { return o.SellPrice.Quote.Denom }

// MinToReceive is what the remaining amount must fetch at the order's own price, rounded up.
func (o *LimitOrder) MinToReceive() int64 {
	res, ok := utils.MulDivCeil(o.ForSale, o.SellPrice.Quote.Amount, o.SellPrice.Base.Amount)
	if !ok {
		panic(fmt.Errorf("order %d: min to receive overflows", o.Id))
	}
	return res
}

// IsDust reports whether the remaining amount can no longer buy a single unit at the order's own price.
func (o *LimitOrder) IsDust() bool {
	if o.ForSale <= 0 {
		return false
	}
	res, _ := utils.MulDivFloor(o.ForSale, o.SellPrice.Quote.Amount, o.SellPrice.Base.Amount)
	return res == 0
}

func (o *LimitOrder) String() string {
	return fmt.Sprintf("LimitOrder{id: %d, owner: %s, pair: %s, side: %d, price: %s, forSale: %d}",
		o.Id, o.Owner, o.Pair, o.Side, o.SellPrice, o.ForSale)
}

// Fill is one execution between a resting maker and the incoming taker.
// MakerPays is in the asset the maker sells, TakerPays in the asset the taker sells.
// The fee fields are filled in by the settlement, the engine leaves them zero.
type Fill struct {
	Pair           string         `json:"pair"`
	MakerId        uint64         `json:"maker_id"`
	TakerId        uint64         `json:"taker_id"`
	Maker          sdk.AccAddress `json:"maker"`
	Taker          sdk.AccAddress `json:"taker"`
	MakerPays      sdk.Coin       `json:"maker_pays"`
	TakerPays      sdk.Coin       `json:"taker_pays"`
	MakerFee       sdk.Coin       `json:"maker_fee"`
	TakerFee       sdk.Coin       `json:"taker_fee"`
	MakerRemaining int64          `json:"maker_remaining"`
	MakerClosed    bool           `json:"maker_closed"`
}

// MatchResult is the plan for one taker. Remaining is the taker's amount left after all fills;
// Rest tells whether that remainder goes on the book or is refunded.
type MatchResult struct {
	Fills     []Fill
	Remaining int64
	Rest      bool
}

func (r MatchResult) Filled(taker *LimitOrder) int64 {
	return taker.ForSale - r.Remaining
}
