package order

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	me "github.com/ledger-dex/node/plugins/dex/matcheng"
)

type transferEventType uint8

const (
	eventFilled transferEventType = iota
	eventDustRefund
	eventUnmatchedRefund
	eventCancel
)

func (e transferEventType) String() string {
	switch e {
	case eventFilled:
		return "filled"
	case eventDustRefund:
		return "dust_refund"
	case eventUnmatchedRefund:
		return "unmatched_refund"
	case eventCancel:
		return "cancel"
	}
	return "unknown"
}

// Transfer is one credit to an account: the net proceeds of a fill, with its fee withheld for the
// issuer, or the release of locked funds. The debit side was taken when the order was placed.
type Transfer struct {
	Oid        uint64
	eventType  transferEventType
	accAddress sdk.AccAddress
	in         sdk.Coin
	fee        sdk.Coin
}

func (tran Transfer) Net() sdk.Coin {
	return sdk.NewCoin(tran.in.Denom, tran.in.Amount-tran.fee.Amount)
}

func (tran Transfer) String() string {
	return fmt.Sprintf("Transfer{oid: %d, event: %s, addr: %s, in: %v, fee: %v}",
		tran.Oid, tran.eventType, tran.accAddress, tran.in, tran.fee)
}

// fillTransfers charges both sides of a fill. The maker pays its fee at the maker rate of the asset it
// receives, the taker at the taker rate of the asset it receives. The fees are written back into fill.
func fillTransfers(ctx sdk.Context, calc FeeCalculator, fill *me.Fill) (maker, taker Transfer) {
	makerFee, _ := calc.Calc(ctx, fill.TakerPays.Denom, fill.TakerPays.Amount, Maker)
	takerFee, _ := calc.Calc(ctx, fill.MakerPays.Denom, fill.MakerPays.Amount, Taker)
	fill.MakerFee = sdk.NewCoin(fill.TakerPays.Denom, makerFee)
	fill.TakerFee = sdk.NewCoin(fill.MakerPays.Denom, takerFee)

	maker = Transfer{
		Oid:        fill.MakerId,
		eventType:  eventFilled,
		accAddress: fill.Maker,
		in:         fill.TakerPays,
		fee:        fill.MakerFee,
	}
	taker = Transfer{
		Oid:        fill.TakerId,
		eventType:  eventFilled,
		accAddress: fill.Taker,
		in:         fill.MakerPays,
		fee:        fill.TakerFee,
	}
	return maker, taker
}

func refundTransfer(order *me.LimitOrder, amount int64, event transferEventType) Transfer {
	return Transfer{
		Oid:        order.Id,
		eventType:  event,
		accAddress: order.Owner,
		in:         sdk.NewCoin(order.SellDenom(), amount),
		fee:        sdk.NewCoin(order.SellDenom(), 0),
	}
}
