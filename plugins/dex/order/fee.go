package order

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/ledger-dex/node/common/types"
	"github.com/ledger-dex/node/common/upgrade"
	"github.com/ledger-dex/node/common/utils"
	"github.com/ledger-dex/node/plugins/assets/store"
)

// Role is the part an order plays in a fill.
type Role int8

const (
	Maker Role = iota + 1
	Taker
)

func (r Role) String() string {
	switch r {
	case Maker:
		return "maker"
	case Taker:
		return "taker"
	}
	return "unknown"
}

// CalcFee is the market fee owed on receiving amount of an asset with the given options.
// fee = floor(amount * rate / Percent100), capped by MaxMarketFee when that is set.
func CalcFee(amount int64, role Role, opts types.AssetFeeOptions, postActivation bool) (fee, net int64) {
	if amount < 0 {
		panic(fmt.Errorf("fee on negative amount %d", amount))
	}
	if !opts.ChargeMarketFee || amount == 0 {
		return 0, amount
	}

	var rate int64
	switch role {
	case Maker:
		rate = opts.MakerFeePercent
	case Taker:
		rate = opts.EffectiveTakerFeePercent(postActivation)
	default:
		panic(fmt.Errorf("unknown fee role %d", role))
	}
	if rate == 0 {
		return 0, amount
	}

	fee, ok := utils.MulDivFloor(amount, rate, types.Percent100)
	if !ok {
		panic(fmt.Errorf("fee overflow on %d at %d", amount, rate))
	}
	if opts.MaxMarketFee > 0 && fee > opts.MaxMarketFee {
		fee = opts.MaxMarketFee
	}
	net = amount - fee
	if fee < 0 || net < 0 {
		panic(fmt.Errorf("invalid fee %d on %d", fee, amount))
	}
	return fee, net
}

// FeeCalculator resolves the fee options of the received asset and the activation state of the block.
type FeeCalculator struct {
	assetMapper store.Mapper
	gate        *upgrade.Gate
}

func NewFeeCalculator(assetMapper store.Mapper, gate *upgrade.Gate) FeeCalculator {
	return FeeCalculator{
		assetMapper: assetMapper,
		gate:        gate,
	}
}

func (c FeeCalculator) Calc(ctx sdk.Context, symbol string, amount int64, role Role) (fee, net int64) {
	opts, err := c.assetMapper.GetFeeOptions(ctx, symbol)
	if err != nil {
		// both assets were checked before the order was accepted
		panic(err)
	}
	return CalcFee(amount, role, opts, c.gate.IsPostActivation(ctx.BlockHeader().Time))
}
