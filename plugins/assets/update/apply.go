package update

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/ledger-dex/node/common/types"
	assetTypes "github.com/ledger-dex/node/plugins/assets/types"
)

// ApplyUpdate computes the fee options that result from req. It never mutates anything, so a rejected
// request leaves the stored options untouched.
//
// Before activation the taker fee can not be configured: any supplied value other than 0 is rejected and the
// stored taker fee stays unset. After activation a supplied taker fee is stored; an absent one keeps the stored
// value, or, if none was ever set, is pinned to the maker fee of this update.
func ApplyUpdate(current types.AssetFeeOptions, req FeeOptionsUpdate, postActivation bool) (types.AssetFeeOptions, sdk.Error) {
	if !types.IsValidFeePercent(req.MakerFeePercent) {
		return current, assetTypes.ErrFeePercentOutOfRange("maker", req.MakerFeePercent)
	}
	if req.TakerFeePercent != nil && !types.IsValidFeePercent(*req.TakerFeePercent) {
		return current, assetTypes.ErrFeePercentOutOfRange("taker", *req.TakerFeePercent)
	}
	if req.MaxMarketFee != nil && *req.MaxMarketFee < 0 {
		return current, assetTypes.ErrInvalidAssetParam("max_market_fee", "should not be negative")
	}

	next := current
	next.MakerFeePercent = req.MakerFeePercent
	if req.MaxMarketFee != nil {
		next.MaxMarketFee = *req.MaxMarketFee
	}

	if !postActivation {
		if req.TakerFeePercent != nil && *req.TakerFeePercent != 0 {
			return current, assetTypes.ErrTakerFeeNotYetActive(*req.TakerFeePercent)
		}
		return next, nil
	}

	switch {
	case req.TakerFeePercent != nil:
		next.TakerFeePercent = *req.TakerFeePercent
		next.TakerFeeSet = true
	case !current.TakerFeeSet:
		next.TakerFeePercent = req.MakerFeePercent
		next.TakerFeeSet = true
	}
	return next, nil
}
