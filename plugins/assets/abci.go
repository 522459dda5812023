package assets

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/ledger-dex/node/common/log"
	"github.com/ledger-dex/node/common/upgrade"
	"github.com/ledger-dex/node/plugins/assets/store"
)

// EndBlocker pins every never-set taker fee to its maker fee in the first block at or after the
// maker/taker activation. It runs once; later blocks find the marker and return immediately.
func EndBlocker(ctx sdk.Context, assetMapper store.Mapper, gate *upgrade.Gate) (normalized []string) {
	if !gate.IsPostActivation(ctx.BlockHeader().Time) || assetMapper.IsTakerFeeNormalized(ctx) {
		return nil
	}

	logger := log.With("module", "assets")
	for _, asset := range assetMapper.GetAssetList(ctx) {
		opts, changed := asset.FeeOptions.NormalizeTakerFee()
		if !changed {
			continue
		}
		if err := assetMapper.SetFeeOptions(ctx, asset.Symbol, opts); err != nil {
			panic(err)
		}
		normalized = append(normalized, asset.Symbol)
	}
	assetMapper.SetTakerFeeNormalized(ctx)
	logger.Info("normalized taker fees at activation", "height", ctx.BlockHeight(), "assets", len(normalized))
	return normalized
}
