package update

import (
	"reflect"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/ledger-dex/node/common/log"
	"github.com/ledger-dex/node/common/upgrade"
	"github.com/ledger-dex/node/plugins/assets/store"
	assetTypes "github.com/ledger-dex/node/plugins/assets/types"
)

func NewHandler(assetMapper store.Mapper, gate *upgrade.Gate) sdk.Handler {
	return func(ctx sdk.Context, msg sdk.Msg) sdk.Result {
		switch msg := msg.(type) {
		case UpdateFeeOptionsMsg:
			if err := ApplyFeeScheduleUpdate(ctx, assetMapper, gate, msg); err != nil {
				return err.Result()
			}
			return sdk.Result{Data: []byte(strings.ToUpper(msg.AssetToUpdate))}
		default:
			errMsg := "Unrecognized msg type: " + reflect.TypeOf(msg).Name()
			return sdk.ErrUnknownRequest(errMsg).Result()
		}
	}
}

// ApplyFeeScheduleUpdate validates msg against the stored asset and the block time, then persists the new options.
func ApplyFeeScheduleUpdate(ctx sdk.Context, assetMapper store.Mapper, gate *upgrade.Gate, msg UpdateFeeOptionsMsg) sdk.Error {
	symbol := strings.ToUpper(msg.AssetToUpdate)
	logger := log.With("module", "assets", "symbol", symbol, "issuer", msg.Issuer)
	errLogMsg := "update fee options failed"

	asset, err := assetMapper.GetAsset(ctx, symbol)
	if err != nil {
		logger.Info(errLogMsg, "reason", "symbol not exist")
		return assetTypes.ErrUnknownAsset(symbol)
	}
	if !asset.IsOwner(msg.Issuer) {
		logger.Info(errLogMsg, "reason", "not the asset issuer")
		return assetTypes.ErrUnauthorized(symbol)
	}

	postActivation := gate.IsPostActivation(ctx.BlockHeader().Time)
	next, sdkErr := ApplyUpdate(asset.FeeOptions, msg.FeeOptionsUpdate(), postActivation)
	if sdkErr != nil {
		logger.Info(errLogMsg, "reason", sdkErr.ABCILog())
		return sdkErr
	}
	if err := assetMapper.SetFeeOptions(ctx, symbol, next); err != nil {
		// ApplyUpdate only yields valid options
		panic(err)
	}
	logger.Info("updated fee options", "fee_options", next.String(), "post_activation", postActivation)
	return nil
}
