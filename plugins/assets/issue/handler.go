package issue

import (
	"fmt"
	"reflect"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/ledger-dex/node/common/account"
	"github.com/ledger-dex/node/common/log"
	"github.com/ledger-dex/node/common/upgrade"
	"github.com/ledger-dex/node/plugins/assets/store"
	assetTypes "github.com/ledger-dex/node/plugins/assets/types"
)

// NewHandler creates a new asset issue message handler
func NewHandler(assetMapper store.Mapper, keeper account.Keeper, gate *upgrade.Gate) sdk.Handler {
	return func(ctx sdk.Context, msg sdk.Msg) sdk.Result {
		switch msg := msg.(type) {
		case IssueMsg:
			return handleIssueAsset(ctx, assetMapper, gate, msg)
		case MintMsg:
			return handleMintAsset(ctx, assetMapper, keeper, msg)
		default:
			errMsg := "Unrecognized msg type: " + reflect.TypeOf(msg).Name()
			return sdk.ErrUnknownRequest(errMsg).Result()
		}
	}
}

func handleIssueAsset(ctx sdk.Context, assetMapper store.Mapper, gate *upgrade.Gate, msg IssueMsg) sdk.Result {
	errLogMsg := "issue asset failed"
	symbol := strings.ToUpper(msg.Symbol)
	logger := log.With("module", "assets", "symbol", symbol, "issuer", msg.From)

	if assetMapper.Exists(ctx, symbol) {
		logger.Info(errLogMsg, "reason", "already exists")
		return assetTypes.ErrDuplicateAsset(symbol).Result()
	}

	asset := msg.ToAsset()
	asset.Symbol = symbol
	// the activation normalization has already run, so the default is pinned here
	if gate.IsPostActivation(ctx.BlockHeader().Time) {
		asset.FeeOptions, _ = asset.FeeOptions.NormalizeTakerFee()
	}
	if err := assetMapper.NewAsset(ctx, asset); err != nil {
		logger.Error(errLogMsg, "reason", err.Error())
		return assetTypes.ErrInvalidAssetParam("asset", err.Error()).Result()
	}

	logger.Info("finished issuing asset", "fee_options", asset.FeeOptions.String())
	return sdk.Result{
		Data: []byte(symbol),
		Log:  fmt.Sprintf("Issued %s", symbol),
	}
}

func handleMintAsset(ctx sdk.Context, assetMapper store.Mapper, keeper account.Keeper, msg MintMsg) sdk.Result {
	symbol := strings.ToUpper(msg.Symbol)
	logger := log.With("module", "assets", "symbol", symbol, "amount", msg.Amount, "minter", msg.From)

	errLogMsg := "mint asset failed"
	asset, err := assetMapper.GetAsset(ctx, symbol)
	if err != nil {
		logger.Info(errLogMsg, "reason", "symbol not exist")
		return assetTypes.ErrUnknownAsset(symbol).Result()
	}
	if !asset.IsOwner(msg.From) {
		logger.Info(errLogMsg, "reason", "not the asset issuer")
		return assetTypes.ErrUnauthorized(symbol).Result()
	}

	data, err := assetMapper.GetDynamicData(ctx, symbol)
	if err != nil {
		panic(err)
	}
	// use minus to prevent overflow
	if msg.Amount > asset.MaxSupply-data.CurrentSupply {
		logger.Info(errLogMsg, "reason", "exceed the max supply")
		return assetTypes.ErrInvalidAssetParam("amount", fmt.Sprintf("the max supply is %d", asset.MaxSupply)).Result()
	}

	if err := assetMapper.UpdateCurrentSupply(ctx, symbol, data.CurrentSupply+msg.Amount); err != nil {
		panic(err)
	}
	keeper.Credit(ctx, msg.To, sdk.NewCoin(symbol, msg.Amount))

	logger.Info("finished minting asset", "to", msg.To)
	return sdk.Result{
		Data: []byte(symbol),
	}
}
