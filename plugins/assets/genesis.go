package assets

import (
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/pkg/errors"

	"github.com/ledger-dex/node/common/account"
	"github.com/ledger-dex/node/common/types"
	"github.com/ledger-dex/node/plugins/assets/store"
)

type GenesisBalance struct {
	Address sdk.AccAddress `json:"address"`
	Symbol  string         `json:"symbol"`
	Amount  int64          `json:"amount"`
}

// GenesisState lists the assets and balances the ledger starts with.
type GenesisState struct {
	Assets   []types.Asset    `json:"assets"`
	Balances []GenesisBalance `json:"balances"`
}

func InitGenesis(ctx sdk.Context, assetMapper store.Mapper, keeper account.Keeper, state GenesisState) error {
	for _, asset := range state.Assets {
		asset.Symbol = strings.ToUpper(asset.Symbol)
		if err := assetMapper.NewAsset(ctx, asset); err != nil {
			return errors.Wrapf(err, "invalid genesis asset %s", asset.Symbol)
		}
	}
	for _, b := range state.Balances {
		symbol := strings.ToUpper(b.Symbol)
		if b.Amount <= 0 {
			return errors.Errorf("genesis balance of %s for %s should be positive", symbol, b.Address)
		}
		asset, err := assetMapper.GetAsset(ctx, symbol)
		if err != nil {
			return errors.Wrap(err, "genesis balance of unknown asset")
		}
		data, err := assetMapper.GetDynamicData(ctx, symbol)
		if err != nil {
			return err
		}
		if b.Amount > asset.MaxSupply-data.CurrentSupply {
			return errors.Errorf("genesis balances of %s exceed the max supply %d", symbol, asset.MaxSupply)
		}
		if err := assetMapper.UpdateCurrentSupply(ctx, symbol, data.CurrentSupply+b.Amount); err != nil {
			return err
		}
		keeper.Credit(ctx, b.Address, sdk.NewCoin(symbol, b.Amount))
	}
	return nil
}
