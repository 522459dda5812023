package update

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/ledger-dex/node/common/types"
	assetTypes "github.com/ledger-dex/node/plugins/assets/types"
)

func percent(p int64) *int64 { return &p }

var issued = types.AssetFeeOptions{MakerFeePercent: 20 * types.OnePercent, ChargeMarketFee: true}

func requireCode(t *testing.T, code sdk.CodeType, err sdk.Error) {
	require.NotNil(t, err)
	require.Equal(t, code, err.Code())
	require.Equal(t, assetTypes.DefaultCodespace, err.Codespace())
}

func TestApplyUpdate_PreActivation(t *testing.T) {
	_, err := ApplyUpdate(issued, FeeOptionsUpdate{MakerFeePercent: 2000, TakerFeePercent: percent(1000)}, false)
	requireCode(t, assetTypes.CodeTakerFeeNotYetActive, err)

	_, err = ApplyUpdate(issued, FeeOptionsUpdate{MakerFeePercent: 2000, TakerFeePercent: percent(types.Percent100 + 1)}, false)
	requireCode(t, assetTypes.CodeFeePercentOutOfRange, err)

	// the inert value itself is accepted and leaves the taker fee unset
	next, err := ApplyUpdate(issued, FeeOptionsUpdate{MakerFeePercent: 1500, TakerFeePercent: percent(0)}, false)
	require.Nil(t, err)
	require.Equal(t, int64(1500), next.MakerFeePercent)
	require.Equal(t, int64(0), next.TakerFeePercent)
	require.False(t, next.TakerFeeSet)

	next, err = ApplyUpdate(issued, FeeOptionsUpdate{MakerFeePercent: 1500}, false)
	require.Nil(t, err)
	require.False(t, next.TakerFeeSet)
	require.True(t, next.ChargeMarketFee)
}

func TestApplyUpdate_MakerOutOfRange(t *testing.T) {
	for _, post := range []bool{false, true} {
		_, err := ApplyUpdate(issued, FeeOptionsUpdate{MakerFeePercent: types.Percent100 + 1}, post)
		requireCode(t, assetTypes.CodeFeePercentOutOfRange, err)
		_, err = ApplyUpdate(issued, FeeOptionsUpdate{MakerFeePercent: -1}, post)
		requireCode(t, assetTypes.CodeFeePercentOutOfRange, err)
	}
	_, err := ApplyUpdate(issued, FeeOptionsUpdate{MakerFeePercent: 0, MaxMarketFee: percent(-1)}, true)
	requireCode(t, assetTypes.CodeInvalidAssetParam, err)
}

func TestApplyUpdate_PostActivation(t *testing.T) {
	_, err := ApplyUpdate(issued, FeeOptionsUpdate{MakerFeePercent: 2000, TakerFeePercent: percent(types.Percent100 + 1)}, true)
	requireCode(t, assetTypes.CodeFeePercentOutOfRange, err)

	next, err := ApplyUpdate(issued, FeeOptionsUpdate{MakerFeePercent: 2000, TakerFeePercent: percent(1000)}, true)
	require.Nil(t, err)
	require.Equal(t, int64(1000), next.TakerFeePercent)
	require.True(t, next.TakerFeeSet)

	// unsupplied and never set: follows the maker fee of the update
	next, err = ApplyUpdate(issued, FeeOptionsUpdate{MakerFeePercent: 500}, true)
	require.Nil(t, err)
	require.Equal(t, int64(500), next.MakerFeePercent)
	require.Equal(t, int64(500), next.TakerFeePercent)
	require.True(t, next.TakerFeeSet)

	// unsupplied and already set: kept
	next, err = ApplyUpdate(next, FeeOptionsUpdate{MakerFeePercent: 700, MaxMarketFee: percent(50)}, true)
	require.Nil(t, err)
	require.Equal(t, int64(500), next.TakerFeePercent)
	require.Equal(t, int64(50), next.MaxMarketFee)

	next, err = ApplyUpdate(next, FeeOptionsUpdate{MakerFeePercent: 700, TakerFeePercent: percent(types.Percent100)}, true)
	require.Nil(t, err)
	require.Equal(t, types.Percent100, next.TakerFeePercent)
}

func TestApplyUpdate_Idempotent(t *testing.T) {
	stored := types.AssetFeeOptions{MakerFeePercent: 300, TakerFeePercent: 150, TakerFeeSet: true, MaxMarketFee: 9}
	req := FeeOptionsUpdate{MakerFeePercent: 300, TakerFeePercent: percent(150), MaxMarketFee: percent(9)}
	next, err := ApplyUpdate(stored, req, true)
	require.Nil(t, err)
	require.Equal(t, stored, next)

	again, err := ApplyUpdate(next, req, true)
	require.Nil(t, err)
	require.Equal(t, next, again)
}
