package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	dbm "github.com/tendermint/tendermint/libs/db"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/ledger-dex/node/app"
	"github.com/ledger-dex/node/app/config"
	"github.com/ledger-dex/node/common/testutils"
	"github.com/ledger-dex/node/common/types"
	"github.com/ledger-dex/node/plugins/api"
	hnd "github.com/ledger-dex/node/plugins/api/handlers"
	"github.com/ledger-dex/node/plugins/assets"
	"github.com/ledger-dex/node/plugins/assets/issue"
	"github.com/ledger-dex/node/plugins/dex/order"
	"github.com/ledger-dex/node/version"
)

var (
	genesisTime = time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)
	expiration  = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	jill, izzy  = testutils.NamedAddr("jill"), testutils.NamedAddr("izzy")
	alice, bob  = testutils.NamedAddr("alice"), testutils.NamedAddr("bob")
)

func setup(t *testing.T, activation time.Time) (*app.LedgerApp, http.Handler) {
	cfg := config.DefaultLedgerConfig()
	cfg.MakerTakerFeeTime = activation.Unix()
	ledger, err := app.NewLedgerApp(log.NewNopLogger(), dbm.NewMemDB(), cfg)
	require.NoError(t, err)

	jcoin := issue.NewIssueMsg(jill, "JCOIN", 2, 1000000000, 2*types.OnePercent, true).ToAsset()
	jcoin.FeeOptions.MaxMarketFee = 5000
	require.NoError(t, ledger.InitChain(app.GenesisState{
		GenesisTime: genesisTime,
		Assets: assets.GenesisState{
			Assets: []types.Asset{
				jcoin,
				issue.NewIssueMsg(izzy, "ICOIN", 0, 1000000000, 250, true).ToAsset(),
			},
			Balances: []assets.GenesisBalance{
				{Address: alice, Symbol: "JCOIN", Amount: 1000000},
				{Address: bob, Symbol: "ICOIN", Amount: 1000000},
			},
		},
	}))

	// two resting asks on ICOIN_JCOIN
	block := app.Block{Height: 1, Time: genesisTime.Add(time.Hour)}
	for _, msg := range []sdk.Msg{
		order.NewNewOrderMsg(alice, sdk.NewCoin("JCOIN", 1000), sdk.NewCoin("ICOIN", 300000), expiration),
		order.NewNewOrderMsg(alice, sdk.NewCoin("JCOIN", 500), sdk.NewCoin("ICOIN", 150000), expiration),
	} {
		bz, err := app.EncodeTx(msg)
		require.NoError(t, err)
		block.Txs = append(block.Txs, bz)
	}
	res, err := ledger.ApplyBlock(block)
	require.NoError(t, err)
	for _, txRes := range res.TxResults {
		require.True(t, txRes.IsOK(), txRes.Log)
	}

	return ledger, api.NewHandler(ledger, ledger.AccountKeeper, ledger.AssetMapper, cfg.APIConfig, log.NewNopLogger())
}

func get(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func getJSON(t *testing.T, handler http.Handler, path string, v interface{}) {
	rec := get(t, handler, path)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestAssetBeforeActivation(t *testing.T) {
	_, handler := setup(t, genesisTime.Add(24*time.Hour))

	var resp hnd.AssetResponse
	getJSON(t, handler, "/api/v1/assets/jcoin", &resp)
	assert.Equal(t, "JCOIN", resp.Symbol)
	assert.Equal(t, "2", resp.MakerFeePercent)
	assert.Equal(t, "0", resp.TakerFeePercent)
	assert.False(t, resp.TakerFeeSet)
	assert.Equal(t, "0", resp.EffectiveTakerFee)
	assert.Equal(t, "50.00", resp.MaxMarketFee)
	assert.False(t, resp.TakerFeesActivated)
}

func TestAssetsAfterActivation(t *testing.T) {
	_, handler := setup(t, genesisTime)

	var resp []hnd.AssetResponse
	getJSON(t, handler, "/api/v1/assets", &resp)
	require.Len(t, resp, 2)
	assert.Equal(t, "ICOIN", resp[0].Symbol)
	// the taker fee was pinned to the maker fee by the first block past activation
	assert.True(t, resp[0].TakerFeeSet)
	assert.Equal(t, "2.5", resp[0].EffectiveTakerFee)
	assert.Equal(t, "2", resp[1].EffectiveTakerFee)
	assert.True(t, resp[1].TakerFeesActivated)
}

func TestAssetErrors(t *testing.T) {
	_, handler := setup(t, genesisTime)
	assert.Equal(t, http.StatusNotFound, get(t, handler, "/api/v1/assets/NOPE").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, handler, "/api/v1/assets/bad-symbol").Code)
}

func TestBalances(t *testing.T) {
	_, handler := setup(t, genesisTime)

	var resp hnd.BalancesResponse
	getJSON(t, handler, "/api/v1/balances/"+alice.String(), &resp)
	require.Len(t, resp.Balances, 1)
	assert.Equal(t, hnd.Balance{Symbol: "JCOIN", Amount: 998500, Units: "9985.00"}, resp.Balances[0])

	var balance hnd.Balance
	getJSON(t, handler, "/api/v1/balances/"+alice.String()+"/icoin", &balance)
	assert.Equal(t, hnd.Balance{Symbol: "ICOIN", Amount: 0, Units: "0"}, balance)

	assert.Equal(t, http.StatusBadRequest, get(t, handler, "/api/v1/balances/notanaddress").Code)
}

func TestBalanceAtHeight(t *testing.T) {
	_, handler := setup(t, genesisTime)

	var balance hnd.Balance
	getJSON(t, handler, "/api/v1/balances/"+alice.String()+"/jcoin?height=1", &balance)
	assert.Equal(t, hnd.Balance{Symbol: "JCOIN", Amount: 998500, Units: "9985.00", Height: 1}, balance)

	assert.Equal(t, http.StatusNotFound, get(t, handler, "/api/v1/balances/"+alice.String()+"/jcoin?height=2").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, handler, "/api/v1/balances/"+alice.String()+"/jcoin?height=x").Code)
}

func TestDepthAndOrders(t *testing.T) {
	_, handler := setup(t, genesisTime)

	var pairs []string
	getJSON(t, handler, "/api/v1/pairs", &pairs)
	assert.Equal(t, []string{"ICOIN_JCOIN"}, pairs)

	var depth hnd.DepthResponse
	getJSON(t, handler, "/api/v1/depth?symbol=ICOIN_JCOIN&limit=5", &depth)
	assert.Equal(t, "ICOIN_JCOIN", depth.Pair)
	assert.Empty(t, depth.Sells)
	require.Len(t, depth.Buys, 1)
	assert.Equal(t, int64(1500), depth.Buys[0].Quantity)
	assert.Equal(t, 2, depth.Buys[0].Orders)
	// alice pays 1000 JCOIN for 300000 ICOIN
	assert.Equal(t, "0.00333333", depth.Buys[0].Price)

	assert.Equal(t, http.StatusBadRequest, get(t, handler, "/api/v1/depth?symbol=JCOIN_ICOIN").Code)

	var orders []map[string]interface{}
	getJSON(t, handler, "/api/v1/orders/"+alice.String(), &orders)
	require.Len(t, orders, 2)
	assert.Equal(t, "BUY", orders[0]["side"])
	assert.Equal(t, "1000JCOIN", orders[0]["for_sale"])
	assert.Equal(t, "300000ICOIN", orders[0]["min_to_receive"])
}

func TestTrades(t *testing.T) {
	ledger, handler := setup(t, genesisTime)

	var trades []map[string]interface{}
	getJSON(t, handler, "/api/v1/trades?symbol=ICOIN_JCOIN", &trades)
	require.Empty(t, trades)

	bz, err := app.EncodeTx(order.NewNewOrderMsg(bob, sdk.NewCoin("ICOIN", 150000), sdk.NewCoin("JCOIN", 500), expiration))
	require.NoError(t, err)
	res, err := ledger.ApplyBlock(app.Block{Height: 2, Time: genesisTime.Add(2 * time.Hour), Txs: []json.RawMessage{bz}})
	require.NoError(t, err)
	require.True(t, res.TxResults[0].IsOK(), res.TxResults[0].Log)

	getJSON(t, handler, "/api/v1/trades?symbol=icoin_jcoin&limit=10", &trades)
	require.Len(t, trades, 1)
	assert.Equal(t, alice.String(), trades[0]["maker"])
	assert.Equal(t, bob.String(), trades[0]["taker"])
	assert.Equal(t, "500JCOIN", trades[0]["maker_pays"])
	assert.Equal(t, "150000ICOIN", trades[0]["taker_pays"])
	// maker fee at the ICOIN maker rate, taker fee at the JCOIN taker rate
	assert.Equal(t, "3750ICOIN", trades[0]["maker_fee"])
	assert.Equal(t, "10JCOIN", trades[0]["taker_fee"])

	assert.Equal(t, http.StatusBadRequest, get(t, handler, "/api/v1/trades?symbol=ICOIN").Code)
}

func TestVersion(t *testing.T) {
	_, handler := setup(t, genesisTime)
	assert.Equal(t, version.Version, get(t, handler, "/version").Body.String())
	assert.Equal(t, "Ledger", get(t, handler, "/node_name").Body.String())
	assert.Equal(t, http.StatusNotFound, get(t, handler, "/api/v1/unknown").Code)
}
