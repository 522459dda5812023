package handlers

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/ledger-dex/node/common/types"
	"github.com/ledger-dex/node/plugins/assets/store"
)

// AssetResponse shows an asset's stored fee options next to the rates matching charges right now.
type AssetResponse struct {
	Symbol          string `json:"symbol"`
	Issuer          string `json:"issuer"`
	Precision       int64  `json:"precision"`
	MaxSupply       string `json:"max_supply"`
	CurrentSupply   string `json:"current_supply"`
	AccumulatedFees string `json:"accumulated_fees"`

	MakerFeePercent    string `json:"maker_fee_percent"`
	TakerFeePercent    string `json:"taker_fee_percent"`
	TakerFeeSet        bool   `json:"taker_fee_set"`
	EffectiveTakerFee  string `json:"effective_taker_fee_percent"`
	MaxMarketFee       string `json:"max_market_fee"`
	ChargeMarketFee    bool   `json:"charge_market_fee"`
	TakerFeesActivated bool   `json:"taker_fees_activated"`
}

func toAssetResponse(asset types.Asset, dynamic types.AssetDynamicData, postActivation bool) AssetResponse {
	opts := asset.FeeOptions
	return AssetResponse{
		Symbol:             asset.Symbol,
		Issuer:             asset.Issuer.String(),
		Precision:          asset.Precision,
		MaxSupply:          FormatAmount(asset.MaxSupply, asset.Precision),
		CurrentSupply:      FormatAmount(dynamic.CurrentSupply, asset.Precision),
		AccumulatedFees:    FormatAmount(dynamic.AccumulatedFees, asset.Precision),
		MakerFeePercent:    FormatPercent(opts.MakerFeePercent),
		TakerFeePercent:    FormatPercent(opts.TakerFeePercent),
		TakerFeeSet:        opts.TakerFeeSet,
		EffectiveTakerFee:  FormatPercent(opts.EffectiveTakerFeePercent(postActivation)),
		MaxMarketFee:       FormatAmount(opts.MaxMarketFee, asset.Precision),
		ChargeMarketFee:    opts.ChargeMarketFee,
		TakerFeesActivated: postActivation,
	}
}

// AssetReqHandler returns one asset with its fee options.
func AssetReqHandler(q Querier, assets store.Mapper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		symbol := strings.ToUpper(mux.Vars(r)["symbol"])
		if err := types.ValidateAssetSymbol(symbol); err != nil {
			throw(w, http.StatusBadRequest, err.Error())
			return
		}

		var (
			resp  AssetResponse
			found bool
			err   error
		)
		q.WithQueryContext(func(ctx sdk.Context) {
			if !assets.Exists(ctx, symbol) {
				return
			}
			found = true
			var asset types.Asset
			var dynamic types.AssetDynamicData
			if asset, err = assets.GetAsset(ctx, symbol); err != nil {
				return
			}
			if dynamic, err = assets.GetDynamicData(ctx, symbol); err != nil {
				return
			}
			resp = toAssetResponse(asset, dynamic, q.Gate().IsPostActivation(ctx.BlockHeader().Time))
		})
		if !found {
			throw(w, http.StatusNotFound, fmt.Sprintf("asset %s does not exist", symbol))
			return
		}
		if err != nil {
			throw(w, http.StatusInternalServerError, err.Error())
			return
		}
		write(w, resp)
	}
}

// AssetsReqHandler lists every asset with its fee options.
func AssetsReqHandler(q Querier, assets store.Mapper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := make([]AssetResponse, 0)
		var err error
		q.WithQueryContext(func(ctx sdk.Context) {
			postActivation := q.Gate().IsPostActivation(ctx.BlockHeader().Time)
			for _, asset := range assets.GetAssetList(ctx) {
				var dynamic types.AssetDynamicData
				if dynamic, err = assets.GetDynamicData(ctx, asset.Symbol); err != nil {
					return
				}
				resp = append(resp, toAssetResponse(asset, dynamic, postActivation))
			}
		})
		if err != nil {
			throw(w, http.StatusInternalServerError, err.Error())
			return
		}
		write(w, resp)
	}
}
