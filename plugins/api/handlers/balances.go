package handlers

import (
	"net/http"
	"strconv"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gorilla/mux"

	"github.com/ledger-dex/node/common/account"
	"github.com/ledger-dex/node/common/types"
	"github.com/ledger-dex/node/plugins/assets/store"
)

type Balance struct {
	Symbol string `json:"symbol"`
	Amount int64  `json:"amount"`
	Units  string `json:"units"`
	Height int64  `json:"height,omitempty"`
}

type BalancesResponse struct {
	Address  string    `json:"address"`
	Balances []Balance `json:"balances"`
}

func toBalance(ctx sdk.Context, assets store.Mapper, coin sdk.Coin) Balance {
	b := Balance{Symbol: coin.Denom, Amount: coin.Amount}
	if asset, err := assets.GetAsset(ctx, coin.Denom); err == nil {
		b.Units = FormatAmount(coin.Amount, asset.Precision)
	}
	return b
}

// BalancesReqHandler returns every non-zero balance of an address.
func BalancesReqHandler(q Querier, accounts account.Keeper, assets store.Mapper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bech32addr := mux.Vars(r)["address"]
		addr, err := sdk.AccAddressFromBech32(bech32addr)
		if err != nil {
			throw(w, http.StatusBadRequest, err.Error())
			return
		}

		resp := BalancesResponse{Address: bech32addr, Balances: make([]Balance, 0)}
		q.WithQueryContext(func(ctx sdk.Context) {
			for _, coin := range accounts.GetCoins(ctx, addr) {
				resp.Balances = append(resp.Balances, toBalance(ctx, assets, coin))
			}
		})
		write(w, resp)
	}
}

// BalanceReqHandler returns the balance of an address in one asset.
// With a height query parameter the balance is read from that committed block.
func BalanceReqHandler(q Querier, accounts account.Keeper, assets store.Mapper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		addr, err := sdk.AccAddressFromBech32(vars["address"])
		if err != nil {
			throw(w, http.StatusBadRequest, err.Error())
			return
		}
		symbol := strings.ToUpper(vars["symbol"])
		if err := types.ValidateAssetSymbol(symbol); err != nil {
			throw(w, http.StatusBadRequest, err.Error())
			return
		}

		var height int64
		if raw := r.URL.Query().Get("height"); raw != "" {
			if height, err = strconv.ParseInt(raw, 10, 64); err != nil || height <= 0 {
				throw(w, http.StatusBadRequest, "invalid height "+raw)
				return
			}
		}

		var resp Balance
		if height > 0 {
			amount, err := q.BalanceAt(addr, symbol, height)
			if err != nil {
				throw(w, http.StatusNotFound, err.Error())
				return
			}
			q.WithQueryContext(func(ctx sdk.Context) {
				resp = toBalance(ctx, assets, sdk.NewCoin(symbol, amount))
			})
			resp.Height = height
			write(w, resp)
			return
		}
		q.WithQueryContext(func(ctx sdk.Context) {
			resp = toBalance(ctx, assets, sdk.NewCoin(symbol, accounts.GetBalance(ctx, addr, symbol)))
		})
		write(w, resp)
	}
}
