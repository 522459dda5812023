package handlers

import (
	"net/http"
	"strings"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gorilla/mux"

	me "github.com/ledger-dex/node/plugins/dex/matcheng"
	"github.com/ledger-dex/node/plugins/dex/utils"
)

const defaultDepthLevels = 20

type level struct {
	Price    string `json:"price"`
	Quantity int64  `json:"quantity"`
	Orders   int    `json:"orders"`
}

// DepthResponse lists price levels best first. Buy quantities are in the quote asset, sell quantities in the base asset.
type DepthResponse struct {
	Pair  string  `json:"pair"`
	Buys  []level `json:"buys"`
	Sells []level `json:"sells"`
}

type openOrder struct {
	Id           uint64 `json:"id"`
	Pair         string `json:"pair"`
	Side         string `json:"side"`
	Price        string `json:"price"`
	ForSale      string `json:"for_sale"`
	MinToReceive string `json:"min_to_receive"`
	Expiration   string `json:"expiration"`
}

type trade struct {
	MakerId   uint64 `json:"maker_id"`
	TakerId   uint64 `json:"taker_id"`
	Maker     string `json:"maker"`
	Taker     string `json:"taker"`
	MakerPays string `json:"maker_pays"`
	TakerPays string `json:"taker_pays"`
	MakerFee  string `json:"maker_fee"`
	TakerFee  string `json:"taker_fee"`
}

func toLevels(side int8, levels []me.PriceLevel) []level {
	res := make([]level, 0, len(levels))
	for _, l := range levels {
		res = append(res, level{
			Price:    quotePerBase(side, l.Price).String(),
			Quantity: l.ForSale,
			Orders:   l.Orders,
		})
	}
	return res
}

func sideName(side int8) string {
	if side == me.BUYSIDE {
		return "BUY"
	}
	return "SELL"
}

// PairsReqHandler lists the pairs that have an order book.
func PairsReqHandler(q Querier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		write(w, q.Pairs())
	}
}

func parsePair(raw string) (string, bool) {
	pair := strings.ToUpper(raw)
	base, quote, err := utils.TradingPair2Assets(pair)
	return pair, err == nil && utils.Assets2TradingPair(base, quote) == pair
}

// DepthReqHandler returns the aggregated depth of a pair, at most maxLevels per side.
func DepthReqHandler(q Querier, maxLevels int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		pair, ok := parsePair(vars["symbol"])
		if !ok {
			throw(w, http.StatusBadRequest, "invalid pair "+pair)
			return
		}
		limit, err := parseLimit(vars["limit"], defaultDepthLevels, maxLevels)
		if err != nil {
			throw(w, http.StatusBadRequest, err.Error())
			return
		}

		buys, sells := q.OrderBook(pair, limit)
		write(w, DepthResponse{
			Pair:  pair,
			Buys:  toLevels(me.BUYSIDE, buys),
			Sells: toLevels(me.SELLSIDE, sells),
		})
	}
}

// OpenOrdersReqHandler returns the resting orders of an address.
func OpenOrdersReqHandler(q Querier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		addr, err := sdk.AccAddressFromBech32(mux.Vars(r)["address"])
		if err != nil {
			throw(w, http.StatusBadRequest, err.Error())
			return
		}

		resp := make([]openOrder, 0)
		for _, o := range q.OpenOrders(addr) {
			resp = append(resp, openOrder{
				Id:           o.Id,
				Pair:         o.Pair,
				Side:         sideName(o.Side),
				Price:        quotePerBase(o.Side, o.SellPrice).String(),
				ForSale:      sdk.NewCoin(o.SellDenom(), o.ForSale).String(),
				MinToReceive: sdk.NewCoin(o.ReceiveDenom(), o.MinToReceive()).String(),
				Expiration:   o.Expiration.UTC().Format(time.RFC3339),
			})
		}
		write(w, resp)
	}
}

// TradesReqHandler returns the latest fills of a pair, newest first.
func TradesReqHandler(q Querier, maxTrades int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		pair, ok := parsePair(vars["symbol"])
		if !ok {
			throw(w, http.StatusBadRequest, "invalid pair "+pair)
			return
		}
		limit, err := parseLimit(vars["limit"], maxTrades, maxTrades)
		if err != nil {
			throw(w, http.StatusBadRequest, err.Error())
			return
		}

		resp := make([]trade, 0)
		for _, f := range q.RecentFills(pair, limit) {
			resp = append(resp, trade{
				MakerId:   f.MakerId,
				TakerId:   f.TakerId,
				Maker:     f.Maker.String(),
				Taker:     f.Taker.String(),
				MakerPays: f.MakerPays.String(),
				TakerPays: f.TakerPays.String(),
				MakerFee:  f.MakerFee.String(),
				TakerFee:  f.TakerFee.String(),
			})
		}
		write(w, resp)
	}
}
