package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/shopspring/decimal"

	"github.com/ledger-dex/node/common/upgrade"
	me "github.com/ledger-dex/node/plugins/dex/matcheng"
)

const responseType = "application/json"

// Querier is the read side of the ledger the handlers serve from.
type Querier interface {
	WithQueryContext(fn func(ctx sdk.Context))
	Gate() *upgrade.Gate
	OrderBook(pair string, maxLevels int) (buys, sells []me.PriceLevel)
	OpenOrders(addr sdk.AccAddress) []me.LimitOrder
	RecentFills(pair string, limit int) []me.Fill
	Pairs() []string
	BalanceAt(addr sdk.AccAddress, denom string, height int64) (int64, error)
}

func throw(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(status)
	w.Write([]byte(message))
}

func write(w http.ResponseWriter, resp interface{}) {
	output, err := json.Marshal(resp)
	if err != nil {
		throw(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", responseType)
	w.WriteHeader(http.StatusOK)
	w.Write(output)
}

// FormatPercent renders a fee percent with its two implied decimals, e.g. 250 as "2.5".
func FormatPercent(percent int64) string {
	return decimal.New(percent, -2).String()
}

// FormatAmount renders a raw amount in whole units of an asset with the given precision.
func FormatAmount(amount, precision int64) string {
	return decimal.New(amount, -int32(precision)).StringFixed(int32(precision))
}

// quotePerBase is the price of an order in units of the pair's quote asset per base asset.
func quotePerBase(side int8, price me.SellPrice) decimal.Decimal {
	num, den := price.Quote.Amount, price.Base.Amount
	if side == me.BUYSIDE {
		num, den = den, num
	}
	if den == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(num).Div(decimal.NewFromInt(den)).Round(8)
}

func parseLimit(raw string, def, max int) (int, error) {
	if raw == "" {
		return def, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if limit <= 0 || limit > max {
		return max, nil
	}
	return limit, nil
}
