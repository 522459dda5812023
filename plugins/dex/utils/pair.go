package utils

import (
	"errors"
	"fmt"
	"strings"
)

const pairSeparator = "_"

// Assets2TradingPair names the market of two assets. The order of the arguments does not matter:
// the lexicographically smaller symbol is always the base.
func Assets2TradingPair(a, b string) (symbol string) {
	a, b = strings.ToUpper(a), strings.ToUpper(b)
	if b < a {
		a, b = b, a
	}
	return fmt.Sprintf("%s%s%s", a, pairSeparator, b)
}

func TradingPair2Assets(symbol string) (baseAsset, quoteAsset string, err error) {
	assets := strings.SplitN(strings.ToUpper(symbol), pairSeparator, 2)
	if len(assets) != 2 || assets[0] == "" || assets[1] == "" {
		return symbol, "", errors.New("invalid trading pair symbol")
	}
	if assets[0] >= assets[1] {
		return symbol, "", errors.New("the base asset should sort before the quote asset")
	}
	return assets[0], assets[1], nil
}
