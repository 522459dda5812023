package pub

import (
	"fmt"
	"sort"

	sdk "github.com/cosmos/cosmos-sdk/types"

	me "github.com/ledger-dex/node/plugins/dex/matcheng"
)

type msgType int8

const (
	executionResultTpe msgType = iota
	blockFeeTpe
)

// the strings should be keep consistence with top level record name in schemas.go
func (this msgType) String() string {
	switch this {
	case executionResultTpe:
		return "ExecutionResults"
	case blockFeeTpe:
		return "BlockFee"
	default:
		return "Unknown"
	}
}

type AvroOrJsonMsg interface {
	ToNativeMap() map[string]interface{}
	String() string
}

// ExecutionResults carries the fills of one block.
type ExecutionResults struct {
	Height    int64  `json:"height"`
	Timestamp int64  `json:"timestamp"` // milli seconds since Epoch
	NumOfMsgs int    `json:"numOfMsgs"` // number of individual messages we published, consumer can verify messages they received against this field to make sure they does not miss messages
	Trades    trades `json:"trades"`
}

func (msg *ExecutionResults) String() string {
	return fmt.Sprintf("ExecutionResult at height: %d, numOfMsgs: %d", msg.Height, msg.NumOfMsgs)
}

func (msg *ExecutionResults) ToNativeMap() map[string]interface{} {
	var native = make(map[string]interface{})
	native["height"] = msg.Height
	native["timestamp"] = msg.Timestamp
	native["numOfMsgs"] = msg.NumOfMsgs
	if msg.Trades.NumOfMsgs > 0 {
		native["trades"] = map[string]interface{}{"org.ledger.dex.model.avro.Trades": msg.Trades.ToNativeMap()}
	} else {
		native["trades"] = nil
	}
	return native
}

type trades struct {
	NumOfMsgs int      `json:"numOfMsgs"`
	Trades    []*Trade `json:"trades"`
}

func (msg *trades) String() string {
	return fmt.Sprintf("Trades numOfMsgs: %d", msg.NumOfMsgs)
}

func (msg *trades) ToNativeMap() map[string]interface{} {
	var native = make(map[string]interface{})
	native["numOfMsgs"] = msg.NumOfMsgs
	ts := make([]map[string]interface{}, len(msg.Trades), len(msg.Trades))
	for idx, trade := range msg.Trades {
		ts[idx] = trade.toNativeMap()
	}
	native["trades"] = ts
	return native
}

// Trade is the published form of one fill. Fees are rendered as "amount:SYMBOL".
type Trade struct {
	Id        string `json:"id"`
	Symbol    string `json:"symbol"`
	MakerId   string `json:"makerId"`
	TakerId   string `json:"takerId"`
	MakerAddr string `json:"makerAddr"`
	TakerAddr string `json:"takerAddr"`
	MakerPays string `json:"makerPays"`
	TakerPays string `json:"takerPays"`
	MakerFee  string `json:"makerFee"`
	TakerFee  string `json:"takerFee"`
}

func (msg *Trade) String() string {
	return fmt.Sprintf("Trade: %v", msg.toNativeMap())
}

func (msg *Trade) toNativeMap() map[string]interface{} {
	var native = make(map[string]interface{})
	native["id"] = msg.Id
	native["symbol"] = msg.Symbol
	native["makerId"] = msg.MakerId
	native["takerId"] = msg.TakerId
	native["makerAddr"] = msg.MakerAddr
	native["takerAddr"] = msg.TakerAddr
	native["makerPays"] = msg.MakerPays
	native["takerPays"] = msg.TakerPays
	native["makerFee"] = msg.MakerFee
	native["takerFee"] = msg.TakerFee
	return native
}

func coinString(coin sdk.Coin) string {
	return fmt.Sprintf("%d:%s", coin.Amount, coin.Denom)
}

// NewTrades converts the fills of a block. Trade ids are "<height>-<index in block>".
func NewTrades(height int64, fills []me.Fill) []*Trade {
	res := make([]*Trade, len(fills))
	for i, fill := range fills {
		res[i] = &Trade{
			Id:        fmt.Sprintf("%d-%d", height, i),
			Symbol:    fill.Pair,
			MakerId:   fmt.Sprintf("%d", fill.MakerId),
			TakerId:   fmt.Sprintf("%d", fill.TakerId),
			MakerAddr: fill.Maker.String(),
			TakerAddr: fill.Taker.String(),
			MakerPays: coinString(fill.MakerPays),
			TakerPays: coinString(fill.TakerPays),
			MakerFee:  coinString(fill.MakerFee),
			TakerFee:  coinString(fill.TakerFee),
		}
	}
	return res
}

// BlockFee lists the market fees issuers accumulated in a block, by asset.
type BlockFee struct {
	Height int64      `json:"height"`
	Fees   []AssetFee `json:"fees"`
}

type AssetFee struct {
	Symbol string `json:"symbol"`
	Amount int64  `json:"amount"`
}

func (msg BlockFee) String() string {
	return fmt.Sprintf("Blockfee: at height: %d, fees: %v", msg.Height, msg.Fees)
}

func (msg BlockFee) ToNativeMap() map[string]interface{} {
	var native = make(map[string]interface{})
	native["height"] = msg.Height
	fees := make([]map[string]interface{}, len(msg.Fees), len(msg.Fees))
	for idx, fee := range msg.Fees {
		fees[idx] = map[string]interface{}{
			"symbol": fee.Symbol,
			"amount": fee.Amount,
		}
	}
	native["fees"] = fees
	return native
}

// NewBlockFee sums the maker and taker fees of fills per asset, sorted by symbol.
func NewBlockFee(height int64, fills []me.Fill) BlockFee {
	sums := make(map[string]int64)
	for _, fill := range fills {
		for _, fee := range []sdk.Coin{fill.MakerFee, fill.TakerFee} {
			if fee.Amount > 0 {
				sums[fee.Denom] += fee.Amount
			}
		}
	}
	fees := make([]AssetFee, 0, len(sums))
	for symbol, amount := range sums {
		fees = append(fees, AssetFee{Symbol: symbol, Amount: amount})
	}
	sort.Slice(fees, func(i, j int) bool { return fees[i].Symbol < fees[j].Symbol })
	return BlockFee{Height: height, Fees: fees}
}
