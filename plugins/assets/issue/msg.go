package issue

import (
	"encoding/json"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/ledger-dex/node/common/types"
)

const (
	IssueRoute = "assetsIssue"
	MintRoute  = "assetsMint"
)

var _ sdk.Msg = IssueMsg{}

// IssueMsg creates an asset. The taker fee starts unset and inert.
type IssueMsg struct {
	From            sdk.AccAddress `json:"from"`
	Symbol          string         `json:"symbol"`
	Precision       int64          `json:"precision"`
	MaxSupply       int64          `json:"max_supply"`
	Smart           bool           `json:"smart"`
	MakerFeePercent int64          `json:"market_fee_percent"`
	MaxMarketFee    int64          `json:"max_market_fee"`
	ChargeMarketFee bool           `json:"charge_market_fee"`
}

func NewIssueMsg(from sdk.AccAddress, symbol string, precision, maxSupply int64, makerFeePercent int64, chargeMarketFee bool) IssueMsg {
	return IssueMsg{
		From:            from,
		Symbol:          symbol,
		Precision:       precision,
		MaxSupply:       maxSupply,
		MakerFeePercent: makerFeePercent,
		ChargeMarketFee: chargeMarketFee,
	}
}

func (msg IssueMsg) Route() string                { return IssueRoute }
func (msg IssueMsg) Type() string                 { return IssueRoute }
func (msg IssueMsg) String() string               { return fmt.Sprintf("IssueMsg{%#v}", msg) }
func (msg IssueMsg) GetSigners() []sdk.AccAddress { return []sdk.AccAddress{msg.From} }

func (msg IssueMsg) ToAsset() types.Asset {
	return types.Asset{
		Symbol:    msg.Symbol,
		Issuer:    msg.From,
		Precision: msg.Precision,
		MaxSupply: msg.MaxSupply,
		Smart:     msg.Smart,
		FeeOptions: types.AssetFeeOptions{
			MakerFeePercent: msg.MakerFeePercent,
			MaxMarketFee:    msg.MaxMarketFee,
			ChargeMarketFee: msg.ChargeMarketFee,
		},
	}
}

// ValidateBasic does a simple validation check that
// doesn't require access to any other information.
func (msg IssueMsg) ValidateBasic() sdk.Error {
	if len(msg.From) == 0 {
		return sdk.ErrInvalidAddress("sender address cannot be empty")
	}
	if err := types.ValidateAsset(msg.ToAsset()); err != nil {
		return sdk.ErrInvalidCoins(err.Error())
	}
	return nil
}

func (msg IssueMsg) GetSignBytes() []byte {
	b, err := json.Marshal(msg)
	if err != nil {
		panic(err)
	}
	return b
}

func (msg IssueMsg) GetInvolvedAddresses() []sdk.AccAddress {
	return msg.GetSigners()
}

var _ sdk.Msg = MintMsg{}

// MintMsg issues new supply of an asset to an account. Only the issuer may mint.
type MintMsg struct {
	From   sdk.AccAddress `json:"from"`
	Symbol string         `json:"symbol"`
	Amount int64          `json:"amount"`
	To     sdk.AccAddress `json:"to"`
}

func NewMintMsg(from sdk.AccAddress, symbol string, amount int64, to sdk.AccAddress) MintMsg {
	return MintMsg{
		From:   from,
		Symbol: symbol,
		Amount: amount,
		To:     to,
	}
}

func (msg MintMsg) Route() string                { return MintRoute }
func (msg MintMsg) Type() string                 { return MintRoute }
func (msg MintMsg) String() string               { return fmt.Sprintf("MintMsg{%#v}", msg) }
func (msg MintMsg) GetSigners() []sdk.AccAddress { return []sdk.AccAddress{msg.From} }

func (msg MintMsg) ValidateBasic() sdk.Error {
	if len(msg.From) == 0 {
		return sdk.ErrInvalidAddress("sender address cannot be empty")
	}
	if len(msg.To) == 0 {
		return sdk.ErrInvalidAddress("receiver address cannot be empty")
	}
	if err := types.ValidateAssetSymbol(msg.Symbol); err != nil {
		return sdk.ErrInvalidCoins(err.Error())
	}
	if msg.Amount <= 0 || msg.Amount > types.MaxTotalSupply {
		return sdk.ErrInvalidCoins("mint amount should be positive and not exceed the max total supply")
	}
	return nil
}

func (msg MintMsg) GetSignBytes() []byte {
	b, err := json.Marshal(msg)
	if err != nil {
		panic(err)
	}
	return b
}

func (msg MintMsg) GetInvolvedAddresses() []sdk.AccAddress {
	return []sdk.AccAddress{msg.From, msg.To}
}
