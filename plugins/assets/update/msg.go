package update

import (
	"encoding/json"
	"errors"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/ledger-dex/node/common/types"
)

const Route = "assetsUpdateFee"

var _ sdk.Msg = UpdateFeeOptionsMsg{}

// UpdateFeeOptionsMsg replaces the fee schedule of an asset. NewTakerFeePercent and MaxMarketFee are optional.
type UpdateFeeOptionsMsg struct {
	Issuer             sdk.AccAddress `json:"issuer"`
	AssetToUpdate      string         `json:"asset_to_update"`
	NewMakerFeePercent int64          `json:"new_maker_fee_percent"`
	NewTakerFeePercent *int64         `json:"new_taker_fee_percent,omitempty"`
	MaxMarketFee       *int64         `json:"max_market_fee,omitempty"`
}

func NewUpdateFeeOptionsMsg(issuer sdk.AccAddress, symbol string, makerFeePercent int64) UpdateFeeOptionsMsg {
	return UpdateFeeOptionsMsg{
		Issuer:             issuer,
		AssetToUpdate:      symbol,
		NewMakerFeePercent: makerFeePercent,
	}
}

func (msg UpdateFeeOptionsMsg) WithTakerFeePercent(percent int64) UpdateFeeOptionsMsg {
	msg.NewTakerFeePercent = &percent
	return msg
}

func (msg UpdateFeeOptionsMsg) WithMaxMarketFee(max int64) UpdateFeeOptionsMsg {
	msg.MaxMarketFee = &max
	return msg
}

// UnmarshalJSON also accepts market_fee_percent, the name the maker fee had before taker fees existed.
func (msg *UpdateFeeOptionsMsg) UnmarshalJSON(bz []byte) error {
	var raw struct {
		Issuer             sdk.AccAddress `json:"issuer"`
		AssetToUpdate      string         `json:"asset_to_update"`
		NewMakerFeePercent *int64         `json:"new_maker_fee_percent"`
		MarketFeePercent   *int64         `json:"market_fee_percent"`
		NewTakerFeePercent *int64         `json:"new_taker_fee_percent"`
		MaxMarketFee       *int64         `json:"max_market_fee"`
	}
	if err := json.Unmarshal(bz, &raw); err != nil {
		return err
	}
	maker := raw.NewMakerFeePercent
	if maker == nil {
		maker = raw.MarketFeePercent
	}
	if maker == nil {
		return errors.New("new_maker_fee_percent is required")
	}
	*msg = UpdateFeeOptionsMsg{
		Issuer:             raw.Issuer,
		AssetToUpdate:      raw.AssetToUpdate,
		NewMakerFeePercent: *maker,
		NewTakerFeePercent: raw.NewTakerFeePercent,
		MaxMarketFee:       raw.MaxMarketFee,
	}
	return nil
}

func (msg UpdateFeeOptionsMsg) Route() string                { return Route }
func (msg UpdateFeeOptionsMsg) Type() string                 { return Route }
func (msg UpdateFeeOptionsMsg) GetSigners() []sdk.AccAddress { return []sdk.AccAddress{msg.Issuer} }

func (msg UpdateFeeOptionsMsg) String() string {
	taker := "unset"
	if msg.NewTakerFeePercent != nil {
		taker = fmt.Sprint(*msg.NewTakerFeePercent)
	}
	return fmt.Sprintf("UpdateFeeOptionsMsg{issuer: %s, asset: %s, maker: %d, taker: %s}",
		msg.Issuer, msg.AssetToUpdate, msg.NewMakerFeePercent, taker)
}

// ValidateBasic only checks the shape of the message. Fee ranges are checked by ApplyUpdate so that
// the same rules apply however the update reaches the ledger.
func (msg UpdateFeeOptionsMsg) ValidateBasic() sdk.Error {
	if len(msg.Issuer) == 0 {
		return sdk.ErrInvalidAddress("issuer address cannot be empty")
	}
	if err := types.ValidateAssetSymbol(msg.AssetToUpdate); err != nil {
		return sdk.ErrInvalidCoins(err.Error())
	}
	return nil
}

func (msg UpdateFeeOptionsMsg) GetSignBytes() []byte {
	b, err := json.Marshal(msg)
	if err != nil {
		panic(err)
	}
	return b
}

func (msg UpdateFeeOptionsMsg) GetInvolvedAddresses() []sdk.AccAddress {
	return msg.GetSigners()
}

// FeeOptionsUpdate is the requested change, independent of who sent it.
type FeeOptionsUpdate struct {
	MakerFeePercent int64
	TakerFeePercent *int64
	MaxMarketFee    *int64
}

func (msg UpdateFeeOptionsMsg) FeeOptionsUpdate() FeeOptionsUpdate {
	return FeeOptionsUpdate{
		MakerFeePercent: msg.NewMakerFeePercent,
		TakerFeePercent: msg.NewTakerFeePercent,
		MaxMarketFee:    msg.MaxMarketFee,
	}
}
