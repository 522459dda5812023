package order

import (
	"encoding/json"
	"fmt"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/ledger-dex/node/common/types"
	dexTypes "github.com/ledger-dex/node/plugins/dex/types"
)

const (
	RouteNewOrder    = "orderNew"
	RouteCancelOrder = "orderCancel"
)

var _ sdk.Msg = NewOrderMsg{}

// NewOrderMsg offers AmountToSell for at least MinToReceive. The two coins also fix the limit price.
type NewOrderMsg struct {
	Sender       sdk.AccAddress `json:"sender"`
	AmountToSell sdk.Coin       `json:"amount_to_sell"`
	MinToReceive sdk.Coin       `json:"min_to_receive"`
	Expiration   time.Time      `json:"expiration"`
}

func NewNewOrderMsg(sender sdk.AccAddress, sell, receive sdk.Coin, expiration time.Time) NewOrderMsg {
	return NewOrderMsg{
		Sender:       sender,
		AmountToSell: sell,
		MinToReceive: receive,
		Expiration:   expiration,
	}
}

func (msg NewOrderMsg) Route() string                { return RouteNewOrder }
func (msg NewOrderMsg) Type() string                 { return RouteNewOrder }
func (msg NewOrderMsg) GetSigners() []sdk.AccAddress { return []sdk.AccAddress{msg.Sender} }
func (msg NewOrderMsg) String() string {
	return fmt.Sprintf("NewOrderMsg{Sender: %v, Sell: %v, Receive: %v, Expiration: %v}",
		msg.Sender, msg.AmountToSell, msg.MinToReceive, msg.Expiration)
}

// ValidateBasic is used to quickly disqualify obviously invalid messages quickly
func (msg NewOrderMsg) ValidateBasic() sdk.Error {
	if len(msg.Sender) == 0 {
		return sdk.ErrInvalidAddress("sender address cannot be empty")
	}
	if err := types.ValidateAssetSymbol(msg.AmountToSell.Denom); err != nil {
		return dexTypes.ErrInvalidOrderParam("amount_to_sell", err.Error())
	}
	if err := types.ValidateAssetSymbol(msg.MinToReceive.Denom); err != nil {
		return dexTypes.ErrInvalidOrderParam("min_to_receive", err.Error())
	}
	if msg.AmountToSell.Denom == msg.MinToReceive.Denom {
		return dexTypes.ErrInvalidTradingPair("an order can not sell and receive the same asset")
	}
	if msg.AmountToSell.Amount <= 0 {
		return dexTypes.ErrInvalidOrderParam("amount_to_sell", "should be positive")
	}
	if msg.MinToReceive.Amount <= 0 {
		return dexTypes.ErrInvalidOrderParam("min_to_receive", "should be positive")
	}
	if msg.Expiration.IsZero() {
		return dexTypes.ErrInvalidOrderParam("expiration", "should be set")
	}
	return nil
}

func (msg NewOrderMsg) GetSignBytes() []byte {
	b, err := json.Marshal(msg)
	if err != nil {
		panic(err)
	}
	return b
}

func (msg NewOrderMsg) GetInvolvedAddresses() []sdk.AccAddress {
	return msg.GetSigners()
}

var _ sdk.Msg = CancelOrderMsg{}

type CancelOrderMsg struct {
	Sender  sdk.AccAddress `json:"sender"`
	OrderId uint64         `json:"order_id"`
}

func NewCancelOrderMsg(sender sdk.AccAddress, id uint64) CancelOrderMsg {
	return CancelOrderMsg{
		Sender:  sender,
		OrderId: id,
	}
}

func (msg CancelOrderMsg) Route() string                { return RouteCancelOrder }
func (msg CancelOrderMsg) Type() string                 { return RouteCancelOrder }
func (msg CancelOrderMsg) GetSigners() []sdk.AccAddress { return []sdk.AccAddress{msg.Sender} }
func (msg CancelOrderMsg) String() string {
	return fmt.Sprintf("CancelOrderMsg{Sender: %v, OrderId: %d}", msg.Sender, msg.OrderId)
}

func (msg CancelOrderMsg) ValidateBasic() sdk.Error {
	if len(msg.Sender) == 0 {
		return sdk.ErrInvalidAddress("sender address cannot be empty")
	}
	if msg.OrderId == 0 {
		return dexTypes.ErrInvalidOrderParam("order_id", "should be positive")
	}
	return nil
}

func (msg CancelOrderMsg) GetSignBytes() []byte {
	b, err := json.Marshal(msg)
	if err != nil {
		panic(err)
	}
	return b
}

func (msg CancelOrderMsg) GetInvolvedAddresses() []sdk.AccAddress {
	return msg.GetSigners()
}
