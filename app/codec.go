package app

import (
	"encoding/json"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/ledger-dex/node/common/types"
	"github.com/ledger-dex/node/plugins/assets"
	"github.com/ledger-dex/node/plugins/assets/issue"
	"github.com/ledger-dex/node/plugins/assets/update"
	"github.com/ledger-dex/node/plugins/dex"
	"github.com/ledger-dex/node/plugins/dex/order"
	"github.com/ledger-dex/node/wire"
)

// MakeCodec creates the amino codec of the persisted records and messages.
func MakeCodec() *wire.Codec {
	var cdc = wire.NewCodec()
	cdc.RegisterInterface((*sdk.Msg)(nil), nil)
	types.RegisterWire(cdc)
	assets.RegisterWire(cdc)
	dex.RegisterWire(cdc)
	return cdc
}

type msgDecoder func(value []byte) (sdk.Msg, error)

// txs are json objects {"type": <msg route>, "value": <msg>}
var msgDecoders = map[string]msgDecoder{
	issue.IssueRoute: func(value []byte) (sdk.Msg, error) {
		var msg issue.IssueMsg
		err := json.Unmarshal(value, &msg)
		return msg, err
	},
	issue.MintRoute: func(value []byte) (sdk.Msg, error) {
		var msg issue.MintMsg
		err := json.Unmarshal(value, &msg)
		return msg, err
	},
	update.Route: func(value []byte) (sdk.Msg, error) {
		var msg update.UpdateFeeOptionsMsg
		err := json.Unmarshal(value, &msg)
		return msg, err
	},
	order.RouteNewOrder: func(value []byte) (sdk.Msg, error) {
		var msg order.NewOrderMsg
		err := json.Unmarshal(value, &msg)
		return msg, err
	},
	order.RouteCancelOrder: func(value []byte) (sdk.Msg, error) {
		var msg order.CancelOrderMsg
		err := json.Unmarshal(value, &msg)
		return msg, err
	},
}

// DecodeTx parses a json tx into its message.
func DecodeTx(txBytes []byte) (sdk.Msg, error) {
	if !gjson.ValidBytes(txBytes) {
		return nil, errors.New("tx is not valid json")
	}
	tpe := gjson.GetBytes(txBytes, "type").String()
	decoder, ok := msgDecoders[tpe]
	if !ok {
		return nil, errors.Errorf("unknown tx type %q", tpe)
	}
	value := gjson.GetBytes(txBytes, "value")
	if !value.IsObject() {
		return nil, errors.Errorf("tx %s has no value", tpe)
	}
	msg, err := decoder([]byte(value.Raw))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s tx", tpe)
	}
	return msg, nil
}

// EncodeTx is the inverse of DecodeTx.
func EncodeTx(msg sdk.Msg) ([]byte, error) {
	value, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Type  string          `json:"type"`
		Value json.RawMessage `json:"value"`
	}{msg.Route(), value})
}
