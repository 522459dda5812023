package order

import (
	"encoding/json"
	"fmt"
	"reflect"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

type NewOrderResponse struct {
	OrderID uint64 `json:"order_id"`
}

// NewHandler - returns a handler for dex type messages.
func NewHandler(k *Keeper) sdk.Handler {
	return func(ctx sdk.Context, msg sdk.Msg) sdk.Result {
		switch msg := msg.(type) {
		case NewOrderMsg:
			return handleNewOrder(ctx, k, msg)
		case CancelOrderMsg:
			return handleCancelOrder(ctx, k, msg)
		default:
			errMsg := fmt.Sprintf("Unrecognized dex msg type: %v", reflect.TypeOf(msg).Name())
			return sdk.ErrUnknownRequest(errMsg).Result()
		}
	}
}

func handleNewOrder(ctx sdk.Context, k *Keeper, msg NewOrderMsg) sdk.Result {
	id, err := k.ApplyOrderPlacement(ctx, msg)
	if err != nil {
		return err.Result()
	}
	response, jsonErr := json.Marshal(NewOrderResponse{OrderID: id})
	if jsonErr != nil {
		return sdk.ErrInternal(jsonErr.Error()).Result()
	}
	return sdk.Result{
		Data: response,
	}
}

func handleCancelOrder(ctx sdk.Context, k *Keeper, msg CancelOrderMsg) sdk.Result {
	if err := k.CancelOrder(ctx, msg); err != nil {
		return err.Result()
	}
	return sdk.Result{}
}
