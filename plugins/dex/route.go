package dex

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/ledger-dex/node/plugins/dex/order"
)

// Routes exports dex message routes
func Routes(keeper *order.Keeper) map[string]sdk.Handler {
	routes := make(map[string]sdk.Handler)
	orderHandler := order.NewHandler(keeper)
	routes[order.RouteNewOrder] = orderHandler
	routes[order.RouteCancelOrder] = orderHandler
	return routes
}
