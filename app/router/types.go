package router

import sdk "github.com/cosmos/cosmos-sdk/types"

// Router provides handlers for each transaction type.
type Router interface {
	AddRoute(r string, h sdk.Handler) (rtr Router)
	Route(path string) (h sdk.Handler)
	Routes() []string
}

type router struct {
	routes map[string]sdk.Handler
	order  []string
}
