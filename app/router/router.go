package router

import (
	"fmt"
	"regexp"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// NewRouter creates a new router
func NewRouter() Router {
	return &router{
		routes: make(map[string]sdk.Handler),
	}
}

var isAlpha = regexp.MustCompile(`^[a-zA-Z]+$`).MatchString

// AddRoute adds a msg route to the router.
func (rtr *router) AddRoute(r string, h sdk.Handler) Router {
	if !isAlpha(r) {
		panic("route expressions can only contain alphabet characters")
	}
	if _, ok := rtr.routes[r]; ok {
		panic(fmt.Sprintf("route %s has already been registered", r))
	}
	rtr.routes[r] = h
	rtr.order = append(rtr.order, r)
	return rtr
}

// Route returns the handler of path, nil if there is none.
func (rtr *router) Route(path string) (h sdk.Handler) {
	return rtr.routes[path]
}

// Routes lists the registered paths in registration order.
func (rtr *router) Routes() []string {
	return append([]string(nil), rtr.order...)
}
