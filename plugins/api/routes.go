package api

const version = "v1"
const prefix = "/api/" + version

func (s *server) bindRoutes() *server {
	r := s.router
	r.Use(s.recoverPanics)

	// version routes
	r.HandleFunc("/version", s.handleVersionReq()).
		Methods("GET")
	r.HandleFunc("/node_name", s.handleNodeNameReq()).
		Methods("GET")

	// dex routes
	r.HandleFunc(prefix+"/pairs", s.handlePairsReq()).
		Methods("GET")
	r.HandleFunc(prefix+"/depth", s.handleDexDepthReq()).
		Queries("symbol", "{symbol}", "limit", "{limit:[0-9]+}").
		Methods("GET")
	r.HandleFunc(prefix+"/depth", s.handleDexDepthReq()).
		Queries("symbol", "{symbol}").
		Methods("GET")
	r.HandleFunc(prefix+"/trades", s.handleDexTradesReq()).
		Queries("symbol", "{symbol}", "limit", "{limit:[0-9]+}").
		Methods("GET")
	r.HandleFunc(prefix+"/trades", s.handleDexTradesReq()).
		Queries("symbol", "{symbol}").
		Methods("GET")
	r.HandleFunc(prefix+"/orders/{address}", s.handleDexOpenOrdersReq()).
		Methods("GET")

	// assets routes
	r.HandleFunc(prefix+"/assets", s.handleAssetsReq()).
		Methods("GET")
	r.HandleFunc(prefix+"/assets/{symbol}", s.handleAssetReq()).
		Methods("GET")
	r.HandleFunc(prefix+"/balances/{address}", s.handleBalancesReq()).
		Methods("GET")
	r.HandleFunc(prefix+"/balances/{address}/{symbol}", s.handleBalanceReq()).
		Methods("GET")

	return s
}
