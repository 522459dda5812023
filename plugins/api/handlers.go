package api

import (
	"net/http"
	"runtime/debug"

	hnd "github.com/ledger-dex/node/plugins/api/handlers"
)

// middleware

func (s *server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				s.logger.Error("api handler panicked", "path", r.URL.Path, "err", err, "stack", string(debug.Stack()))
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// -----

func (s *server) handleVersionReq() http.HandlerFunc {
	return hnd.VersionReqHandler
}

func (s *server) handleNodeNameReq() http.HandlerFunc {
	return hnd.NodeNameReqHandler(s.name)
}

func (s *server) handlePairsReq() http.HandlerFunc {
	return hnd.PairsReqHandler(s.querier)
}

func (s *server) handleDexDepthReq() http.HandlerFunc {
	return hnd.DepthReqHandler(s.querier, s.maxDepthLevels)
}

func (s *server) handleDexTradesReq() http.HandlerFunc {
	return hnd.TradesReqHandler(s.querier, maxTrades)
}

func (s *server) handleDexOpenOrdersReq() http.HandlerFunc {
	return hnd.OpenOrdersReqHandler(s.querier)
}

func (s *server) handleAssetsReq() http.HandlerFunc {
	return hnd.AssetsReqHandler(s.querier, s.assets)
}

func (s *server) handleAssetReq() http.HandlerFunc {
	return hnd.AssetReqHandler(s.querier, s.assets)
}

func (s *server) handleBalancesReq() http.HandlerFunc {
	return hnd.BalancesReqHandler(s.querier, s.accounts, s.assets)
}

func (s *server) handleBalanceReq() http.HandlerFunc {
	return hnd.BalanceReqHandler(s.querier, s.accounts, s.assets)
}
