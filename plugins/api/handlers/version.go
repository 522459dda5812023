package handlers

import (
	"net/http"

	"github.com/ledger-dex/node/version"
)

// VersionReqHandler handles requests to the version REST handler endpoint
func VersionReqHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(version.Version))
}

// NodeNameReqHandler reports the name of the ledger application being served
func NodeNameReqHandler(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(name))
	}
}
