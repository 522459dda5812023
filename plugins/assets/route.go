package assets

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/ledger-dex/node/common/account"
	"github.com/ledger-dex/node/common/upgrade"
	"github.com/ledger-dex/node/plugins/assets/issue"
	"github.com/ledger-dex/node/plugins/assets/store"
	"github.com/ledger-dex/node/plugins/assets/update"
)

func Routes(assetMapper store.Mapper, keeper account.Keeper, gate *upgrade.Gate) map[string]sdk.Handler {
	routes := make(map[string]sdk.Handler)
	issueHandler := issue.NewHandler(assetMapper, keeper, gate)
	routes[issue.IssueRoute] = issueHandler
	routes[issue.MintRoute] = issueHandler
	routes[update.Route] = update.NewHandler(assetMapper, gate)
	return routes
}
