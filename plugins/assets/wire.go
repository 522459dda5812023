package assets

import (
	"github.com/ledger-dex/node/plugins/assets/issue"
	"github.com/ledger-dex/node/plugins/assets/update"
	"github.com/ledger-dex/node/wire"
)

// Register concrete types on wire codec
func RegisterWire(cdc *wire.Codec) {
	cdc.RegisterConcrete(issue.IssueMsg{}, "assets/IssueMsg", nil)
	cdc.RegisterConcrete(issue.MintMsg{}, "assets/MintMsg", nil)
	cdc.RegisterConcrete(update.UpdateFeeOptionsMsg{}, "assets/UpdateFeeOptionsMsg", nil)
}
