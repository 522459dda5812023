package types

import (
	"github.com/ledger-dex/node/wire"
)

func RegisterWire(cdc *wire.Codec) {
	cdc.RegisterConcrete(Asset{}, "ledger/Asset", nil)
	cdc.RegisterConcrete(AssetDynamicData{}, "ledger/AssetDynamicData", nil)
}
