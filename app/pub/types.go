package pub

import (
	me "github.com/ledger-dex/node/plugins/dex/matcheng"
)

// intermediate data structures to deal with concurrent publication between main thread and publisher thread
type BlockInfoToPublish struct {
	height    int64
	timestamp int64
	fills     []me.Fill
}

func NewBlockInfoToPublish(height int64, timestamp int64, fills []me.Fill) BlockInfoToPublish {
	return BlockInfoToPublish{
		height,
		timestamp,
		fills,
	}
}
