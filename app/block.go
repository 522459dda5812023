package app

import (
	"encoding/json"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/pkg/errors"
)

// Block is one line of a block file.
type Block struct {
	Height int64             `json:"height"`
	Time   time.Time         `json:"time"`
	Txs    []json.RawMessage `json:"txs"`
}

type BlockResult struct {
	Height     int64        `json:"height"`
	AppHash    []byte       `json:"app_hash"`
	TxResults  []sdk.Result `json:"tx_results"`
	Normalized []string     `json:"normalized,omitempty"`
	CommitID   sdk.CommitID `json:"-"`
}

// ApplyBlock runs a whole block. Rejected txs are reported in the result and do not fail the block.
func (app *LedgerApp) ApplyBlock(block Block) (BlockResult, error) {
	res := BlockResult{Height: block.Height}
	if err := app.BeginBlock(block.Height, block.Time); err != nil {
		return res, err
	}
	for _, tx := range block.Txs {
		res.TxResults = append(res.TxResults, app.DeliverTx(tx))
	}
	res.Normalized = app.EndBlock()
	id, err := app.Commit()
	if err != nil {
		return res, errors.Wrapf(err, "failed to commit block %d", block.Height)
	}
	res.CommitID = id
	res.AppHash = id.Hash
	return res, nil
}
