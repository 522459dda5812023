package app

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/ledger-dex/node/plugins/assets"
)

// GenesisState is the initial state of the ledger.
type GenesisState struct {
	GenesisTime time.Time           `json:"genesis_time"`
	Assets      assets.GenesisState `json:"assets"`
}

func LoadGenesis(path string) (GenesisState, error) {
	var genesis GenesisState
	bz, err := os.ReadFile(path)
	if err != nil {
		return genesis, errors.Wrap(err, "failed to read genesis file")
	}
	if err := json.Unmarshal(bz, &genesis); err != nil {
		return genesis, errors.Wrap(err, "failed to parse genesis file")
	}
	return genesis, nil
}
