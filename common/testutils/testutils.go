package testutils

import (
	"time"

	"github.com/cosmos/cosmos-sdk/store"
	sdk "github.com/cosmos/cosmos-sdk/types"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/crypto"
	"github.com/tendermint/tendermint/crypto/secp256k1"
	dbm "github.com/tendermint/tendermint/libs/db"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/ledger-dex/node/common"
)

// SetupMultiStoreWithDBForUnitTest mounts every ledger substore on a memdb.
func SetupMultiStoreWithDBForUnitTest() (dbm.DB, sdk.CommitMultiStore) {
	db := dbm.NewMemDB()
	ms := store.NewCommitMultiStore(db)
	for _, key := range common.StoreKeys {
		ms.MountStoreWithDB(key, sdk.StoreTypeIAVL, nil)
	}
	if err := ms.LoadLatestVersion(); err != nil {
		panic(err)
	}
	return db, ms
}

func NewContext(blockTime time.Time) sdk.Context {
	_, ms := SetupMultiStoreWithDBForUnitTest()
	return sdk.NewContext(ms, abci.Header{Height: 1, Time: blockTime}, sdk.RunTxModeDeliver, log.NewNopLogger())
}

// generate a priv key and return it with its address
func PrivAndAddr() (crypto.PrivKey, sdk.AccAddress) {
	priv := secp256k1.GenPrivKey()
	addr := sdk.AccAddress(priv.PubKey().Address())
	return priv, addr
}

// NamedAddr derives a stable address from name, so test expectations can refer to it.
func NamedAddr(name string) sdk.AccAddress {
	priv := secp256k1.GenPrivKeySecp256k1([]byte(name))
	return sdk.AccAddress(priv.PubKey().Address())
}
