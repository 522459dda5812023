package common

import sdk "github.com/cosmos/cosmos-sdk/types"

const (
	MainStoreName    = "main"
	AccountStoreName = "acc"
	AssetStoreName   = "assets"
	DexStoreName     = "dex"
)

var (
	// keys to access the substores
	MainStoreKey    = sdk.NewKVStoreKey(MainStoreName)
	AccountStoreKey = sdk.NewKVStoreKey(AccountStoreName)
	AssetStoreKey   = sdk.NewKVStoreKey(AssetStoreName)
	DexStoreKey     = sdk.NewKVStoreKey(DexStoreName)

	StoreKeys = []*sdk.KVStoreKey{MainStoreKey, AccountStoreKey, AssetStoreKey, DexStoreKey}
)

// record prefixes inside the substores
var (
	AssetPrefix        = []byte{0x01}
	AssetDynamicPrefix = []byte{0x02}
	AssetMarkerPrefix  = []byte{0x03}

	OrderPrefix    = []byte{0x01}
	OrderSeqPrefix = []byte{0x02}
)

// PrefixedKey joins a record prefix with a record key.
func PrefixedKey(prefix []byte, parts ...[]byte) []byte {
	size := len(prefix)
	for _, p := range parts {
		size += len(p)
	}
	key := make([]byte, 0, size)
	key = append(key, prefix...)
	for _, p := range parts {
		key = append(key, p...)
	}
	return key
}
