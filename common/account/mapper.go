package account

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/tendermint/iavl"

	"github.com/ledger-dex/node/wire"
)

// This Mapper encodes/decodes balances using the
// go-amino (binary) encoding/decoding library.
// A balance is stored per (address, denom); zero balances are never stored.
type Mapper struct {
	key sdk.StoreKey
	cdc *wire.Codec
}

func NewMapper(cdc *wire.Codec, key sdk.StoreKey) Mapper {
	return Mapper{key: key, cdc: cdc}
}

// BalanceKey is len(addr) | addr | denom.
func BalanceKey(addr sdk.AccAddress, denom string) []byte {
	return append(addressPrefix(addr), denom...)
}

func addressPrefix(addr sdk.AccAddress) []byte {
	return append([]byte{byte(len(addr))}, addr...)
}

func (m Mapper) GetBalance(ctx sdk.Context, addr sdk.AccAddress, denom string) int64 {
	return m.decodeBalance(ctx.KVStore(m.key).Get(BalanceKey(addr, denom)))
}

// GetBalanceAt reads a balance from a committed version of the account store.
func (m Mapper) GetBalanceAt(tree *iavl.ImmutableTree, addr sdk.AccAddress, denom string) int64 {
	_, bz := tree.Get(BalanceKey(addr, denom))
	return m.decodeBalance(bz)
}

func (m Mapper) decodeBalance(bz []byte) int64 {
	if bz == nil {
		return 0
	}
	var amount int64
	m.cdc.MustUnmarshalBinaryBare(bz, &amount)
	return amount
}

func (m Mapper) SetBalance(ctx sdk.Context, addr sdk.AccAddress, denom string, amount int64) {
	key := BalanceKey(addr, denom)
	if amount == 0 {
		ctx.KVStore(m.key).Delete(key)
		return
	}
	ctx.KVStore(m.key).Set(key, m.cdc.MustMarshalBinaryBare(amount))
}

// GetCoins returns every non-zero balance of addr, ordered by denom.
func (m Mapper) GetCoins(ctx sdk.Context, addr sdk.AccAddress) sdk.Coins {
	prefix := addressPrefix(addr)
	coins := sdk.Coins{}
	iter := sdk.KVStorePrefixIterator(ctx.KVStore(m.key), prefix)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		var amount int64
		m.cdc.MustUnmarshalBinaryBare(iter.Value(), &amount)
		coins = append(coins, sdk.NewCoin(string(iter.Key()[len(prefix):]), amount))
	}
	return coins
}
