package store

import (
	"encoding/binary"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/ledger-dex/node/common"
	me "github.com/ledger-dex/node/plugins/dex/matcheng"
	"github.com/ledger-dex/node/wire"
)

var nextOrderIdKey = common.PrefixedKey(common.OrderSeqPrefix, []byte("nextOrderId"))

// OrderMapper persists the open orders. Keys are big-endian ids, so iteration replays orders in placement order.
type OrderMapper interface {
	NextOrderId(ctx sdk.Context) uint64
	SetOrder(ctx sdk.Context, order *me.LimitOrder)
	GetOrder(ctx sdk.Context, id uint64) (*me.LimitOrder, bool)
	DeleteOrder(ctx sdk.Context, id uint64)
	IterateOrders(ctx sdk.Context, fn func(order *me.LimitOrder) (stop bool))
}

var _ OrderMapper = mapper{}

type mapper struct {
	key sdk.StoreKey
	cdc *wire.Codec
}

func NewOrderMapper(cdc *wire.Codec, key sdk.StoreKey) OrderMapper {
	return mapper{
		key: key,
		cdc: cdc,
	}
}

func orderKey(id uint64) []byte {
	var bz [8]byte
	binary.BigEndian.PutUint64(bz[:], id)
	return common.PrefixedKey(common.OrderPrefix, bz[:])
}

// NextOrderId hands out ids starting from 1.
func (m mapper) NextOrderId(ctx sdk.Context) uint64 {
	store := ctx.KVStore(m.key)
	id := uint64(1)
	if bz := store.Get(nextOrderIdKey); bz != nil {
		id = binary.BigEndian.Uint64(bz)
	}
	var next [8]byte
	binary.BigEndian.PutUint64(next[:], id+1)
	store.Set(nextOrderIdKey, next[:])
	return id
}

func (m mapper) SetOrder(ctx sdk.Context, order *me.LimitOrder) {
	ctx.KVStore(m.key).Set(orderKey(order.Id), m.encodeOrder(order))
}

func (m mapper) GetOrder(ctx sdk.Context, id uint64) (*me.LimitOrder, bool) {
	bz := ctx.KVStore(m.key).Get(orderKey(id))
	if bz == nil {
		return nil, false
	}
	return m.decodeOrder(bz), true
}

func (m mapper) DeleteOrder(ctx sdk.Context, id uint64) {
	ctx.KVStore(m.key).Delete(orderKey(id))
}

func (m mapper) IterateOrders(ctx sdk.Context, fn func(order *me.LimitOrder) bool) {
	iter := sdk.KVStorePrefixIterator(ctx.KVStore(m.key), common.OrderPrefix)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		if fn(m.decodeOrder(iter.Value())) {
			return
		}
	}
}

func (m mapper) encodeOrder(order *me.LimitOrder) []byte {
	return m.cdc.MustMarshalBinaryBare(*order)
}

func (m mapper) decodeOrder(bz []byte) *me.LimitOrder {
	var order me.LimitOrder
	m.cdc.MustUnmarshalBinaryBare(bz, &order)
	return &order
}
