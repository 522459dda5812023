package matcheng

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pair = "ICOIN_JCOIN"

func newOrder(id uint64, side int8, sell, receive sdk.Coin) *LimitOrder {
	return &LimitOrder{
		Id:        id,
		Owner:     sdk.AccAddress([]byte{byte(id)}),
		Pair:      pair,
		Side:      side,
		SellPrice: SellPrice{Base: sell, Quote: receive},
		ForSale:   sell.Amount,
	}
}

// sells of ICOIN asking JCOIN
func sellOrder(id uint64, icoin, jcoin int64) *LimitOrder {
	return newOrder(id, SELLSIDE, sdk.NewCoin("ICOIN", icoin), sdk.NewCoin("JCOIN", jcoin))
}

func buyOrder(id uint64, jcoin, icoin int64) *LimitOrder {
	return newOrder(id, BUYSIDE, sdk.NewCoin("JCOIN", jcoin), sdk.NewCoin("ICOIN", icoin))
}

func ids(ob *OrderBook, side int8) []uint64 {
	var res []uint64
	ob.Iterate(side, func(o *LimitOrder) bool {
		res = append(res, o.Id)
		return false
	})
	return res
}

func TestOrderBook_PriceThenTimePriority(t *testing.T) {
	ob := NewOrderBook()
	require.NoError(t, ob.Insert(sellOrder(1, 100, 300)))
	require.NoError(t, ob.Insert(sellOrder(2, 100, 200)))
	require.NoError(t, ob.Insert(sellOrder(3, 200, 600))) // same price as 1
	require.NoError(t, ob.Insert(sellOrder(4, 100, 250)))
	require.NoError(t, ob.Insert(buyOrder(5, 10, 30)))

	assert.Equal(t, []uint64{2, 4, 1, 3}, ids(ob, SELLSIDE))
	assert.Equal(t, []uint64{5}, ids(ob, BUYSIDE))
	assert.Equal(t, uint64(2), ob.BestOpposing(BUYSIDE).Id)
	assert.Equal(t, uint64(5), ob.BestOpposing(SELLSIDE).Id)
	assert.Equal(t, 5, ob.Len())

	depth := ob.Depth(SELLSIDE, 2)
	require.Len(t, depth, 2)
	assert.Equal(t, int64(100), depth[0].ForSale)
	assert.Equal(t, 1, depth[0].Orders)

	depth = ob.Depth(SELLSIDE, 10)
	require.Len(t, depth, 3)
	assert.Equal(t, int64(300), depth[2].ForSale)
	assert.Equal(t, 2, depth[2].Orders)
}

func TestOrderBook_InsertErrors(t *testing.T) {
	ob := NewOrderBook()
	require.NoError(t, ob.Insert(sellOrder(1, 100, 300)))
	require.Error(t, ob.Insert(sellOrder(1, 100, 300)))

	bad := sellOrder(2, 100, 300)
	bad.Side = UNKNOWN
	require.Error(t, ob.Insert(bad))

	empty := sellOrder(3, 100, 300)
	empty.ForSale = 0
	require.Error(t, ob.Insert(empty))
}

func TestOrderBook_RemoveAndReduce(t *testing.T) {
	ob := NewOrderBook()
	require.NoError(t, ob.Insert(sellOrder(1, 100, 300)))
	require.NoError(t, ob.Insert(sellOrder(2, 200, 600)))
	require.NoError(t, ob.Insert(sellOrder(3, 100, 200)))

	removed, err := ob.Remove(1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), removed.Id)
	assert.Equal(t, []uint64{3, 2}, ids(ob, SELLSIDE))
	_, err = ob.Remove(1)
	require.Error(t, err)

	require.NoError(t, ob.ReduceOrRemove(2, 50))
	o, ok := ob.Get(2)
	require.True(t, ok)
	assert.Equal(t, int64(50), o.ForSale)
	require.Error(t, ob.ReduceOrRemove(2, 60))

	require.NoError(t, ob.ReduceOrRemove(3, 0))
	assert.Equal(t, []uint64{2}, ids(ob, SELLSIDE))
	require.NoError(t, ob.ReduceOrRemove(2, 0))
	assert.Nil(t, ob.BestOpposing(BUYSIDE))
	assert.Empty(t, ob.Depth(SELLSIDE, 10))
	require.Error(t, ob.ReduceOrRemove(9, 1))
}

func TestLimitOrder_Dust(t *testing.T) {
	o := sellOrder(1, 1000, 3)
	assert.False(t, o.IsDust())
	assert.Equal(t, int64(3), o.MinToReceive())
	o.ForSale = 334
	assert.False(t, o.IsDust())
	assert.Equal(t, int64(2), o.MinToReceive())
	o.ForSale = 333
	assert.True(t, o.IsDust())
	o.ForSale = 300
	assert.True(t, o.IsDust())
	o.ForSale = 0
	assert.False(t, o.IsDust())
}
