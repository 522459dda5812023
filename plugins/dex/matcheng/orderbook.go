package matcheng

import (
	"errors"
	"fmt"

	"github.com/gammazero/deque"
	bt "github.com/google/btree"

	"github.com/ledger-dex/node/common/utils"
)

const btreeDegree = 16

// priceLevel holds the orders of one side that ask the same price, oldest first.
// base/quote is the price of the order that opened the level; later orders may use any equivalent ratio.
type priceLevel struct {
	base   int64
	quote  int64
	orders *deque.Deque[*LimitOrder]
}

// Less ranks the cheaper ask (less quote per unit of base) first, that is the best level for a taker.
func (l *priceLevel) Less(than bt.Item) bool {
	o := than.(*priceLevel)
	return utils.CmpProducts(l.quote, o.base, o.quote, l.base) < 0
}

// OrderBook keeps the resting orders of one market. Both sides are ordered best price first
// and, within a price, by insertion.
type OrderBook struct {
	buyQueue  *bt.BTree
	sellQueue *bt.BTree
	orders    map[uint64]*LimitOrder
	levels    map[uint64]*priceLevel
}

type PriceLevel struct {
	Price   SellPrice `json:"price"`
	ForSale int64     `json:"for_sale"`
	Orders  int       `json:"orders"`
}

func NewOrderBook() *OrderBook {
	return &OrderBook{
		buyQueue:  bt.New(btreeDegree),
		sellQueue: bt.New(btreeDegree),
		orders:    make(map[uint64]*LimitOrder),
		levels:    make(map[uint64]*priceLevel),
	}
}

func (ob *OrderBook) getSideQueue(side int8) *bt.BTree {
	switch side {
	case BUYSIDE:
		return ob.buyQueue
	case SELLSIDE:
		return ob.sellQueue
	}
	return nil
}

func (ob *OrderBook) Insert(order *LimitOrder) error {
	queue := ob.getSideQueue(order.Side)
	if queue == nil {
		return fmt.Errorf("invalid side %d of order %d", order.Side, order.Id)
	}
	if _, ok := ob.orders[order.Id]; ok {
		return fmt.Errorf("order %d is already in the book", order.Id)
	}
	if order.ForSale <= 0 || order.SellPrice.Base.Amount <= 0 || order.SellPrice.Quote.Amount <= 0 {
		return fmt.Errorf("order %d has nothing to sell", order.Id)
	}

	key := &priceLevel{base: order.SellPrice.Base.Amount, quote: order.SellPrice.Quote.Amount}
	level := key
	if item := queue.Get(key); item != nil {
		level = item.(*priceLevel)
	} else {
		level.orders = &deque.Deque[*LimitOrder]{}
		queue.ReplaceOrInsert(level)
	}
	level.orders.PushBack(order)
	ob.orders[order.Id] = order
	ob.levels[order.Id] = level
	return nil
}

func (ob *OrderBook) Get(id uint64) (*LimitOrder, bool) {
	order, ok := ob.orders[id]
	return order, ok
}

func (ob *OrderBook) Len() int {
	return len(ob.orders)
}

// BestOpposing returns the first order a taker of the given side would trade with.
func (ob *OrderBook) BestOpposing(takerSide int8) *LimitOrder {
	queue := ob.getSideQueue(OppositeSide(takerSide))
	if queue == nil || queue.Len() == 0 {
		return nil
	}
	return queue.Min().(*priceLevel).orders.Front()
}

func (ob *OrderBook) Remove(id uint64) (*LimitOrder, error) {
	order, ok := ob.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %d is not in the book", id)
	}
	level := ob.levels[id]
	i := level.orders.Index(func(o *LimitOrder) bool { return o.Id == id })
	if i < 0 {
		return nil, errors.New("order book index is inconsistent")
	}
	level.orders.Remove(i)
	if level.orders.Len() == 0 {
		ob.getSideQueue(order.Side).Delete(level)
	}
	delete(ob.orders, id)
	delete(ob.levels, id)
	return order, nil
}

// ReduceOrRemove sets the remaining amount of a resting order, removing it when nothing remains.
func (ob *OrderBook) ReduceOrRemove(id uint64, remaining int64) error {
	if remaining <= 0 {
		_, err := ob.Remove(id)
		return err
	}
	order, ok := ob.orders[id]
	if !ok {
		return fmt.Errorf("order %d is not in the book", id)
	}
	if remaining > order.ForSale {
		return fmt.Errorf("order %d can not grow from %d to %d", id, order.ForSale, remaining)
	}
	order.ForSale = remaining
	return nil
}

// Iterate walks one side best price first, oldest first within a price, until fn returns true.
func (ob *OrderBook) Iterate(side int8, fn func(order *LimitOrder) (stop bool)) {
	queue := ob.getSideQueue(side)
	if queue == nil {
		return
	}
	queue.Ascend(func(i bt.Item) bool {
		level := i.(*priceLevel)
		for j := 0; j < level.orders.Len(); j++ {
			if fn(level.orders.At(j)) {
				return false
			}
		}
		return true
	})
}

// Depth aggregates up to maxLevels price levels of one side.
func (ob *OrderBook) Depth(side int8, maxLevels int) []PriceLevel {
	res := make([]PriceLevel, 0)
	queue := ob.getSideQueue(side)
	if queue == nil {
		return res
	}
	queue.Ascend(func(i bt.Item) bool {
		if len(res) >= maxLevels {
			return false
		}
		level := i.(*priceLevel)
		first := level.orders.Front()
		pl := PriceLevel{Price: first.SellPrice, Orders: level.orders.Len()}
		for j := 0; j < level.orders.Len(); j++ {
			pl.ForSale += level.orders.At(j).ForSale
		}
		res = append(res, pl)
		return true
	})
	return res
}

func (ob *OrderBook) String() string {
	return fmt.Sprintf("buyQueue: %d levels, sellQueue: %d levels, orders: %d",
		ob.buyQueue.Len(), ob.sellQueue.Len(), len(ob.orders))
}
