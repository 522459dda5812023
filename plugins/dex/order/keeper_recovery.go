package order

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/pkg/errors"

	me "github.com/ledger-dex/node/plugins/dex/matcheng"
)

// LoadOrderBooks rebuilds the in-memory books and the open order arena from the committed orders.
// Orders are replayed in id order, which restores time priority within each price level.
func (kp *Keeper) LoadOrderBooks(ctx sdk.Context) (int, error) {
	kp.engines = make(map[string]*me.MatchEng)
	kp.orders = make(map[uint64]*me.LimitOrder)
	kp.pending = nil

	var err error
	count := 0
	kp.orderMapper.IterateOrders(ctx, func(order *me.LimitOrder) bool {
		if insertErr := kp.engine(order.Pair).Book.Insert(order); insertErr != nil {
			err = errors.Wrapf(insertErr, "failed to recover order %d", order.Id)
			return true
		}
		kp.orders[order.Id] = order
		count++
		return false
	})
	if err != nil {
		return count, err
	}
	kp.logger.Info("recovered order books", "orders", count, "pairs", len(kp.engines))
	return count, nil
}
