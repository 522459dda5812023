package pub

import (
	"fmt"
	"sync"
	"sync/atomic"
)

type MockMarketDataPublisher struct {
	ExecutionResultsPublished []*ExecutionResults
	BlockFeePublished         []BlockFee

	Lock             *sync.Mutex // as mock publisher is only used in testing, its no harm to have this granularity Lock
	MessagePublished uint32      // atomic integer used to determine the published messages
}

func (publisher *MockMarketDataPublisher) publish(msg AvroOrJsonMsg, tpe msgType, height int64, timestamp int64) {
	publisher.Lock.Lock()
	defer publisher.Lock.Unlock()

	switch tpe {
	case executionResultTpe:
		publisher.ExecutionResultsPublished = append(publisher.ExecutionResultsPublished, msg.(*ExecutionResults))
	case blockFeeTpe:
		publisher.BlockFeePublished = append(publisher.BlockFeePublished, msg.(BlockFee))
	default:
		panic(fmt.Errorf("does not support type %s", tpe.String()))
	}

	atomic.AddUint32(&publisher.MessagePublished, 1)
}

func (publisher *MockMarketDataPublisher) Stop() {
	publisher.Lock.Lock()
	defer publisher.Lock.Unlock()

	publisher.ExecutionResultsPublished = make([]*ExecutionResults, 0)
	publisher.BlockFeePublished = make([]BlockFee, 0)
}

func NewMockMarketDataPublisher() (publisher *MockMarketDataPublisher) {
	return &MockMarketDataPublisher{
		make([]*ExecutionResults, 0),
		make([]BlockFee, 0),
		&sync.Mutex{},
		0,
	}
}
