package pub

import (
	"fmt"
	"time"

	tmlog "github.com/tendermint/tendermint/libs/log"

	"github.com/ledger-dex/node/app/config"
)

var (
	Logger      tmlog.Logger
	Cfg         *config.PublicationConfig
	ToPublishCh chan BlockInfoToPublish
	IsLive      bool
)

type MarketDataPublisher interface {
	publish(msg AvroOrJsonMsg, tpe msgType, height int64, timestamp int64)
	Stop()
}

// Setup starts the publication goroutine. Blocks handed to ToPublishCh after commit are published in order.
func Setup(logger tmlog.Logger, cfg *config.PublicationConfig, metrics *Metrics, publisher MarketDataPublisher) {
	Logger = logger.With("module", "pub")
	Cfg = cfg
	ToPublishCh = make(chan BlockInfoToPublish, cfg.PublicationChannelSize)
	IsLive = true
	go Publish(publisher, metrics, Logger, cfg, ToPublishCh)
}

func Publish(
	publisher MarketDataPublisher,
	metrics *Metrics,
	Logger tmlog.Logger,
	cfg *config.PublicationConfig,
	ToPublishCh <-chan BlockInfoToPublish) {
	var lastPublishedTime time.Time
	for marketData := range ToPublishCh {
		Logger.Debug("publisher queue status", "size", len(ToPublishCh))
		if metrics != nil {
			metrics.PublicationQueueSize.Set(float64(len(ToPublishCh)))
		}

		publishBlockTime := Timer(Logger, fmt.Sprintf("publish market data, height=%d", marketData.height), func() {
			if cfg.PublishOrderUpdates {
				trades := NewTrades(marketData.height, marketData.fills)
				duration := Timer(Logger, "publish all trades", func() {
					publishExecutionResult(publisher, marketData.height, marketData.timestamp, trades)
				})
				if metrics != nil {
					metrics.NumTrade.Set(float64(len(trades)))
					metrics.PublishTradeTimeMs.Set(float64(duration))
				}
			}

			if cfg.PublishBlockFee {
				blockFee := NewBlockFee(marketData.height, marketData.fills)
				duration := Timer(Logger, "publish blockfee", func() {
					publishBlockFee(publisher, marketData.height, marketData.timestamp, blockFee)
				})
				if metrics != nil {
					metrics.NumFeeAssets.Set(float64(len(blockFee.Fees)))
					metrics.PublishBlockfeeTimeMs.Set(float64(duration))
				}
			}

			if metrics != nil {
				metrics.PublicationHeight.Set(float64(marketData.height))
				blockInterval := time.Since(lastPublishedTime)
				lastPublishedTime = time.Now()
				metrics.PublicationBlockIntervalMs.Set(float64(blockInterval.Nanoseconds() / int64(time.Millisecond)))
			}
		})

		if metrics != nil {
			metrics.PublishBlockTimeMs.Set(float64(publishBlockTime))
		}
	}
}

func Stop(publisher MarketDataPublisher) {
	if IsLive == false {
		Logger.Error("publication module has already been stopped")
		return
	}

	IsLive = false
	close(ToPublishCh)
	publisher.Stop()
}

func publishExecutionResult(publisher MarketDataPublisher, height int64, timestamp int64, tradesToPublish []*Trade) {
	numOfTrades := len(tradesToPublish)
	executionResultsMsg := ExecutionResults{Height: height, Timestamp: timestamp, NumOfMsgs: numOfTrades}
	if numOfTrades > 0 {
		executionResultsMsg.Trades = trades{numOfTrades, tradesToPublish}
	}
	publisher.publish(&executionResultsMsg, executionResultTpe, height, timestamp)
}

func publishBlockFee(publisher MarketDataPublisher, height, timestamp int64, blockFee BlockFee) {
	publisher.publish(blockFee, blockFeeTpe, height, timestamp)
}

func Timer(logger tmlog.Logger, description string, op func()) (durationMs int64) {
	start := time.Now()
	op()
	durationMs = time.Since(start).Nanoseconds() / int64(time.Millisecond)
	logger.Debug(description, "durationMs", durationMs)
	return durationMs
}
