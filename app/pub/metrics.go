package pub

import (
	metricsPkg "github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

// Metrics contains metrics exposed by this package.
type Metrics struct {
	// Height of last published message
	PublicationHeight metricsPkg.Gauge

	// Size of publication queue
	PublicationQueueSize metricsPkg.Gauge

	// Time between publish this and the last block.
	// Should be (approximate) blocking + abci + publication time
	PublicationBlockIntervalMs metricsPkg.Gauge

	// Time used to publish trades
	PublishTradeTimeMs metricsPkg.Gauge
	// Time used to publish blockfee
	PublishBlockfeeTimeMs metricsPkg.Gauge
	// Time	used to publish block
	PublishBlockTimeMs metricsPkg.Gauge

	// num of trade
	NumTrade metricsPkg.Gauge
	// num of assets that accumulated fees in the block
	NumFeeAssets metricsPkg.Gauge
}

// PrometheusMetrics returns Metrics build using Prometheus client library.
func PrometheusMetrics() *Metrics {
	return &Metrics{
		PublicationHeight: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Subsystem: "publication",
			Name:      "height",
			Help:      "Height of last published messages",
		}, []string{}),
		PublicationQueueSize: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Subsystem: "publication",
			Name:      "queue_size",
			Help:      "Size of publication queue",
		}, []string{}),
		PublicationBlockIntervalMs: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Subsystem: "publication",
			Name:      "block_interval",
			Help:      "How often we publish a block (ms)",
		}, []string{}),
		PublishTradeTimeMs: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Subsystem: "publication",
			Name:      "trade_pub_time",
			Help:      "Time to publish trades (ms)",
		}, []string{}),
		PublishBlockfeeTimeMs: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Subsystem: "publication",
			Name:      "blockfee_pub_time",
			Help:      "Time to publish block fee (ms)",
		}, []string{}),
		PublishBlockTimeMs: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Subsystem: "publication",
			Name:      "block_pub_time",
			Help:      "Time to publish everything within a block (ms)",
		}, []string{}),

		NumTrade: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Subsystem: "publication",
			Name:      "num_trade",
			Help:      "Number of trades published",
		}, []string{}),
		NumFeeAssets: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Subsystem: "publication",
			Name:      "num_fee_assets",
			Help:      "Number of assets with block fees published",
		}, []string{}),
	}
}

// NopMetrics returns no-op Metrics.
func NopMetrics() *Metrics {
	return &Metrics{
		PublicationHeight:          discard.NewGauge(),
		PublicationQueueSize:       discard.NewGauge(),
		PublicationBlockIntervalMs: discard.NewGauge(),
		PublishTradeTimeMs:         discard.NewGauge(),
		PublishBlockfeeTimeMs:      discard.NewGauge(),
		PublishBlockTimeMs:         discard.NewGauge(),
		NumTrade:                   discard.NewGauge(),
		NumFeeAssets:               discard.NewGauge(),
	}
}
