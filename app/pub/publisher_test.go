package pub

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Shopify/sarama"
	"github.com/Shopify/sarama/mocks"
	"github.com/stretchr/testify/require"
	tmlog "github.com/tendermint/tendermint/libs/log"

	"github.com/ledger-dex/node/app/config"
)

func publicationConfig() *config.PublicationConfig {
	cfg := config.DefaultLedgerConfig().PublicationConfig
	cfg.PublishOrderUpdates = true
	cfg.PublishBlockFee = true
	cfg.PublicationChannelSize = 10
	return cfg
}

func TestPublishBlocks(t *testing.T) {
	publisher := NewMockMarketDataPublisher()
	Setup(tmlog.NewNopLogger(), publicationConfig(), NopMetrics(), publisher)

	ToPublishCh <- NewBlockInfoToPublish(1, 1000, testFills())
	ToPublishCh <- NewBlockInfoToPublish(2, 2000, nil)

	require.Eventually(t, func() bool {
		publisher.Lock.Lock()
		defer publisher.Lock.Unlock()
		return len(publisher.BlockFeePublished) == 2
	}, time.Second, 10*time.Millisecond)

	publisher.Lock.Lock()
	require.Len(t, publisher.ExecutionResultsPublished, 2)
	require.Equal(t, 2, publisher.ExecutionResultsPublished[0].NumOfMsgs)
	require.Equal(t, 0, publisher.ExecutionResultsPublished[1].NumOfMsgs)
	require.Equal(t, int64(1), publisher.BlockFeePublished[0].Height)
	require.Empty(t, publisher.BlockFeePublished[1].Fees)
	publisher.Lock.Unlock()

	Stop(publisher)
	require.False(t, IsLive)
}

func TestKafkaPublisher(t *testing.T) {
	Cfg = publicationConfig()
	saramaCfg := mocks.NewTestConfig()
	saramaCfg.Producer.Return.Successes = true
	orders := mocks.NewSyncProducer(t, saramaCfg)
	fees := mocks.NewSyncProducer(t, saramaCfg)
	orders.ExpectSendMessageAndSucceed()
	fees.ExpectSendMessageAndSucceed()

	publisher := newKafkaMarketDataPublisher(map[string]sarama.SyncProducer{
		Cfg.OrderUpdatesTopic: orders,
		Cfg.BlockFeeTopic:     fees,
	}, 100)

	publishExecutionResult(publisher, 42, 100, NewTrades(42, testFills()))
	publishBlockFee(publisher, 42, 100, NewBlockFee(42, testFills()))

	// the mocks fail the test on unmet expectations when closed
	publisher.Stop()
}

func TestKafkaPublisherUnknownTopic(t *testing.T) {
	publisher := newKafkaMarketDataPublisher(map[string]sarama.SyncProducer{}, 0)
	_, _, err := publisher.publishWithRetry(&sarama.ProducerMessage{Topic: "nope"}, "nope")
	require.Error(t, err)
}

func TestLocalPublisher(t *testing.T) {
	dir := t.TempDir()
	publisher := NewLocalMarketDataPublisher(dir, tmlog.NewNopLogger(), publicationConfig())
	publishBlockFee(publisher, 42, 100, NewBlockFee(42, testFills()))
	publisher.Stop()

	file, err := os.Open(filepath.Join(dir, "marketdata", "marketdata.json"))
	require.NoError(t, err)
	defer file.Close()

	scanner := bufio.NewScanner(file)
	require.True(t, scanner.Scan())
	var fee BlockFee
	require.NoError(t, json.Unmarshal(scanner.Bytes(), &fee))
	require.Equal(t, int64(42), fee.Height)
	require.Len(t, fee.Fees, 2)
}
