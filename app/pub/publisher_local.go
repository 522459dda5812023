package pub

import (
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"

	"github.com/natefinch/lumberjack"

	tmLogger "github.com/tendermint/tendermint/libs/log"

	"github.com/ledger-dex/node/app/config"
)

// Publish market data to local marketdata dir in ledgerd home
// each message will be in json format one line in file
// file can be compressed and auto-rotated
type LocalMarketDataPublisher struct {
	producer *log.Logger
	writer   *lumberjack.Logger
	tmLogger tmLogger.Logger
}

func (publisher *LocalMarketDataPublisher) publish(msg AvroOrJsonMsg, tpe msgType, height int64, timestamp int64) {
	if jsonBytes, err := json.Marshal(msg); err == nil {
		if err := publisher.producer.Output(2, fmt.Sprintln(string(jsonBytes))); err != nil {
			publisher.tmLogger.Error("failed to publish msg", "err", err, "height", height, "msg", msg.String())
		}
	} else {
		publisher.tmLogger.Error("failed to publish msg", "err", err, "height", height, "msg", msg.String())
	}
}

func (publisher *LocalMarketDataPublisher) Stop() {
	if err := publisher.writer.Close(); err != nil {
		publisher.tmLogger.Error("failed to close marketdata file", "err", err)
	}
	publisher.tmLogger.Info("local publisher stopped")
}

func NewLocalMarketDataPublisher(
	dataPath string,
	tmLogger tmLogger.Logger,
	config *config.PublicationConfig) (publisher *LocalMarketDataPublisher) {
	fileWriter := &lumberjack.Logger{
		Filename: filepath.Join(dataPath, "marketdata", "marketdata.json"),
		MaxSize:  config.LocalMaxSize,
		MaxAge:   config.LocalMaxAge,
		Compress: true,
	}
	logger := log.New(fileWriter, "", 0)
	publisher = &LocalMarketDataPublisher{
		logger,
		fileWriter,
		tmLogger,
	}

	return
}
