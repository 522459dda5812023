package pub

import (
	"fmt"
	"strings"

	tmlog "github.com/tendermint/tendermint/libs/log"
)

// saramaLogger routes sarama's StdLogger output to the node logger at debug level.
type saramaLogger struct {
	tmlog.Logger
}

func (slogger saramaLogger) Print(v ...interface{}) {
	slogger.Debug(fmt.Sprint(v...), "module", "sarama")
}

func (slogger saramaLogger) Printf(format string, v ...interface{}) {
	slogger.Debug(strings.TrimSuffix(fmt.Sprintf(format, v...), "\n"), "module", "sarama")
}

func (slogger saramaLogger) Println(v ...interface{}) {
	slogger.Debug(strings.TrimSuffix(fmt.Sprintln(v...), "\n"), "module", "sarama")
}
