package log

import (
	"io"
	"os"

	"github.com/natefinch/lumberjack"
	"github.com/pkg/errors"
	tmlog "github.com/tendermint/tendermint/libs/log"
)

var logger tmlog.Logger

func init() {
	logger = NewConsoleLogger()
}

func InitLogger(l tmlog.Logger) {
	logger = l
}

func NewConsoleLogger() tmlog.Logger {
	return tmlog.NewTMLogger(tmlog.NewSyncWriter(os.Stdout))
}

// NewFileLogger writes to a size-rotated file.
func NewFileLogger(filePath string, maxSizeMB, maxBackups int) (tmlog.Logger, io.Closer) {
	w := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		LocalTime:  false,
	}
	return tmlog.NewTMLogger(tmlog.NewSyncWriter(w)), w
}

// WithLevel filters l to the given level ("debug", "info", "error" or "none").
func WithLevel(l tmlog.Logger, level string) (tmlog.Logger, error) {
	opt, err := tmlog.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrap(err, "invalid log level")
	}
	return tmlog.NewFilter(l, opt), nil
}

func Debug(msg string, keyvals ...interface{}) {
	logger.Debug(msg, keyvals...)
}

func Info(msg string, keyvals ...interface{}) {
	logger.Info(msg, keyvals...)
}

func Error(msg string, keyvals ...interface{}) {
	logger.Error(msg, keyvals...)
}

func With(keyvals ...interface{}) tmlog.Logger {
	return logger.With(keyvals...)
}
