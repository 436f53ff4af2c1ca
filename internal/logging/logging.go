package logging

import (
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

var (
	once    sync.Once
	logger  *log.Logger
	debugOn bool
)

func Logger() *log.Logger {
	once.Do(func() {
		logger = log.New(os.Stdout, "", log.LstdFlags)
	})
	return logger
}

// Configure applies the log level and optional file tee. The returned func
// closes the log file and must be deferred by the caller.
func Configure(level, filePath string) (func(), error) {
	debugOn = strings.EqualFold(strings.TrimSpace(level), "DEBUG")

	if filePath == "" {
		return func() {}, nil
	}

	f, err := os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return func() {}, err
	}

	mw := io.MultiWriter(os.Stdout, f)
	Logger().SetOutput(mw)

	return func() { _ = f.Close() }, nil
}

func Debugf(format string, args ...any) {
	if debugOn {
		Logger().Printf(format, args...)
	}
}
