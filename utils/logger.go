package utils

import (
	"fmt"
	"io"
	"strings"
	"time"

	gokitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// NewLogger builds the process logger: logfmt lines with a UTC timestamp and
// caller, filtered at levelName (debug, info, warn, error).
func NewLogger(w io.Writer, levelName string) gokitlog.Logger {
	logger := gokitlog.NewLogfmtLogger(gokitlog.NewSyncWriter(w))
	logger = level.NewFilter(logger, levelOption(levelName))
	return gokitlog.With(logger, "ts", gokitlog.DefaultTimestampUTC, "caller", gokitlog.DefaultCaller)
}

func levelOption(name string) level.Option {
	switch strings.ToLower(name) {
	case "debug":
		return level.AllowDebug()
	case "warn":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}

// TimeFunction runs fn and logs how long it took.
func TimeFunction(logger gokitlog.Logger, name string, fn func() error) error {
	start := time.Now()
	level.Info(logger).Log("msg", fmt.Sprintf("starting %s", name))

	err := fn()

	elapsed := time.Since(start)
	if err != nil {
		level.Error(logger).Log("msg", fmt.Sprintf("%s failed", name), "err", err, "took", elapsed)
	} else {
		level.Info(logger).Log("msg", fmt.Sprintf("%s completed", name), "took", elapsed)
	}
	return err
}
