package stax

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// restyLogger adapts a slog.Logger to the logger interface of the HTTP
// client.
type restyLogger struct {
	log *slog.Logger
}

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func logf(format string, v ...interface{}) string {
	return strings.TrimSpace(fmt.Sprintf(format, v...))
}

func (l restyLogger) Errorf(format string, v ...interface{}) { l.log.Error(logf(format, v...)) }

func (l restyLogger) Warnf(format string, v ...interface{}) { l.log.Warn(logf(format, v...)) }

func (l restyLogger) Debugf(format string, v ...interface{}) { l.log.Debug(logf(format, v...)) }
