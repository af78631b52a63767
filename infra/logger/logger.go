package logger

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"

	corelogger "github.com/kilianp07/dispatchrec/core/logger"
)

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// NopLogger implements Logger with no-op methods.
type NopLogger = corelogger.Nop

var level atomic.Int32

func init() { level.Store(int32(zerolog.InfoLevel)) }

// SetLevel sets the minimum level of loggers created afterwards. Accepted
// values are the zerolog level names; an empty string selects "info".
func SetLevel(name string) error {
	if strings.TrimSpace(name) == "" {
		name = zerolog.InfoLevel.String()
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	level.Store(int32(lvl))
	return nil
}

// New returns a Logger for the given component. The output format follows
// the APP_ENV variable.
func New(component string) Logger {
	return NewZerologLogger(component)
}
