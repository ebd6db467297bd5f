// Package logging builds the zerolog logger shared by the binaries and by
// gnark's compiler and prover.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	gnarklogger "github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"
)

// New returns a logger writing to w. Console output is used unless json is set.
func New(w io.Writer, level string, json bool) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	if !json {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// Setup builds a stderr logger and installs it as gnark's logger.
func Setup(level string, json bool) (zerolog.Logger, error) {
	l, err := New(os.Stderr, level, json)
	if err != nil {
		return l, err
	}
	gnarklogger.Set(l)
	return l, nil
}
