// Package applog configures the package-level zerolog logger every command
// and internal package writes through. Default mode emits compact JSON to
// stderr; --debug switches to zerolog's pretty console writer.
package applog

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Log is the shared logger. Configure(false) runs at package init so every
// caller has a usable logger even before main parses flags.
var Log zerolog.Logger

func init() {
	Configure(false)
}

// Configure rebuilds Log for the given debug mode. debug=true selects a
// human-readable, colorized console writer at Debug level; debug=false
// selects compact JSON at Info level, suited to log aggregation.
func Configure(debug bool) {
	zerolog.TimeFieldFormat = time.RFC3339
	if debug {
		w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
		Log = zerolog.New(w).With().Timestamp().Logger().Level(zerolog.DebugLevel)
		return
	}
	Log = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}
