// Package logging provides structured logging via zerolog and the bridge
// from planning events to log lines.
package logging

import (
	"os"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mherran/prodplan/pkg/domain/planning"
)

// Init initializes the global logger.
func Init(level string, pretty bool) {
	logLevel := zerolog.InfoLevel
	switch level {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(logLevel)
	zerolog.TimeFieldFormat = time.RFC3339Nano

	if pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}

// Logger returns the global logger instance.
func Logger() zerolog.Logger {
	return log.Logger
}

// PlanObserver builds a planning observer that logs every computation step.
// Overdue releases log at warn level, everything else at debug. Fields are
// emitted in sorted key order so log lines are deterministic.
func PlanObserver(logger zerolog.Logger) planning.Observer {
	return func(e planning.Event) {
		var entry *zerolog.Event
		if e.Kind == planning.EventOverdueRelease {
			entry = logger.Warn()
		} else {
			entry = logger.Debug()
		}

		entry = entry.Str("plan", e.Plan.String()).Str("event", e.Kind.String())
		if e.Period > 0 {
			entry = entry.Int("period", e.Period)
		}

		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			entry = entry.Str(k, e.Fields[k].String())
		}

		entry.Msg("planning step")
	}
}
