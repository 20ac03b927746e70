package election

import (
	"github.com/rs/zerolog"

	"github.com/ostcar/stvtab/stv"
)

// ZerologSink adapts a zerolog.Logger to the stv.EventSink shape, the way
// the teacher's internal run loop takes a log.Printf-shaped function
// rather than a concrete logger (internal/vote/run.go). Every trace event
// is logged at debug level tagged with its race id and round number.
func ZerologSink(logger zerolog.Logger, raceID string) stv.EventSink {
	return func(round int, format string, args ...any) {
		logger.Debug().
			Str("race", raceID).
			Int("round", round).
			Msgf(format, args...)
	}
}
