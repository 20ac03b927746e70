// Command stvtab tabulates STV races from a race configuration file, a
// candidate roster file and a ballot file, and writes one result CSV per
// race. It is the Go equivalent of original_source/interfaces/cmd, the
// command-line runner the Python implementation shipped alongside its
// library.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/ostcar/stvtab/election"
)

type cli struct {
	Config  string `help:"Race configuration file (YAML)." required:"" type:"existingfile"`
	Roster  string `help:"Candidate roster file (JSON)." required:"" type:"existingfile"`
	Ballots string `help:"Ballot file (JSON)." required:"" type:"existingfile"`
	Output  string `help:"Directory to write one result CSV per race into." required:""`
	Verbose bool   `help:"Log round-by-round tabulation trace." short:"v"`
	NoColor bool   `help:"Disable colored log output even on a terminal."`
}

func main() {
	var c cli
	kong.Parse(&c,
		kong.Name("stvtab"),
		kong.Description("Single Transferable Vote tabulation."),
		kong.UsageOnError(),
	)

	logger := newLogger(c.Verbose, c.NoColor)

	if err := run(c, logger); err != nil {
		logger.Error().Err(err).Msg("tabulation failed")
		os.Exit(1)
	}
}

func run(c cli, logger zerolog.Logger) error {
	e, err := election.LoadElection(c.Config, c.Roster, c.Ballots, logger)
	if err != nil {
		return fmt.Errorf("loading election: %w", err)
	}

	if err := e.RunAll(); err != nil {
		return fmt.Errorf("tabulating: %w", err)
	}

	if err := election.WriteResults(e, c.Output); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}

	for _, race := range e.Races() {
		logger.Info().
			Str("race", race.Position()).
			Int("winners", len(race.Winners())).
			Int("rounds", len(race.Rounds())).
			Msg("race tabulated")
	}

	return nil
}

// newLogger builds a console-writing zerolog.Logger, colored when stderr
// is a terminal and coloring was not disabled, following the same
// TTY-detection the teacher's dependency graph carries go-isatty/
// go-colorable for but never itself assembled into a writer.
func newLogger(verbose, noColor bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	out := colorable.NewColorableStderr()
	writer := zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	writer.NoColor = noColor || !isatty.IsTerminal(os.Stderr.Fd())

	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
