package election

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/ostcar/stvtab/stv"
)

// Election ties together every race loaded from a configuration, roster
// and ballot file, the way original_source's Election class manages
// several named races sharing one candidate/ballot file: a single run
// tabulates every configured position in one pass, with no persistence
// across runs and no network behavior of its own.
type Election struct {
	races []*stv.Race
}

// LoadElection reads race configuration, candidate roster and ballot
// files, builds one stv.Race per configured position, and populates it
// with candidates and voters. Races are returned in configuration order.
// logger receives a round-by-round trace per race via ZerologSink; pass
// zerolog.Nop() to silence it.
func LoadElection(configPath, rosterPath, ballotPath string, logger zerolog.Logger) (*Election, error) {
	configs, err := LoadRaceConfigs(configPath)
	if err != nil {
		return nil, err
	}
	roster, err := LoadCandidateRoster(rosterPath)
	if err != nil {
		return nil, err
	}
	ballots, err := LoadBallots(ballotPath)
	if err != nil {
		return nil, err
	}

	candidatesByPosition := make(map[string][]CandidateRecord)
	for _, c := range roster {
		candidatesByPosition[c.Position] = append(candidatesByPosition[c.Position], c)
	}
	ballotsByPosition := make(map[string][]BallotRecord)
	for _, b := range ballots {
		ballotsByPosition[b.Position] = append(ballotsByPosition[b.Position], b)
	}

	var races []*stv.Race
	for _, cfg := range configs {
		algorithm, err := cfg.quotaAlgorithm()
		if err != nil {
			return nil, fmt.Errorf("race %q: %w", cfg.Position, err)
		}

		race := stv.NewRace(cfg.Position, cfg.Position, cfg.MaxWinners, algorithm, cfg.ExtendedData)
		race.SetEventSink(ZerologSink(logger, cfg.Position))

		for _, c := range candidatesByPosition[cfg.Position] {
			if err := race.AddCandidate(stv.NewCandidate(c.ID, c.Name, c.Party)); err != nil {
				return nil, fmt.Errorf("race %q: %w", cfg.Position, err)
			}
		}

		for _, b := range ballotsByPosition[cfg.Position] {
			voter := stv.NewVoter(b.VoterID)
			voter.SetPreferences(race.ID(), b.Preferences)
			if err := race.AddVoter(voter); err != nil {
				return nil, fmt.Errorf("race %q: %w", cfg.Position, err)
			}
		}

		races = append(races, race)
	}

	return &Election{races: races}, nil
}

// Races returns every race in configuration order.
func (e *Election) Races() []*stv.Race {
	out := make([]*stv.Race, len(e.races))
	copy(out, e.races)
	return out
}

// RunAll tabulates every race to completion, in configuration order,
// stopping at the first error (e.g. stv.ErrUnresolvableTie).
func (e *Election) RunAll() error {
	for _, race := range e.races {
		if err := race.RunComplete(); err != nil {
			return fmt.Errorf("race %q: %w", race.Position(), err)
		}
	}
	return nil
}

// SortedResultRows returns every race's final-round result rows, keyed by
// race position. Races with no rounds have no entry.
func (e *Election) SortedResultRows() map[string][]stv.ResultRow {
	out := make(map[string][]stv.ResultRow, len(e.races))
	for _, race := range e.races {
		rounds := race.Rounds()
		if len(rounds) == 0 {
			continue
		}
		out[race.Position()] = stv.BuildResultTable(rounds[len(rounds)-1])
	}
	return out
}

// positions returns race positions sorted alphabetically, used by
// writers that must produce deterministic file output.
func (e *Election) positions() []string {
	out := make([]string, len(e.races))
	for i, r := range e.races {
		out[i] = r.Position()
	}
	sort.Strings(out)
	return out
}
