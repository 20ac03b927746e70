package election

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/ostcar/stvtab/stv"
)

// RaceConfig is one race's configuration as decoded from a race
// configuration file: position label, seat count, quota algorithm, and an
// opaque metadata blob carried through to results untouched. Candidates
// and ballots are not part of this file; they come from the roster and
// ballot files instead.
type RaceConfig struct {
	Position       string         `yaml:"position"`
	MaxWinners     int            `yaml:"max_winners"`
	QuotaAlgorithm string         `yaml:"quota_algorithm"`
	ExtendedData   map[string]any `yaml:"extended_data"`
}

// raceConfigFile is the top-level shape of a race configuration file: a
// list of races, keyed by nothing but list order (position is the
// identity).
type raceConfigFile struct {
	Races []RaceConfig `yaml:"races"`
}

// LoadRaceConfigs reads a YAML race configuration file, the Go-ecosystem
// equivalent of the original CLI's config file argument
// (interfaces/cmd/Runner.py).
func LoadRaceConfigs(path string) ([]RaceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading race config %s: %w", path, err)
	}

	var file raceConfigFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing race config %s: %w", path, err)
	}

	for i, rc := range file.Races {
		if rc.Position == "" {
			return nil, fmt.Errorf("race config %s: entry %d has no position", path, i)
		}
		if rc.MaxWinners < 1 {
			return nil, fmt.Errorf("race config %s: race %q has max_winners < 1", path, rc.Position)
		}
	}

	return file.Races, nil
}

// quotaAlgorithm resolves a config's textual quota algorithm, defaulting
// to Droop when unset (the teacher's poll methods default rather than
// erroring on an absent optional field).
func (rc RaceConfig) quotaAlgorithm() (stv.QuotaAlgorithm, error) {
	if rc.QuotaAlgorithm == "" {
		return stv.Droop, nil
	}
	return stv.ParseQuotaAlgorithm(rc.QuotaAlgorithm)
}
