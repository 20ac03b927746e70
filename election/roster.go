package election

import (
	"encoding/json"
	"fmt"
	"os"
)

// CandidateRecord is one candidate as decoded from the candidate roster
// file, scoped to a single race position.
type CandidateRecord struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Party    string `json:"party"`
	Position string `json:"position"`
}

// LoadCandidateRoster reads a JSON candidate roster file: a flat list of
// candidates, each tagged with the race position it runs in. Grouping by
// position happens in LoadElection, mirroring
// original_source/interfaces/cmd/Runner.py's single shared candidate file
// covering every race.
func LoadCandidateRoster(path string) ([]CandidateRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading candidate roster %s: %w", path, err)
	}

	var records []CandidateRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing candidate roster %s: %w", path, err)
	}

	for i, r := range records {
		if r.ID == "" {
			return nil, fmt.Errorf("candidate roster %s: entry %d has no id", path, i)
		}
		if r.Position == "" {
			return nil, fmt.Errorf("candidate roster %s: candidate %q has no position", path, r.ID)
		}
	}

	return records, nil
}
