package election

import (
	"encoding/json"
	"fmt"
	"os"
)

// BallotRecord is one voter's ranked preferences for a single race, as
// decoded from the ballot file.
type BallotRecord struct {
	VoterID     string   `json:"voter_id"`
	Position    string   `json:"position"`
	Preferences []string `json:"preferences"`
}

// LoadBallots reads a JSON ballot file: a flat list of (voter, race,
// ranked preferences) records, mirroring
// original_source/interfaces/cmd/Runner.py's single ballot file covering
// every race a voter participated in.
func LoadBallots(path string) ([]BallotRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ballots %s: %w", path, err)
	}

	var records []BallotRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing ballots %s: %w", path, err)
	}

	for i, r := range records {
		if r.VoterID == "" {
			return nil, fmt.Errorf("ballots %s: entry %d has no voter_id", path, i)
		}
		if r.Position == "" {
			return nil, fmt.Errorf("ballots %s: voter %q has no position", path, r.VoterID)
		}
	}

	return records, nil
}
