package election_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ostcar/stvtab/election"
)

func TestLoadElectionRunAllAndWriteResults(t *testing.T) {
	configPath := writeTempFile(t, "races.yaml", `
races:
  - position: President
    max_winners: 1
    quota_algorithm: droop
`)
	rosterPath := writeTempFile(t, "candidates.json", `
[
  {"id": "a", "name": "Alice", "party": "Blue", "position": "President"},
  {"id": "b", "name": "Bob", "party": "Red", "position": "President"}
]`)
	ballotPath := writeTempFile(t, "ballots.json", `
[
  {"voter_id": "v1", "position": "President", "preferences": ["a", "b"]},
  {"voter_id": "v2", "position": "President", "preferences": ["a", "b"]},
  {"voter_id": "v3", "position": "President", "preferences": ["a", "b"]},
  {"voter_id": "v4", "position": "President", "preferences": ["b", "a"]},
  {"voter_id": "v5", "position": "President", "preferences": ["b", "a"]}
]`)

	e, err := election.LoadElection(configPath, rosterPath, ballotPath, zerolog.Nop())
	if err != nil {
		t.Fatalf("LoadElection() err = %v", err)
	}
	if len(e.Races()) != 1 {
		t.Fatalf("Races() len = %d, want 1", len(e.Races()))
	}

	if err := e.RunAll(); err != nil {
		t.Fatalf("RunAll() err = %v", err)
	}

	winners := e.Races()[0].Winners()
	if len(winners) != 1 || winners[0].ID() != "a" {
		t.Fatalf("winners = %v, want [a]", winners)
	}

	outDir := t.TempDir()
	if err := election.WriteResults(e, outDir); err != nil {
		t.Fatalf("WriteResults() err = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "President.csv"))
	if err != nil {
		t.Fatalf("reading result file: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("President.csv is empty")
	}
}

func TestLoadElectionRejectsUnknownQuotaAlgorithm(t *testing.T) {
	configPath := writeTempFile(t, "races.yaml", `
races:
  - position: President
    max_winners: 1
    quota_algorithm: borda
`)
	rosterPath := writeTempFile(t, "candidates.json", `[]`)
	ballotPath := writeTempFile(t, "ballots.json", `[]`)

	if _, err := election.LoadElection(configPath, rosterPath, ballotPath, zerolog.Nop()); err == nil {
		t.Fatal("LoadElection() err = nil, want error for unknown quota algorithm")
	}
}
