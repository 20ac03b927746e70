package election_test

import (
	"testing"

	"github.com/ostcar/stvtab/election"
)

func TestLoadCandidateRoster(t *testing.T) {
	path := writeTempFile(t, "candidates.json", `
[
  {"id": "a", "name": "Alice", "party": "Blue", "position": "President"},
  {"id": "b", "name": "Bob", "party": "Red", "position": "Treasurer"}
]`)

	records, err := election.LoadCandidateRoster(path)
	if err != nil {
		t.Fatalf("LoadCandidateRoster() err = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0].ID != "a" || records[0].Position != "President" {
		t.Fatalf("records[0] = %+v", records[0])
	}
}

func TestLoadCandidateRosterRejectsMissingID(t *testing.T) {
	path := writeTempFile(t, "candidates.json", `[{"name": "Alice", "position": "President"}]`)
	if _, err := election.LoadCandidateRoster(path); err == nil {
		t.Fatal("LoadCandidateRoster() err = nil, want error for missing id")
	}
}

func TestLoadCandidateRosterRejectsMissingPosition(t *testing.T) {
	path := writeTempFile(t, "candidates.json", `[{"id": "a", "name": "Alice"}]`)
	if _, err := election.LoadCandidateRoster(path); err == nil {
		t.Fatal("LoadCandidateRoster() err = nil, want error for missing position")
	}
}
