package stv_test

import (
	"testing"

	"github.com/ostcar/stvtab/stv"
)

// newSeatRace builds a race in ADDING state with the given seat count and
// quota algorithm, ready for addCandidates/addVoters.
func newSeatRace(t *testing.T, id string, maxWinners int, algorithm stv.QuotaAlgorithm) *stv.Race {
	t.Helper()
	return stv.NewRace(id, "Test Position", maxWinners, algorithm, nil)
}

// addCandidates adds one candidate per id, using the id as both name and
// party-less display name.
func addCandidates(t *testing.T, race *stv.Race, ids ...string) {
	t.Helper()
	for _, id := range ids {
		if err := race.AddCandidate(stv.NewCandidate(id, id, "")); err != nil {
			t.Fatalf("AddCandidate(%s) err = %v", id, err)
		}
	}
}

// voterPref is one voter's id and ranked preference list, used by addVoters
// to add voters in a fixed, test-deterministic order (map iteration order
// would otherwise make tie-break-sensitive scenarios flaky).
type voterPref struct {
	id    string
	prefs []string
}

// addVoters adds one voter per entry, in order, with the given ranked
// preference list for this race.
func addVoters(t *testing.T, race *stv.Race, ballots []voterPref) {
	t.Helper()
	for _, vp := range ballots {
		v := stv.NewVoter(vp.id)
		v.SetPreferences(race.ID(), vp.prefs)
		if err := race.AddVoter(v); err != nil {
			t.Fatalf("AddVoter(%s) err = %v", vp.id, err)
		}
	}
}
