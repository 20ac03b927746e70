package stv_test

import (
	"testing"

	"github.com/ostcar/stvtab/stv"
)

func TestRoundNumberAndStatusThroughRace(t *testing.T) {
	race := newSeatRace(t, "r1", 1, stv.Droop)
	addCandidates(t, race, "A", "B")
	addVoters(t, race, []voterPref{
		{"v1", []string{"A"}}, {"v2", []string{"A"}}, {"v3", []string{"A"}},
		{"v4", []string{"B"}}, {"v5", []string{"B"}},
	})

	if err := race.RunComplete(); err != nil {
		t.Fatalf("RunComplete() err = %v", err)
	}

	rounds := race.Rounds()
	if len(rounds) == 0 {
		t.Fatal("expected at least one round")
	}
	if rounds[0].Number() != 1 {
		t.Fatalf("first round Number() = %d, want 1", rounds[0].Number())
	}
	for i, r := range rounds {
		if i < len(rounds)-1 && r.Status() != stv.Complete {
			t.Fatalf("round %d Status() = %v, want Complete (not last round)", r.Number(), r.Status())
		}
	}
}
