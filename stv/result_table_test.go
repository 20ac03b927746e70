package stv_test

import (
	"strings"
	"testing"

	"github.com/ostcar/stvtab/stv"
)

func TestBuildResultTableS1(t *testing.T) {
	race := newSeatRace(t, "rt1", 1, stv.Droop)
	addCandidates(t, race, "A", "B")
	addVoters(t, race, []voterPref{
		{"v1", []string{"A", "B"}}, {"v2", []string{"A", "B"}}, {"v3", []string{"A", "B"}},
		{"v4", []string{"A", "B"}}, {"v5", []string{"A", "B"}},
	})
	if err := race.RunComplete(); err != nil {
		t.Fatalf("RunComplete() err = %v", err)
	}

	rounds := race.Rounds()
	rows := stv.BuildResultTable(rounds[len(rounds)-1])

	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[0].CandidateID != "A" || rows[0].Status != "WON" {
		t.Fatalf("rows[0] = %+v, want A/WON first", rows[0])
	}
	if !strings.Contains(rows[0].ScoreDisplay, "3") {
		t.Fatalf("rows[0].ScoreDisplay = %q, want to contain quota 3", rows[0].ScoreDisplay)
	}
}

func TestBuildResultTableOrdersWonBeforeRunningBeforeEliminated(t *testing.T) {
	race := newSeatRace(t, "rt2", 2, stv.Droop)
	addCandidates(t, race, "A", "B", "C")
	addVoters(t, race, []voterPref{
		{"v1", []string{"A", "B", "C"}},
		{"v2", []string{"A", "B", "C"}},
		{"v3", []string{"A", "B", "C"}},
		{"v4", []string{"A", "B", "C"}},
		{"v5", []string{"B", "C"}},
		{"v6", []string{"C"}},
	})
	if err := race.RunComplete(); err != nil {
		t.Fatalf("RunComplete() err = %v", err)
	}

	rounds := race.Rounds()
	rows := stv.BuildResultTable(rounds[len(rounds)-1])

	seenStatus := map[string]int{}
	order := []string{}
	for _, row := range rows {
		if _, ok := seenStatus[row.Status]; !ok {
			order = append(order, row.Status)
		}
		seenStatus[row.Status]++
	}

	wantFirst := "WON"
	if len(order) > 0 && order[0] != wantFirst {
		t.Fatalf("first status group = %q, want %q (order: %v)", order[0], wantFirst, order)
	}

	rank := map[string]int{"WON": 0, "RUNNING": 1, "ELIMINATED": 2, "TRANSFERRING": 2}
	for i := 1; i < len(rows); i++ {
		if rank[rows[i].Status] < rank[rows[i-1].Status] {
			t.Fatalf("row %d status %q follows %q (order: %v)", i, rows[i].Status, rows[i-1].Status, order)
		}
	}
}

func TestRenderDoesNotPanic(t *testing.T) {
	race := newSeatRace(t, "rt3", 1, stv.Droop)
	addCandidates(t, race, "A", "B")
	addVoters(t, race, []voterPref{
		{"v1", []string{"A"}}, {"v2", []string{"A"}}, {"v3", []string{"B"}},
	})
	if err := race.RunComplete(); err != nil {
		t.Fatalf("RunComplete() err = %v", err)
	}

	rounds := race.Rounds()
	rows := stv.BuildResultTable(rounds[len(rounds)-1])

	var buf strings.Builder
	stv.Render(&buf, "Test Position", rows)
	if buf.Len() == 0 {
		t.Fatal("Render() wrote nothing")
	}
}
