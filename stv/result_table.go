package stv

import (
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
)

// ResultRow is one line of a round's human-facing result table. It is a
// display-only projection of a Round; building one never mutates the
// Round it was built from.
type ResultRow struct {
	CandidateID   string
	Name          string
	Party         string
	Status        string
	ScoreDisplay  string
	QuotaFraction decimal.Decimal
}

// BuildResultTable projects a Round into display rows: WON candidates
// first (most-recently-elected first), then RUNNING, then ELIMINATED
// (most-recently-eliminated first); ties within each group break by
// higher score, then party, then name. A candidate eliminated in the
// round immediately before an as-yet-INCOMPLETE round is labeled
// TRANSFERRING rather than ELIMINATED, since its ballots have been queued
// for transfer but the new round they land in has not finished
// tabulating yet.
func BuildResultTable(round *Round) []ResultRow {
	scores := round.CandidatesScore()
	byState := round.candidatesByState(Post)
	race := round.race

	var transferring map[string]bool
	if round.status == Incomplete {
		if prev := round.previous(); prev != nil {
			transferring = prev.candidatesChanged()
		}
	}

	lookup := func(id string) Candidate {
		c, _ := race.GetCandidate(id)
		return c
	}

	quota := race.quotaDecimal()

	won := append([]string(nil), byState[Won]...)
	sort.SliceStable(won, func(i, j int) bool {
		a, b := won[i], won[j]
		if round.postState[a].Round != round.postState[b].Round {
			return round.postState[a].Round > round.postState[b].Round
		}
		return lessByScorePartyName(a, b, scores, lookup)
	})

	running := append([]string(nil), byState[Running]...)
	sort.SliceStable(running, func(i, j int) bool {
		return lessByScorePartyName(running[i], running[j], scores, lookup)
	})

	eliminated := append([]string(nil), byState[Eliminated]...)
	sort.SliceStable(eliminated, func(i, j int) bool {
		a, b := eliminated[i], eliminated[j]
		if round.postState[a].Round != round.postState[b].Round {
			return round.postState[a].Round > round.postState[b].Round
		}
		return lessByScorePartyName(a, b, scores, lookup)
	})

	var rows []ResultRow
	for _, id := range won {
		rows = append(rows, ResultRow{
			CandidateID:   id,
			Name:          lookup(id).Name(),
			Party:         lookup(id).Party(),
			Status:        "WON",
			ScoreDisplay:  fmt.Sprintf("%s (%s)", quota.String(), truncate4(scores[id])),
			QuotaFraction: safeDiv(scores[id], quota),
		})
	}
	for _, id := range running {
		rows = append(rows, ResultRow{
			CandidateID:   id,
			Name:          lookup(id).Name(),
			Party:         lookup(id).Party(),
			Status:        "RUNNING",
			ScoreDisplay:  truncate4(scores[id]),
			QuotaFraction: safeDiv(scores[id], quota),
		})
	}
	for _, id := range eliminated {
		status := "ELIMINATED"
		if transferring[id] {
			status = "TRANSFERRING"
		}
		rows = append(rows, ResultRow{
			CandidateID:   id,
			Name:          lookup(id).Name(),
			Party:         lookup(id).Party(),
			Status:        status,
			ScoreDisplay:  fmt.Sprintf("0 (%s)", truncate4(scores[id])),
			QuotaFraction: safeDiv(scores[id], quota),
		})
	}

	return rows
}

func lessByScorePartyName(a, b string, scores map[string]decimal.Decimal, lookup func(string) Candidate) bool {
	if !scores[a].Equal(scores[b]) {
		return scores[a].GreaterThan(scores[b])
	}
	ca, cb := lookup(a), lookup(b)
	if ca.Party() != cb.Party() {
		return ca.Party() < cb.Party()
	}
	return ca.Name() < cb.Name()
}

func safeDiv(score, quota decimal.Decimal) decimal.Decimal {
	if quota.IsZero() {
		return decimal.Zero
	}
	return score.Div(quota)
}

// truncate4 floors a decimal to 4 places without rounding, matching
// ElectionRace.get_data_table's display truncation in original_source.
func truncate4(d decimal.Decimal) string {
	return d.Truncate(4).String()
}

// Render writes rows as a bordered table, grounded on the original CLI's
// terminaltables.DoubleTable rendering (original_source/backend/ElectionRace.py).
func Render(w io.Writer, title string, rows []ResultRow) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Candidate", "Party", "Status", "Score"})
	table.SetCaption(true, title)
	for _, row := range rows {
		table.Append([]string{row.Name, row.Party, row.Status, row.ScoreDisplay})
	}
	table.Render()
}
