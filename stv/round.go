package stv

import (
	"slices"

	"github.com/shopspring/decimal"
)

// StateSelector picks which of a candidate's two per-round states (the one
// it entered the round with, or the one tabulation assigned) an operation
// reads.
type StateSelector int

const (
	Pre StateSelector = iota
	Post
)

// RoundStatus tracks whether a Round has finished tabulating.
type RoundStatus int

const (
	Incomplete RoundStatus = iota
	Complete
)

// Round is a snapshot of a single STV round: every candidate's pre- and
// post-state, the ballots currently assigned to each candidate (plus the
// exhausted-ballot bucket), and a lazily computed, cache-invalidated score
// per candidate.
type Round struct {
	race   *Race
	number int

	order     []string // candidate ids, insertion order, for stable sorts
	preState  map[string]CandidateState
	postState map[string]CandidateState
	ballots   map[string][]*Ballot

	scores     map[string]decimal.Decimal
	scoreValid bool

	status RoundStatus
}

func newRound(race *Race, number int) *Round {
	return &Round{
		race:      race,
		number:    number,
		preState:  make(map[string]CandidateState),
		postState: make(map[string]CandidateState),
		ballots:   make(map[string][]*Ballot),
		status:    Incomplete,
	}
}

// Number returns the round's 1-based sequence number.
func (r *Round) Number() int { return r.number }

// Status reports whether the round has finished tabulating.
func (r *Round) Status() RoundStatus { return r.status }

// addCandidate installs a candidate's pre-state; its post-state starts
// identical until setCandidateState changes it.
func (r *Round) addCandidate(id string, pre CandidateState) {
	r.order = append(r.order, id)
	r.preState[id] = pre
	r.postState[id] = pre
}

// addBallot classifies a freshly cast ballot by its top preference and
// appends it to that bucket (or the exhausted bucket), invalidating the
// score cache.
func (r *Round) addBallot(b *Ballot) {
	r.appendBallot(b.Top(), b)
}

// appendBallot places a ballot directly into a bucket without reclassifying
// it by Top(). Used during rollover, where ballots for candidates whose
// state did not change migrate into the new round's identical bucket
// unchanged.
func (r *Round) appendBallot(candidateID string, b *Ballot) {
	r.ballots[candidateID] = append(r.ballots[candidateID], b)
	r.scoreValid = false
}

// setCandidateState updates a candidate's post-state. Legal transitions are
// RUNNING -> WON and RUNNING -> ELIMINATED; callers (Race) are the only
// source of transitions and are trusted not to attempt an illegal one.
func (r *Round) setCandidateState(id string, state CandidateState) {
	r.postState[id] = state
}

// CandidateScore sums the ballot values currently assigned to a candidate.
func (r *Round) CandidateScore(id string) decimal.Decimal {
	return r.CandidatesScore()[id]
}

// CandidatesScore returns every candidate's score, memoized until the next
// addBallot invalidates the cache. The returned map is owned by the round;
// callers must not mutate it.
func (r *Round) CandidatesScore() map[string]decimal.Decimal {
	if r.scoreValid {
		return r.scores
	}

	scores := make(map[string]decimal.Decimal, len(r.order))
	for _, id := range r.order {
		scores[id] = decimal.Zero
	}
	for candidateID, ballots := range r.ballots {
		if candidateID == ExhaustedCandidateID {
			continue
		}
		sum := decimal.Zero
		for _, b := range ballots {
			sum = sum.Add(b.value)
		}
		scores[candidateID] = sum
	}

	r.scores = scores
	r.scoreValid = true
	return scores
}

// CandidatesState returns a copy of every candidate's selected state.
func (r *Round) CandidatesState(which StateSelector) map[string]CandidateState {
	src := r.postState
	if which == Pre {
		src = r.preState
	}
	out := make(map[string]CandidateState, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// candidatesByState groups candidate ids by their selected state, preserving
// candidate insertion order within each group.
func (r *Round) candidatesByState(which StateSelector) map[CandidateStateKind][]string {
	src := r.postState
	if which == Pre {
		src = r.preState
	}
	out := map[CandidateStateKind][]string{
		Running:    nil,
		Won:        nil,
		Eliminated: nil,
	}
	for _, id := range r.order {
		k := src[id].Kind
		out[k] = append(out[k], id)
	}
	return out
}

// candidatesChanged returns the ids whose pre- and post-state kind differ.
func (r *Round) candidatesChanged() map[string]bool {
	out := make(map[string]bool)
	for _, id := range r.order {
		if r.preState[id].Kind != r.postState[id].Kind {
			out[id] = true
		}
	}
	return out
}

// CandidateBallots returns the ballots currently assigned to a candidate
// (or, with ExhaustedCandidateID, the exhausted bucket), in insertion order.
func (r *Round) CandidateBallots(id string) []*Ballot {
	out := make([]*Ballot, len(r.ballots[id]))
	copy(out, r.ballots[id])
	return out
}

// candidateVoters returns the voters behind CandidateBallots(id).
func (r *Round) candidateVoters(id string) []*Voter {
	ballots := r.ballots[id]
	out := make([]*Voter, len(ballots))
	for i, b := range ballots {
		out[i] = b.voter
	}
	return out
}

// complete marks the round COMPLETE. Idempotent.
func (r *Round) complete() {
	r.status = Complete
}

// previous returns the round that preceded this one within the owning
// race, or nil for round 1.
func (r *Round) previous() *Round {
	if r.number <= 1 {
		return nil
	}
	return r.race.rounds[r.number-2]
}

// runningIDs returns, in candidate insertion order, the ids RUNNING in the
// given state selector.
func (r *Round) runningIDs(which StateSelector) []string {
	return r.candidatesByState(which)[Running]
}

// sortByScoreDescStable sorts ids by scores[id] descending, preserving the
// existing relative order of ties: candidates tied on score keep winning or
// losing in the order they were first discovered, rather than by id.
func sortByScoreDescStable(ids []string, scores map[string]decimal.Decimal) {
	slices.SortStableFunc(ids, func(a, b string) int {
		return scores[b].Cmp(scores[a])
	})
}
