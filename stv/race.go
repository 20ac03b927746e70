package stv

import (
	"github.com/shopspring/decimal"
)

// RaceState is the Race's one-way ADDING -> TABULATING -> COMPLETE state
// machine: candidates and voters may only be added before tabulation
// starts, and tabulation never reopens once every seat is filled or no
// candidates remain to fill them.
type RaceState int

const (
	Adding RaceState = iota
	Tabulating
	RaceComplete
)

func (s RaceState) String() string {
	switch s {
	case Adding:
		return "ADDING"
	case Tabulating:
		return "TABULATING"
	case RaceComplete:
		return "COMPLETE"
	default:
		return "UNKNOWN"
	}
}

// EventSink receives round-by-round trace events as a Race advances. A nil
// sink disables tracing; Race never holds a concrete logger itself, so
// callers decide how (or whether) a run is logged.
type EventSink func(round int, format string, args ...any)

func (f EventSink) emit(round int, format string, args ...any) {
	if f == nil {
		return
	}
	f(round, format, args...)
}

// Race drives a sequence of Rounds to tabulate one multi-winner contest
// under STV rules. A Race owns its candidates, voters, rounds and winners
// exclusively; it is not safe to tabulate the same Race from more than one
// goroutine concurrently.
type Race struct {
	id             string
	position       string
	extendedData   map[string]any
	maxWinners     int
	quotaAlgorithm QuotaAlgorithm

	candidates     []Candidate
	candidateByID  map[string]Candidate
	voters         []*Voter
	voterSeen      map[string]bool
	rounds         []*Round
	winners        []Candidate
	transferQueue  []*Voter

	state RaceState
	sink  EventSink
}

// NewRace builds a race in the ADDING state. maxWinners must be >= 1.
func NewRace(id, position string, maxWinners int, algorithm QuotaAlgorithm, extendedData map[string]any) *Race {
	return &Race{
		id:             id,
		position:       position,
		extendedData:   extendedData,
		maxWinners:     maxWinners,
		quotaAlgorithm: algorithm,
		candidateByID:  make(map[string]Candidate),
		voterSeen:      make(map[string]bool),
		state:          Adding,
	}
}

// SetEventSink installs a trace sink; pass nil to disable tracing.
func (r *Race) SetEventSink(sink EventSink) { r.sink = sink }

// ID returns the race identity.
func (r *Race) ID() string { return r.id }

// Position returns the race's position label (e.g. "President").
func (r *Race) Position() string { return r.position }

// ExtendedData returns the race's opaque configuration metadata.
func (r *Race) ExtendedData() map[string]any { return r.extendedData }

// MaxWinners returns the configured number of seats.
func (r *Race) MaxWinners() int { return r.maxWinners }

// QuotaAlgorithm returns the configured quota algorithm.
func (r *Race) QuotaAlgorithm() QuotaAlgorithm { return r.quotaAlgorithm }

// State returns the race's current lifecycle state.
func (r *Race) State() RaceState { return r.state }

// Winners returns the elected candidates in election order.
func (r *Race) Winners() []Candidate {
	out := make([]Candidate, len(r.winners))
	copy(out, r.winners)
	return out
}

// Rounds returns every round tabulated so far, in order.
func (r *Race) Rounds() []*Round {
	out := make([]*Round, len(r.rounds))
	copy(out, r.rounds)
	return out
}

// Candidates returns every candidate in the race, in the order they were
// added.
func (r *Race) Candidates() []Candidate {
	out := make([]Candidate, len(r.candidates))
	copy(out, r.candidates)
	return out
}

// Voters returns every voter added to the race.
func (r *Race) Voters() []*Voter {
	out := make([]*Voter, len(r.voters))
	copy(out, r.voters)
	return out
}

// GetCandidate looks up a candidate by id.
func (r *Race) GetCandidate(id string) (Candidate, bool) {
	c, ok := r.candidateByID[id]
	return c, ok
}

// Quota computes the current vote threshold a candidate must reach to be
// elected. It is recomputed from the number of voters added to the race so
// far each time it is called, not cached per round, since a race's voter
// roll is fixed before tabulation begins.
func (r *Race) Quota() (int, error) {
	return Quota(len(r.voters), r.maxWinners, r.quotaAlgorithm)
}

func (r *Race) quotaDecimal() decimal.Decimal {
	q, err := r.Quota()
	if err != nil {
		// len(voters) is never negative, so Quota fails only for
		// maxWinners < 1 or an unknown algorithm. NewRace rejects neither;
		// such a race panics here once tabulation needs the quota.
		panic(err)
	}
	return decimal.NewFromInt(int64(q))
}

// AddCandidate adds a candidate while the race is ADDING. Returns
// ErrPhaseViolation once tabulation has begun, ErrDuplicateCandidate if the
// id is already present or empty: the empty id is reserved for the
// exhausted-ballot bucket (see ExhaustedCandidateID in ballot.go), so no
// real candidate may claim it.
func (r *Race) AddCandidate(c Candidate) error {
	if r.state != Adding {
		return MessageErrorf(ErrPhaseViolation, "race %s: cannot add candidate, already %s", r.id, r.state)
	}
	if c.ID() == ExhaustedCandidateID {
		return MessageErrorf(ErrDuplicateCandidate, "race %s: candidate id %q is reserved for the exhausted-ballot bucket", r.id, c.ID())
	}
	if _, exists := r.candidateByID[c.ID()]; exists {
		return MessageErrorf(ErrDuplicateCandidate, "race %s: candidate %s already added", r.id, c.ID())
	}
	r.candidateByID[c.ID()] = c
	r.candidates = append(r.candidates, c)
	return nil
}

// AddVoter adds a voter while the race is ADDING. Duplicate voters (by id)
// are silently ignored. Returns ErrPhaseViolation once tabulation has
// begun.
func (r *Race) AddVoter(v *Voter) error {
	if r.state != Adding {
		return MessageErrorf(ErrPhaseViolation, "race %s: cannot add voter, already %s", r.id, r.state)
	}
	if r.voterSeen[v.ID()] {
		return nil
	}
	r.voterSeen[v.ID()] = true
	r.voters = append(r.voters, v)
	return nil
}

// RunComplete drives Run until the race reaches COMPLETE or an error
// occurs. Idempotent once COMPLETE.
func (r *Race) RunComplete() error {
	for r.state != RaceComplete {
		if err := r.Run(); err != nil {
			return err
		}
	}
	return nil
}

// Run advances the race's state machine by one micro-step: creating the
// first round, casting a single ballot, rolling a completed round over
// into the next, or tabulating a fully-cast round.
func (r *Race) Run() error {
	if r.state == RaceComplete {
		return nil
	}
	r.state = Tabulating

	cur := r.latestRound()

	if cur == nil {
		return r.initializeFirstRound()
	}

	if cur.status == Complete {
		return r.rollover(cur)
	}

	if len(r.transferQueue) > 0 {
		return r.castNextBallot(cur)
	}

	return r.tabulate(cur)
}

func (r *Race) latestRound() *Round {
	if len(r.rounds) == 0 {
		return nil
	}
	return r.rounds[len(r.rounds)-1]
}

func (r *Race) initializeFirstRound() error {
	nr := newRound(r, 1)
	for _, c := range r.candidates {
		nr.addCandidate(c.ID(), RunningState(1))
	}
	r.rounds = append(r.rounds, nr)
	r.transferQueue = append(r.transferQueue[:0:0], r.voters...)
	r.sink.emit(1, "round 1 created with %d candidates, %d voters queued", len(r.candidates), len(r.transferQueue))
	return nil
}

func (r *Race) rollover(cur *Round) error {
	nr := newRound(r, cur.number+1)
	changed := cur.candidatesChanged()

	for _, c := range r.candidates {
		nr.addCandidate(c.ID(), cur.postState[c.ID()])
	}

	for _, c := range r.candidates {
		id := c.ID()
		if changed[id] {
			continue
		}
		for _, b := range cur.ballots[id] {
			nr.appendBallot(id, b)
		}
	}
	for _, b := range cur.ballots[ExhaustedCandidateID] {
		nr.appendBallot(ExhaustedCandidateID, b)
	}

	r.rounds = append(r.rounds, nr)
	r.sink.emit(nr.number, "round %d created from completed round %d", nr.number, cur.number)
	return nil
}

func (r *Race) castNextBallot(cur *Round) error {
	v := r.transferQueue[0]
	r.transferQueue = r.transferQueue[1:]

	running := boolSet(cur.runningIDs(Pre))
	ballot := v.CastBallot(r.id, running)
	cur.addBallot(ballot)
	r.sink.emit(cur.number, "voter %s cast ballot (value=%s, top=%s), %d voters remaining", v.ID(), ballot.Value(), ballot.Top(), len(r.transferQueue))
	return nil
}

// tabulate runs the election/exclusion rules against a round whose ballots
// have all been cast.
func (r *Race) tabulate(cur *Round) error {
	scores := cur.CandidatesScore()
	running := cur.runningIDs(Pre)

	completed := false
	if len(running) == 0 {
		r.state = RaceComplete
		completed = true
	}
	if len(r.voters) == 0 {
		r.state = RaceComplete
		completed = true
	}
	if completed {
		cur.complete()
		r.sink.emit(cur.number, "race complete: no running candidates or no voters")
		return nil
	}

	maxRoundWinners := r.maxWinners - len(r.winners)

	var roundWinners []string
	if len(running) <= maxRoundWinners {
		roundWinners = append(roundWinners, running...)
		sortByScoreDescStable(roundWinners, scores)
		r.sink.emit(cur.number, "collapse rule: %d running candidates <= %d remaining seats", len(running), maxRoundWinners)
	} else {
		quota := r.quotaDecimal()
		ordered := append([]string(nil), r.candidateIDs()...)
		sortByScoreDescStable(ordered, scores)

		runningSet := boolSet(running)
		for _, id := range ordered {
			if runningSet[id] && scores[id].GreaterThanOrEqual(quota) {
				roundWinners = append(roundWinners, id)
			}
		}

		resolved, err := r.resolveOverflow(roundWinners, scores, cur, maxRoundWinners)
		if err != nil {
			return err
		}
		roundWinners = resolved
	}

	if len(roundWinners) > 0 {
		r.commitWinners(cur, roundWinners, scores)

		if len(r.winners) == r.maxWinners {
			for _, id := range cur.candidatesByState(Post)[Running] {
				cur.setCandidateState(id, CandidateState{Kind: Eliminated, Round: cur.number})
				r.sink.emit(cur.number, "candidate %s eliminated: seats filled", id)
			}
		}

		cur.complete()
		if len(cur.candidatesByState(Post)[Running]) == 0 {
			r.state = RaceComplete
		}
		return nil
	}

	r.eliminateLowest(cur, running, scores)
	cur.complete()
	return nil
}

func (r *Race) candidateIDs() []string {
	out := make([]string, len(r.candidates))
	for i, c := range r.candidates {
		out[i] = c.ID()
	}
	return out
}

// resolveOverflow trims roundWinners down to maxRoundWinners, breaking ties
// at the cutoff by walking backward through prior rounds: candidates tied
// on score in this round are ranked by whichever of them led in the most
// recent earlier round where the tie didn't hold.
func (r *Race) resolveOverflow(winners []string, scores map[string]decimal.Decimal, cur *Round, maxRoundWinners int) ([]string, error) {
	winners = append([]string(nil), winners...)

	for len(winners) > maxRoundWinners {
		last := winners[len(winners)-1]
		secondLast := winners[len(winners)-2]

		if !scores[last].Equal(scores[secondLast]) {
			winners = winners[:len(winners)-1]
			continue
		}

		tieScore := scores[last]
		var tied []string
		for _, c := range winners {
			if scores[c].Equal(tieScore) {
				tied = append(tied, c)
			}
		}

		p := cur.previous()
		resolvedThisPass := false
		for p != nil {
			pScores := p.CandidatesScore()
			tied = append([]string(nil), tied...)
			sortByScoreDescStable(tied, pScores)

			lo := tied[len(tied)-1]
			hi := tied[len(tied)-2]
			if !pScores[lo].Equal(pScores[hi]) {
				winners = removeString(winners, lo)
				tied = removeString(tied, lo)
				r.sink.emit(cur.number, "tie broken by round %d: %s drops out", p.number, lo)
				resolvedThisPass = true
				break
			}
			p = p.previous()
		}

		if !resolvedThisPass {
			return nil, MessageErrorf(ErrUnresolvableTie, "race %s round %d: tie among %v cannot be resolved against any prior round", r.id, cur.number, tied)
		}
	}

	return winners, nil
}

// commitWinners records each winner's state, computes its transfer value,
// applies it to its ballots' voters, and requeues those voters.
func (r *Race) commitWinners(cur *Round, winners []string, scores map[string]decimal.Decimal) {
	quota := r.quotaDecimal()

	for _, id := range winners {
		cur.setCandidateState(id, CandidateState{Kind: Won, Round: cur.number})

		score := scores[id]
		surplus := score.Sub(quota)
		if surplus.IsNegative() {
			surplus = decimal.Zero
		}

		transferValue := decimal.NewFromInt(1)
		if surplus.IsPositive() {
			transferValue = surplus.Div(score)
		}

		for _, b := range cur.ballots[id] {
			b.voter.setTransferValue(r.id, b.value.Mul(transferValue))
			r.transferQueue = append(r.transferQueue, b.voter)
		}

		r.winners = append(r.winners, r.candidateByID[id])
		r.sink.emit(cur.number, "candidate %s elected with score %s (quota %s, surplus %s, transfer value %s)", id, score, quota, surplus, transferValue)
	}
}

// eliminateLowest implements the no-winner path: every zero-scoring
// RUNNING candidate, plus the minimum-scoring set among whoever remains,
// all eliminated in the same pass.
func (r *Race) eliminateLowest(cur *Round, running []string, scores map[string]decimal.Decimal) {
	var toEliminate []string
	var remaining []string
	for _, id := range running {
		if scores[id].IsZero() {
			toEliminate = append(toEliminate, id)
		} else {
			remaining = append(remaining, id)
		}
	}

	if len(remaining) > 0 {
		min := scores[remaining[0]]
		for _, id := range remaining[1:] {
			if scores[id].LessThan(min) {
				min = scores[id]
			}
		}
		for _, id := range remaining {
			if scores[id].Equal(min) {
				toEliminate = append(toEliminate, id)
			}
		}
	}

	for _, id := range toEliminate {
		cur.setCandidateState(id, CandidateState{Kind: Eliminated, Round: cur.number})
		r.transferQueue = append(r.transferQueue, cur.candidateVoters(id)...)
		r.sink.emit(cur.number, "candidate %s eliminated with score %s", id, scores[id])
	}
}

func boolSet(ids []string) map[string]bool {
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out
}

func removeString(s []string, target string) []string {
	out := make([]string, 0, len(s))
	for _, v := range s {
		if v != target {
			out = append(out, v)
		}
	}
	return out
}
