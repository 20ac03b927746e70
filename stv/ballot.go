package stv

import "github.com/shopspring/decimal"

// ExhaustedCandidateID is the sentinel bucket key a ballot falls into once
// its preference list contains no still-RUNNING candidate. It cannot
// collide with a real candidate id, which Race.AddCandidate requires to be
// non-empty.
const ExhaustedCandidateID = ""

// Ballot is the contribution of one voter to one round: a voter reference,
// a transfer value in [0, 1] captured at cast time, and the voter's ranked
// preferences filtered to the candidates still RUNNING when the ballot was
// cast. Ballots are read-only once assigned to a round.
type Ballot struct {
	voter       *Voter
	value       decimal.Decimal
	preferences []string
}

// Value returns the ballot's current transfer-value weight.
func (b *Ballot) Value() decimal.Decimal { return b.value }

// Preferences returns the ordered candidate ids still relevant to this
// ballot, i.e. those that were RUNNING at cast time.
func (b *Ballot) Preferences() []string {
	out := make([]string, len(b.preferences))
	copy(out, b.preferences)
	return out
}

// Top returns the first preference, or ExhaustedCandidateID if the
// preference list is empty.
func (b *Ballot) Top() string {
	if len(b.preferences) == 0 {
		return ExhaustedCandidateID
	}
	return b.preferences[0]
}

// Voter returns the voter who cast this ballot.
func (b *Ballot) Voter() *Voter { return b.voter }
