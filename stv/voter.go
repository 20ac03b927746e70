package stv

import "github.com/shopspring/decimal"

// Voter identity. A Voter holds a ranked preference list per race it
// participates in, and a per-race transfer value that the owning Race
// mutates during surplus commit. A Voter may be shared across multiple
// Races (an Election ties several Races to one candidate/ballot roster);
// within a single Race, the Race is the sole writer of the transfer value.
type Voter struct {
	id            string
	preferences   map[string][]string
	transferValue map[string]decimal.Decimal
}

// NewVoter builds a voter with no preferences or race-scoped state yet.
func NewVoter(id string) *Voter {
	return &Voter{
		id:            id,
		preferences:   make(map[string][]string),
		transferValue: make(map[string]decimal.Decimal),
	}
}

// ID returns the voter's stable identity.
func (v *Voter) ID() string { return v.id }

// SetPreferences installs the voter's ranked candidate ids for a race.
func (v *Voter) SetPreferences(raceID string, preferences []string) {
	ordered := make([]string, len(preferences))
	copy(ordered, preferences)
	v.preferences[raceID] = ordered
}

// Preferences returns the voter's full ranked list for a race, unfiltered.
func (v *Voter) Preferences(raceID string) []string {
	out := make([]string, len(v.preferences[raceID]))
	copy(out, v.preferences[raceID])
	return out
}

// TransferValue returns the voter's current transfer value for a race,
// defaulting to 1.0 until a winner commit changes it.
func (v *Voter) TransferValue(raceID string) decimal.Decimal {
	if tv, ok := v.transferValue[raceID]; ok {
		return tv
	}
	return decimal.NewFromInt(1)
}

// setTransferValue installs a new transfer value for a race. Only Race
// calls this, during winner commit, when a surplus above quota is
// redistributed to the ballots that elected a winner.
func (v *Voter) setTransferValue(raceID string, value decimal.Decimal) {
	v.transferValue[raceID] = value
}

// CastBallot builds the ballot this voter contributes to a round: value is
// the voter's current per-race transfer value, and preferences are the
// voter's ranked list filtered down to candidates present in running.
func (v *Voter) CastBallot(raceID string, running map[string]bool) *Ballot {
	full := v.preferences[raceID]
	filtered := make([]string, 0, len(full))
	for _, id := range full {
		if running[id] {
			filtered = append(filtered, id)
		}
	}

	return &Ballot{
		voter:       v,
		value:       v.TransferValue(raceID),
		preferences: filtered,
	}
}
