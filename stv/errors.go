package stv

import (
	"errors"
	"fmt"
)

// Sentinel error kinds, checked with errors.Is against the error returned
// from Race/Quota operations. Recovery guidance per kind is documented on
// the operation that raises it.
var (
	// ErrPhaseViolation is raised when AddCandidate or AddVoter is called
	// once a race has left the ADDING state.
	ErrPhaseViolation = errors.New("phase violation")

	// ErrDuplicateCandidate is raised when a candidate with an equal id is
	// added twice to the same race.
	ErrDuplicateCandidate = errors.New("duplicate candidate")

	// ErrUnresolvableTie is raised when overflow resolution exhausts every
	// prior round without breaking a tie. Fatal to the race; winners
	// elected so far remain observable.
	ErrUnresolvableTie = errors.New("unresolvable tie")

	// ErrQuotaInputInvalid is raised when Quota is called with voters < 0
	// or maxWinners < 1.
	ErrQuotaInputInvalid = errors.New("invalid quota input")
)

// kindError pairs a sentinel kind with a specific message, the same shape
// the teacher's vote.MessageError/MessageErrorf use: Error() renders the
// message, Unwrap() exposes the kind for errors.Is.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// MessageError wraps kind with a fixed message.
func MessageError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

// MessageErrorf wraps kind with a formatted message.
func MessageErrorf(kind error, format string, args ...any) error {
	return &kindError{kind: kind, msg: fmt.Sprintf(format, args...)}
}
