// Package stv tabulates multi-winner elections with the Single Transferable
// Vote method and weighted ballot transfer.
//
// A Race ingests candidates, voters and their ranked preferences, and
// advances round by round through Run or RunComplete, electing and
// eliminating candidates until every seat is filled or no candidates
// remain. The package does not read configuration files, candidate
// rosters or ballot files, and it does not render output; callers build
// a Race from already-parsed data and inspect its Rounds and Winners
// once tabulation completes.
package stv
