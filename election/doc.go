// Package election is the file-based driver around stv: it loads race
// configuration, candidate rosters and ballots from disk, builds and runs
// one stv.Race per race position, and writes results back out. None of
// this lives in stv itself: the tabulation core stays free of file
// formats, CLI concerns and logging infrastructure so it can be embedded
// in anything, with this package as one possible driver around it.
package election
