// Package classify derives analytical attributes from a parsed game: length
// and loss-quality buckets, termination category, opening name, the colour the
// analysed player had and the rating gap to the opponent.
//
// Every function here is pure. Missing or malformed inputs resolve to a
// sentinel ("Unknown", "N/A", "Other", zero) so a batch always yields one
// record per game. The opening catalog is built once and only read afterwards,
// so concurrent callers need no locking.
package classify
