// Package pgn reads chess game records in PGN form into a tag mapping and an
// approximate move count.
//
// Parsing is deliberately lenient. Lines that look like tag pairs but do not
// match the `[Key "Value"]` shape are dropped, text before the first tag is
// ignored, and a record without tags or movetext yields an empty Game rather
// than an error. Callers that batch many downloaded games rely on this so a
// single noisy file never stops a run.
package pgn
