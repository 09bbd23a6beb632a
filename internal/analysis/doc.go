// Package analysis runs one batch: it scans the input directory, parses and
// classifies every game file, writes the CSV report and records the run in the
// history database.
//
// Runs are serialised per output file with an advisory lock next to the
// report, and each run is tagged with a UUID that appears in logs and history.
// Unreadable files are logged and skipped; content problems inside a file
// never are, since the parser and classifiers degrade to sentinel values.
package analysis
