// Package main hosts the pgnlens CLI entrypoint and command graph.
//
// The Cobra-based command tree turns a directory of downloaded games into a
// CSV report (analyze), and reads back earlier runs from the history database
// (runs, summary). It centralizes configuration resolution and logger setup
// so subcommands only deal with flags and presentation.
package main
