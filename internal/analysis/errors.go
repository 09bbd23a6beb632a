package analysis

import "errors"

var (
	// ErrNoGames indicates the input directory held no matching game files.
	ErrNoGames = errors.New("no game files found")
	// ErrLocked indicates another run is writing the same output file.
	ErrLocked = errors.New("output is locked by another run")
	// ErrNoUsername indicates the run was started without a player identity.
	ErrNoUsername = errors.New("username is required")
)
