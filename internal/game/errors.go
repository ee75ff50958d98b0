package game

import "errors"

// Error taxonomy for the engine.
//
// ErrConfiguration marks a malformed InitialCase (overlapping bodies,
// out-of-bounds cells, food on an occupied cell). The simulation runner
// records it as a failed game and continues the batch.
//
// ErrInvariant marks a broken engine invariant, such as ticking a game that
// already reached a terminal outcome. It indicates a programming error in the
// caller and is the only error class worth terminating the process over.
var (
	ErrConfiguration = errors.New("invalid initial case")
	ErrInvariant     = errors.New("engine invariant violated")
)
