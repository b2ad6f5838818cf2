package board

import "errors"

// ErrIllegalMoveString indicates a malformed move notation string, e.g. wrong arity,
// off-board coordinates, or a non-orthogonal from/to pair. See ParseMove.
var ErrIllegalMoveString = errors.New("illegal move string")
