package shift

import "errors"

var (
	ErrInvalidClock = errors.New("invalid wall-clock time, expected HH:mm")
	ErrInvalidKind  = errors.New("unknown shift kind")
)
