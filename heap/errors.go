package heap

import "errors"

var (
	// ErrBadRef indicates a nil, out-of-range, or reclaimed object reference.
	ErrBadRef = errors.New("heap: bad object reference")

	// ErrInvalidPayload indicates a payload read that does not match the object kind,
	// such as the value of a pair or the head of a scalar.
	ErrInvalidPayload = errors.New("heap: invalid payload access")

	// ErrNoSpace indicates the arena has reached its configured capacity.
	ErrNoSpace = errors.New("heap: no free slot")
)
