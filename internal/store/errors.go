package store

import "errors"

// Sentinel errors surfaced by store operations. Command executors map
// these directly onto RESP error frames (see internal/command); the store
// itself never panics on a user-level error (spec.md §7).
var (
	// ErrWrongType is returned whenever a typed operation is applied to a
	// key holding an incompatible value variant.
	ErrWrongType = errors.New("WRONGTYPE Operation against a key holding the wrong kind of value")

	// ErrNotInteger is returned when a string value expected to hold a
	// decimal integer literal does not.
	ErrNotInteger = errors.New("ERR value is not an integer or out of range")

	// ErrXAddIDTooSmall is returned when an explicit XADD ID is not
	// strictly greater than the stream's current last ID.
	ErrXAddIDTooSmall = errors.New("ERR The ID specified in XADD is equal or smaller than the target stream top item")

	// ErrXAddIDZero is returned for the reserved 0-0 ID.
	ErrXAddIDZero = errors.New("ERR The ID specified in XADD must be greater than 0-0")

	// ErrInvalidStreamID is returned for any stream ID specification that
	// fails to parse (non-numeric parts, negative components, extra
	// dashes).
	ErrInvalidStreamID = errors.New("ERR Invalid stream ID specified as stream command argument")
)
