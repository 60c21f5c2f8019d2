package types

import "errors"

// Field lookup errors
var (
	// ErrUnknownField is returned when a filter or aggregation names a field
	// that does not exist on the order record, or has the wrong type
	ErrUnknownField = errors.New("unknown order field")
)
