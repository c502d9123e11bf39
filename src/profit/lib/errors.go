package profit

import "errors"

var (
	// ErrMissingWildcardFormula is returned when a category has no formula and
	// the categories configuration has no WILDCARD_CATEGORY entry either.
	ErrMissingWildcardFormula = errors.New("missing wildcard formula")

	// ErrMalformedNumericField is returned when a cost or quantity cannot be
	// read as a number after normalization. It aborts the whole run.
	ErrMalformedNumericField = errors.New("malformed numeric field")
)
