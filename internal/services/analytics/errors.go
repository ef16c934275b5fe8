package analytics

import "errors"

var (
	// ErrDataNotFound means the query was well-formed but the user or period
	// has no matching transactions. Never retried.
	ErrDataNotFound = errors.New("analytics data not found for the specified user")

	// ErrComputation covers any other failure during metric derivation,
	// including cache and store faults that are not plain misses.
	ErrComputation = errors.New("error occurred while computing analytics data")
)
