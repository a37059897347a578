package routing

import "errors"

var (
	// ErrIncompleteCondition is returned when a completion condition names
	// no destination, profit ceiling or duration ceiling
	ErrIncompleteCondition = errors.New("complete condition needs a destination, profit ceiling or duration ceiling")

	// ErrInvalidSearchRequest is returned when a search request is missing a ship, start or condition
	ErrInvalidSearchRequest = errors.New("invalid search request")
)
