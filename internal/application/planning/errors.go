package planning

import "errors"

var (
	// ErrNoViableRoute is returned when a leg has no completed route
	ErrNoViableRoute = errors.New("unable to find viable route")

	// ErrNothingToPlan is returned for a voyage with no stops and no open-ended leg
	ErrNothingToPlan = errors.New("voyage needs at least one stop, a max profit or a max duration")
)
