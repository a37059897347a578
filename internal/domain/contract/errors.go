package contract

import "errors"

// ErrInvalidContract is returned when contract terms are inconsistent
var ErrInvalidContract = errors.New("invalid contract")
