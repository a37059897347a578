package trading

import "errors"

// ErrFreightPacking is returned when the packing solver fails or returns an overfull load
var ErrFreightPacking = errors.New("freight packing failed")
