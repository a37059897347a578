package market

import "errors"

// Domain errors for trade good valuation

var (
	// ErrInvalidTradeGood is returned when a trade good definition is incomplete or inconsistent
	ErrInvalidTradeGood = errors.New("invalid trade good")

	// ErrEmptyCatalog is returned when the catalog provider yields no goods
	ErrEmptyCatalog = errors.New("trade good catalog is empty")
)
