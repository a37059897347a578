package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// CrossSectorError signals a hex distance request spanning two sectors.
// Hex-local coordinates are only comparable within one sector, so this is
// raised as a panic value: reaching it means the caller has a bug.
type CrossSectorError struct {
	*DomainError
	From SectorHex
	To   SectorHex
}

func NewCrossSectorError(from, to SectorHex) *CrossSectorError {
	return &CrossSectorError{
		DomainError: NewDomainError(fmt.Sprintf(
			"unable to get distance between hexes in different sectors, %s and %s", from, to,
		)),
		From: from,
		To:   to,
	}
}
