package shared

import (
	"fmt"
	"strings"
)

// PassageKind is a fare class. Freight is carried alongside the passenger
// classes because the fare tables price it per ton by distance.
type PassageKind string

const (
	PassageHigh    PassageKind = "high"
	PassageMiddle  PassageKind = "middle"
	PassageBasic   PassageKind = "basic"
	PassageLow     PassageKind = "low"
	PassageFreight PassageKind = "freight"
)

// PassengerKinds lists the passenger classes in ledger order
var PassengerKinds = []PassageKind{PassageHigh, PassageMiddle, PassageBasic, PassageLow}

func ParsePassageKind(s string) (PassageKind, error) {
	kind := PassageKind(strings.ToLower(strings.TrimSpace(s)))
	switch kind {
	case PassageHigh, PassageMiddle, PassageBasic, PassageLow, PassageFreight:
		return kind, nil
	}
	return "", NewValidationError("passage", fmt.Sprintf("unknown passage kind %q", s))
}

func (k PassageKind) String() string {
	return string(k)
}
