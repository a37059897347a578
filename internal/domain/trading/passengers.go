package trading

import (
	"fmt"
	"math"
	"strings"

	"github.com/andrescamacho/traveller-trade-go/internal/domain/market"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/navigation"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/shared"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/world"
)

// PassengerBooking is the expected take for one passage class
type PassengerBooking struct {
	Kind       shared.PassageKind
	Passengers float64
	Fare       float64
	Revenue    float64
}

// PassengerManifest is the expected passenger revenue of a jump
type PassengerManifest struct {
	Bookings []PassengerBooking
	Revenue  float64
}

// Describe renders the manifest as one ledger line
func (m PassengerManifest) Describe() string {
	parts := make([]string, 0, len(m.Bookings))
	for _, b := range m.Bookings {
		parts = append(parts, fmt.Sprintf("%.2f %s at %.2f", b.Passengers, b.Kind, b.Fare))
	}
	return "Took on passengers: " + strings.Join(parts, ", ")
}

// Passengers estimates passenger revenue for a jump from origin to dest.
//
// Each berth class books the smaller of the expected demand and the ship's
// allotment. Middle berths left empty are sold two-for-one as basic berths.
// Observed passenger demand on the origin's snapshot replaces the estimate.
func (a *EdgeAnalyzer) Passengers(origin, dest *world.World, ship *navigation.Ship) PassengerManifest {
	distance := origin.DistanceTo(dest)
	observed, haveObserved := origin.Snapshot.PassengersTo(dest.Key())

	demand := func(kind shared.PassageKind) float64 {
		if haveObserved {
			return float64(observed[kind])
		}
		return market.ExpectedPassengers(a.tables, a.trafficRoll(origin, dest, ship, kind, distance))
	}

	var manifest PassengerManifest
	book := func(kind shared.PassageKind, seats int) float64 {
		passengers := math.Min(demand(kind), float64(seats))
		fare := a.tables.Fare(kind, distance)
		perSeat := fare
		if kind != shared.PassageLow {
			perSeat -= a.tables.LifeSupport(kind) * float64(distance)
		}
		booking := PassengerBooking{Kind: kind, Passengers: passengers, Fare: fare, Revenue: passengers * perSeat}
		manifest.Bookings = append(manifest.Bookings, booking)
		manifest.Revenue += booking.Revenue
		return passengers
	}

	convertible := 0
	for _, allotment := range ship.Passages() {
		if allotment.Seats == 0 {
			continue
		}
		booked := book(allotment.Kind, allotment.Seats)
		if allotment.Kind == shared.PassageMiddle {
			convertible += int(math.Floor(float64(allotment.Seats) - booked))
		}
	}

	if basicSeats := convertible / 2; basicSeats > 0 {
		book(shared.PassageBasic, basicSeats)
	}

	return manifest
}

// trafficRoll is the expected 2D6 passenger traffic roll plus modifiers
func (a *EdgeAnalyzer) trafficRoll(origin, dest *world.World, ship *navigation.Ship, kind shared.PassageKind, distance int) float64 {
	modifier := ship.StewardSkill()

	if distance > 1 {
		modifier -= distance - 1
	}

	switch kind {
	case shared.PassageHigh:
		modifier -= 4
	case shared.PassageLow:
		modifier++
	}

	if pop, known := origin.UWP.Population.Value(); known {
		switch {
		case pop <= 1:
			modifier -= 4
		case pop == 6 || pop == 7:
			modifier++
		case pop >= 8:
			modifier += 3
		}
	}

	switch origin.Starport() {
	case "A", "B":
		modifier += 2
	case "E":
		modifier--
	case "X":
		modifier -= 3
	}

	switch origin.Zone {
	case world.ZoneRed:
		modifier -= 4
	case world.ZoneAmber:
		modifier++
	}

	if a.rivals.Between(origin, dest) {
		modifier -= a.rivals.Penalty
	}

	return float64(modifier) + 2*market.AverageDie
}
