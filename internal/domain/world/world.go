package world

import (
	"strings"

	"github.com/andrescamacho/traveller-trade-go/internal/domain/shared"
)

// Zone is the travel advisory of a world
type Zone string

const (
	ZoneGreen Zone = ""
	ZoneAmber Zone = "A"
	ZoneRed   Zone = "R"
)

// ParseZone maps the map service's zone column. Anything other than A or R is green.
func ParseZone(s string) Zone {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return ZoneAmber
	case "R":
		return ZoneRed
	default:
		return ZoneGreen
	}
}

// World is a node of the jump graph. It carries plain data only; adjacency
// is owned by the Provider.
type World struct {
	Name       string
	Location   shared.SectorHex
	X          int
	Y          int
	UWP        UWP
	Zone       Zone
	Allegiance string
	Remarks    []string

	// Snapshot is observed market data. It is attached only to the copy of
	// the world a search starts from.
	Snapshot *TradeSnapshot

	remarkSet map[string]struct{}
}

// NewWorld builds a World from the fields the map service reports
func NewWorld(name string, location shared.SectorHex, x, y int, uwp string, zone, allegiance, remarks string) (*World, error) {
	if location.IsZero() {
		return nil, shared.NewValidationError("location", "cannot be empty")
	}

	profile, err := ParseUWP(uwp)
	if err != nil {
		return nil, err
	}

	w := &World{
		Name:       name,
		Location:   location,
		X:          x,
		Y:          y,
		UWP:        profile,
		Zone:       ParseZone(zone),
		Allegiance: allegiance,
		Remarks:    strings.Fields(remarks),
	}
	w.indexRemarks()
	return w, nil
}

func (w *World) indexRemarks() {
	w.remarkSet = make(map[string]struct{}, len(w.Remarks))
	for _, r := range w.Remarks {
		w.remarkSet[r] = struct{}{}
	}
}

// Key is the identity of the world
func (w *World) Key() shared.SectorHex {
	return w.Location
}

// Equal compares worlds by sector and hex
func (w *World) Equal(other *World) bool {
	if w == nil || other == nil {
		return w == other
	}
	return w.Location == other.Location
}

// HasRemark reports whether the world carries the trade code
func (w *World) HasRemark(remark string) bool {
	if w.remarkSet == nil {
		for _, r := range w.Remarks {
			if r == remark {
				return true
			}
		}
		return false
	}
	_, ok := w.remarkSet[remark]
	return ok
}

// DistanceTo is the rounded Euclidean distance over global map coordinates,
// valid across sector boundaries
func (w *World) DistanceTo(other *World) int {
	return shared.RoundedDistance(w.X, w.Y, other.X, other.Y)
}

// Starport returns the starport class letter
func (w *World) Starport() string {
	return w.UWP.Starport
}

// WithSnapshot returns a copy of the world carrying snap
func (w *World) WithSnapshot(snap *TradeSnapshot) *World {
	clone := *w
	clone.Remarks = append([]string(nil), w.Remarks...)
	clone.Snapshot = snap
	clone.indexRemarks()
	return &clone
}

func (w *World) String() string {
	return w.Location.String()
}
