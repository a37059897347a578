package travellermap

import (
	"fmt"
	"log"

	"github.com/andrescamacho/traveller-trade-go/internal/domain/shared"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/world"
)

// JumpWorldsResponse is the body of /api/jumpworlds
type JumpWorldsResponse struct {
	Worlds []RawWorld `json:"Worlds"`
}

// RawWorld holds the fields of a jumpworlds entry the planner uses
type RawWorld struct {
	Name       string `json:"Name"`
	Hex        string `json:"Hex"`
	Sector     string `json:"Sector"`
	UWP        string `json:"UWP"`
	WorldX     int    `json:"WorldX"`
	WorldY     int    `json:"WorldY"`
	Zone       string `json:"Zone"`
	Allegiance string `json:"Allegiance"`
	Remarks    string `json:"Remarks"`
}

// ToWorld converts a map service entry into a domain world
func ToWorld(raw RawWorld) (*world.World, error) {
	loc, err := shared.NewSectorHex(raw.Sector, raw.Hex)
	if err != nil {
		return nil, fmt.Errorf("world %q: %w", raw.Name, err)
	}
	w, err := world.NewWorld(raw.Name, loc, raw.WorldX, raw.WorldY, raw.UWP, raw.Zone, raw.Allegiance, raw.Remarks)
	if err != nil {
		return nil, fmt.Errorf("world %q at %s: %w", raw.Name, loc, err)
	}
	return w, nil
}

// ToWorlds converts every entry. Entries that do not parse are logged and
// skipped, the map data has the occasional malformed profile.
func ToWorlds(raws []RawWorld) []*world.World {
	worlds := make([]*world.World, 0, len(raws))
	for _, raw := range raws {
		w, err := ToWorld(raw)
		if err != nil {
			log.Printf("skipping jump world: %v", err)
			continue
		}
		worlds = append(worlds, w)
	}
	return worlds
}
