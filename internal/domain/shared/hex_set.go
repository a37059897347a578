package shared

import "sort"

// HexSet is a set of sector hexes, used for named regions such as home worlds
type HexSet map[SectorHex]struct{}

func NewHexSet(hexes ...SectorHex) HexSet {
	set := make(HexSet, len(hexes))
	for _, h := range hexes {
		set[h] = struct{}{}
	}
	return set
}

// ParseHexSet builds a set from "<sector> <hex>" strings
func ParseHexSet(values []string) (HexSet, error) {
	set := make(HexSet, len(values))
	for _, v := range values {
		h, err := ParseSectorHex(v)
		if err != nil {
			return nil, err
		}
		set[h] = struct{}{}
	}
	return set, nil
}

// Contains is safe to call on a nil set
func (s HexSet) Contains(h SectorHex) bool {
	_, ok := s[h]
	return ok
}

// Sorted returns the members ordered by their string form
func (s HexSet) Sorted() []SectorHex {
	out := make([]SectorHex, 0, len(s))
	for h := range s {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}
