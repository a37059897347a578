package shared

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SectorHex identifies a world by sector name and four-digit hex (column, row).
// Sector names are case-insensitive and stored lowercased, so the value is
// directly comparable and usable as a map key. The title-cased display name
// is derived from the lowercased one and never breaks equality.
type SectorHex struct {
	sector  string
	display string
	hex     string
	col     int
	row     int
}

// NewSectorHex creates a SectorHex after validating the hex is four digits
func NewSectorHex(sector, hex string) (SectorHex, error) {
	sector = strings.ToLower(strings.TrimSpace(sector))
	hex = strings.TrimSpace(hex)

	if sector == "" {
		return SectorHex{}, NewValidationError("sector", "cannot be empty")
	}
	if len(hex) != 4 {
		return SectorHex{}, NewValidationError("hex", fmt.Sprintf("must be four digits, got %q", hex))
	}

	col, err := strconv.Atoi(hex[0:2])
	if err != nil {
		return SectorHex{}, NewValidationError("hex", fmt.Sprintf("invalid column in %q", hex))
	}
	row, err := strconv.Atoi(hex[2:4])
	if err != nil {
		return SectorHex{}, NewValidationError("hex", fmt.Sprintf("invalid row in %q", hex))
	}

	display := cases.Title(language.English).String(sector)
	return SectorHex{sector: sector, display: display, hex: hex, col: col, row: row}, nil
}

// MustSectorHex is NewSectorHex for literals known to be valid. Panics otherwise.
func MustSectorHex(sector, hex string) SectorHex {
	h, err := NewSectorHex(sector, hex)
	if err != nil {
		panic(err)
	}
	return h
}

// ParseSectorHex accepts "Reft 2225", "Reft/2225" or "Trojan Reach 2819".
// The final token is the hex; everything before it is the sector name.
func ParseSectorHex(s string) (SectorHex, error) {
	s = strings.TrimSpace(s)
	idx := strings.LastIndexAny(s, " /")
	if idx <= 0 {
		return SectorHex{}, NewValidationError("sector_hex", fmt.Sprintf("expected \"<sector> <hex>\", got %q", s))
	}
	return NewSectorHex(s[:idx], s[idx+1:])
}

func (h SectorHex) Sector() string { return h.sector }
func (h SectorHex) Hex() string    { return h.hex }

// IsZero reports whether h is the zero value
func (h SectorHex) IsZero() bool {
	return h.sector == "" && h.hex == ""
}

// String renders "<Sector> <hex>", the form ParseSectorHex accepts
func (h SectorHex) String() string {
	if h.IsZero() {
		return ""
	}
	return h.display + " " + h.hex
}

// Distance returns the rounded Euclidean distance between two hexes in the
// same sector. Panics with *CrossSectorError for hexes in different sectors.
func (h SectorHex) Distance(other SectorHex) int {
	if h.sector != other.sector {
		panic(NewCrossSectorError(h, other))
	}
	return RoundedDistance(h.col, h.row, other.col, other.row)
}

// RoundedDistance is the Euclidean distance between two grid points rounded
// to the nearest integer
func RoundedDistance(x1, y1, x2, y2 int) int {
	dx := float64(x1 - x2)
	dy := float64(y1 - y2)
	return int(math.Round(math.Sqrt(dx*dx + dy*dy)))
}
