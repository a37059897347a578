package world

import (
	"fmt"
	"strconv"
)

// Attribute is a single UWP digit which may be unknown ("?")
type Attribute struct {
	value int
	known bool
}

func Known(v int) Attribute {
	return Attribute{value: v, known: true}
}

func Unknown() Attribute {
	return Attribute{}
}

// Value returns the digit and whether it is known
func (a Attribute) Value() (int, bool) {
	return a.value, a.known
}

func (a Attribute) IsKnown() bool {
	return a.known
}

func (a Attribute) String() string {
	if !a.known {
		return "?"
	}
	return string(ehexDigits[a.value])
}

// UWP is the decoded Universal World Profile, e.g. "A788899-C"
type UWP struct {
	Starport      string
	Size          Attribute
	Atmosphere    Attribute
	Hydrographics Attribute
	Population    Attribute
	Government    Attribute
	Law           Attribute
	Tech          Attribute
}

// ehexDigits skips I and O; A-H decode exactly as base 18.
const ehexDigits = "0123456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// ParseUWP decodes a UWP code. Layout: starport, six digits, '-', tech.
func ParseUWP(code string) (UWP, error) {
	if len(code) < 9 || code[7] != '-' {
		return UWP{}, fmt.Errorf("%w: %q", ErrInvalidUWP, code)
	}

	digits := make([]Attribute, 0, 7)
	for _, idx := range []int{1, 2, 3, 4, 5, 6, 8} {
		attr, err := parseDigit(code[idx])
		if err != nil {
			return UWP{}, fmt.Errorf("%w: %q position %d: %v", ErrInvalidUWP, code, idx, err)
		}
		digits = append(digits, attr)
	}

	return UWP{
		Starport:      string(code[0]),
		Size:          digits[0],
		Atmosphere:    digits[1],
		Hydrographics: digits[2],
		Population:    digits[3],
		Government:    digits[4],
		Law:           digits[5],
		Tech:          digits[6],
	}, nil
}

func (u UWP) String() string {
	return u.Starport + u.Size.String() + u.Atmosphere.String() + u.Hydrographics.String() +
		u.Population.String() + u.Government.String() + u.Law.String() + "-" + u.Tech.String()
}

func parseDigit(c byte) (Attribute, error) {
	if c == '?' {
		return Unknown(), nil
	}
	for i := 0; i < len(ehexDigits); i++ {
		if ehexDigits[i] == c || ehexDigits[i]+('a'-'A') == c {
			return Known(i), nil
		}
	}
	return Attribute{}, fmt.Errorf("not an extended hex digit: %s", strconv.QuoteRune(rune(c)))
}
