package shared_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/traveller-trade-go/internal/domain/shared"
)

func TestNewSectorHex_NormalizesSector(t *testing.T) {
	h, err := shared.NewSectorHex("  Reft ", "2225")

	require.NoError(t, err)
	assert.Equal(t, "reft", h.Sector())
	assert.Equal(t, "2225", h.Hex())
	assert.Equal(t, "Reft 2225", h.String())
	assert.Equal(t, shared.MustSectorHex("REFT", "2225"), h)
}

func TestNewSectorHex_RejectsMalformedHex(t *testing.T) {
	for _, hex := range []string{"", "222", "22250", "ab12", "12x4"} {
		_, err := shared.NewSectorHex("Reft", hex)

		var validationErr *shared.ValidationError
		assert.ErrorAs(t, err, &validationErr, "hex %q", hex)
	}
}

func TestParseSectorHex(t *testing.T) {
	tests := []struct {
		input  string
		sector string
		hex    string
	}{
		{"Reft 2225", "reft", "2225"},
		{"Reft/1426", "reft", "1426"},
		{"Trojan Reach 2819", "trojan reach", "2819"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			h, err := shared.ParseSectorHex(tt.input)

			require.NoError(t, err)
			assert.Equal(t, tt.sector, h.Sector())
			assert.Equal(t, tt.hex, h.Hex())
		})
	}

	_, err := shared.ParseSectorHex("2225")
	assert.Error(t, err)
}

func TestSectorHex_StringRoundTrips(t *testing.T) {
	for _, h := range []shared.SectorHex{
		shared.MustSectorHex("Reft", "2225"),
		shared.MustSectorHex("trojan reach", "0101"),
		shared.MustSectorHex("SPINWARD MARCHES", "1910"),
	} {
		parsed, err := shared.ParseSectorHex(h.String())

		require.NoError(t, err, h.String())
		assert.Equal(t, h, parsed)
	}

	assert.Equal(t, "Trojan Reach 0101", shared.MustSectorHex("trojan reach", "0101").String())
	assert.Empty(t, shared.SectorHex{}.String())
}

func TestSectorHexDistance_SymmetricAndZeroOnSelf(t *testing.T) {
	hexes := []shared.SectorHex{
		shared.MustSectorHex("Reft", "1822"),
		shared.MustSectorHex("Reft", "1923"),
		shared.MustSectorHex("Reft", "2325"),
		shared.MustSectorHex("Reft", "1426"),
	}

	for _, a := range hexes {
		assert.Equal(t, 0, a.Distance(a))
		for _, b := range hexes {
			assert.Equal(t, a.Distance(b), b.Distance(a), "%s <-> %s", a, b)
		}
	}

	// (23,25) to (14,26): sqrt(81+1) = 9.05
	assert.Equal(t, 9, hexes[2].Distance(hexes[3]))
}

func TestSectorHexDistance_PanicsAcrossSectors(t *testing.T) {
	a := shared.MustSectorHex("Reft", "2225")
	b := shared.MustSectorHex("Trojan Reach", "2819")

	assert.PanicsWithError(t,
		"unable to get distance between hexes in different sectors, Reft 2225 and Trojan Reach 2819",
		func() { a.Distance(b) },
	)
}

func TestRoundedDistance(t *testing.T) {
	assert.Equal(t, 1, shared.RoundedDistance(0, 0, 1, 1)) // 1.41
	assert.Equal(t, 2, shared.RoundedDistance(0, 0, 1, 2)) // 2.24
	assert.Equal(t, 3, shared.RoundedDistance(0, 0, 2, 2)) // 2.83
	assert.Equal(t, 5, shared.RoundedDistance(-3, 0, 0, 4))
}

func TestHexSet(t *testing.T) {
	set, err := shared.ParseHexSet([]string{"Reft 1822", "Reft/1923"})
	require.NoError(t, err)

	assert.True(t, set.Contains(shared.MustSectorHex("reft", "1822")))
	assert.False(t, set.Contains(shared.MustSectorHex("reft", "2325")))
	assert.Len(t, set.Sorted(), 2)

	var empty shared.HexSet
	assert.False(t, empty.Contains(shared.MustSectorHex("reft", "1822")))
}
