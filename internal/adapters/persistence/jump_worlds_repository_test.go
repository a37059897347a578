package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/traveller-trade-go/internal/adapters/persistence"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/shared"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/world"
	"github.com/andrescamacho/traveller-trade-go/test/helpers"
)

func reftWorld(t *testing.T, name, hex string, x, y int, uwp, zone, remarks string) *world.World {
	t.Helper()
	w, err := world.NewWorld(name, shared.MustSectorHex("Reft", hex), x, y, uwp, zone, "CsIm", remarks)
	require.NoError(t, err)
	return w
}

func TestJumpWorldsRepository_SaveAndGet(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo, err := persistence.NewGormJumpWorldsRepository(db)
	require.NoError(t, err)

	origin := shared.MustSectorHex("Reft", "2225")
	fetched := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entry := &world.CachedJumpWorlds{
		Origin: origin,
		Jump:   2,
		Worlds: []*world.World{
			reftWorld(t, "Amondiage", "2225", -110, 20, "A8B3531-D", "", "Fl Ni"),
			reftWorld(t, "Zed", "2325", -109, 20, "X??????-?", "R", ""),
		},
		FetchedAt: fetched,
	}

	// Act
	require.NoError(t, repo.Save(context.Background(), entry))
	found, err := repo.Get(context.Background(), origin, 2)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.True(t, fetched.Equal(found.FetchedAt))
	require.Len(t, found.Worlds, 2)
	assert.Equal(t, "Amondiage", found.Worlds[0].Name)
	assert.Equal(t, "A8B3531-D", found.Worlds[0].UWP.String())
	assert.True(t, found.Worlds[0].HasRemark("Ni"))
	assert.Equal(t, -110, found.Worlds[0].X)
	assert.Equal(t, world.ZoneRed, found.Worlds[1].Zone)
	assert.False(t, found.Worlds[1].UWP.Size.IsKnown())
}

func TestJumpWorldsRepository_MissReturnsNil(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo, err := persistence.NewGormJumpWorldsRepository(db)
	require.NoError(t, err)

	found, err := repo.Get(context.Background(), shared.MustSectorHex("Reft", "0101"), 1)

	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestJumpWorldsRepository_UpsertAndClear(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo, err := persistence.NewGormJumpWorldsRepository(db)
	require.NoError(t, err)
	ctx := context.Background()
	origin := shared.MustSectorHex("Reft", "2225")
	amondiage := reftWorld(t, "Amondiage", "2225", -110, 20, "A8B3531-D", "", "")

	require.NoError(t, repo.Save(ctx, &world.CachedJumpWorlds{Origin: origin, Jump: 1, Worlds: []*world.World{amondiage}, FetchedAt: time.Now()}))
	require.NoError(t, repo.Save(ctx, &world.CachedJumpWorlds{
		Origin:    origin,
		Jump:      1,
		Worlds:    []*world.World{amondiage, reftWorld(t, "Other", "2226", -110, 21, "C555555-5", "", "")},
		FetchedAt: time.Now(),
	}))
	require.NoError(t, repo.Save(ctx, &world.CachedJumpWorlds{Origin: origin, Jump: 2, Worlds: []*world.World{amondiage}, FetchedAt: time.Now()}))

	// Act
	found, err := repo.Get(ctx, origin, 1)
	require.NoError(t, err)
	removed, clearErr := repo.Clear(ctx)

	// Assert
	assert.Len(t, found.Worlds, 2)
	require.NoError(t, clearErr)
	assert.Equal(t, int64(2), removed)
	after, err := repo.Get(ctx, origin, 2)
	require.NoError(t, err)
	assert.Nil(t, after)
}
