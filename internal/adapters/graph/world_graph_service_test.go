package graph_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/traveller-trade-go/internal/adapters/graph"
	"github.com/andrescamacho/traveller-trade-go/internal/adapters/persistence"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/shared"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/world"
	"github.com/andrescamacho/traveller-trade-go/test/helpers"
)

// stubFetcher serves a fixed line of worlds along the x axis: every world
// sees its immediate neighbours on either side
type stubFetcher struct {
	calls int32
	gate  chan struct{}
	err   error
}

func (f *stubFetcher) JumpWorlds(ctx context.Context, origin shared.SectorHex, jump int) ([]*world.World, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}

	hexes := map[string][]string{
		"0101": {"0101", "0201"},
		"0201": {"0101", "0201", "0301"},
		"0301": {"0201", "0301"},
	}[origin.Hex()]

	var out []*world.World
	for _, hex := range hexes {
		col := int(hex[1] - '0')
		w, err := world.NewWorld("World "+hex, shared.MustSectorHex("Reft", hex), col, 1, "B567777-9", "", "CsIm", "")
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

func (f *stubFetcher) Calls() int {
	return int(atomic.LoadInt32(&f.calls))
}

func hex(h string) shared.SectorHex {
	return shared.MustSectorHex("Reft", h)
}

func newService(t *testing.T, repo world.JumpWorldsRepository, fetcher graph.JumpWorldsFetcher, opts graph.Options) *graph.WorldGraphService {
	t.Helper()
	if opts.Jump == 0 {
		opts.Jump = 1
	}
	svc, err := graph.NewWorldGraphService(repo, fetcher, opts)
	require.NoError(t, err)
	return svc
}

func newRepo(t *testing.T) *persistence.GormJumpWorldsRepository {
	t.Helper()
	repo, err := persistence.NewGormJumpWorldsRepository(helpers.NewTestDB(t))
	require.NoError(t, err)
	return repo
}

func TestWorldGraphService_IdentityAcrossNeighbourhoods(t *testing.T) {
	// Arrange
	fetcher := &stubFetcher{}
	svc := newService(t, nil, fetcher, graph.Options{})
	ctx := context.Background()

	// Act
	first, err := svc.LoadWorld(ctx, hex("0101"), false)
	require.NoError(t, err)
	neighbours, err := svc.Neighbours(ctx, hex("0101"))
	require.NoError(t, err)
	second, err := svc.LoadWorld(ctx, hex("0201"), false)
	require.NoError(t, err)
	back, err := svc.Neighbours(ctx, hex("0201"))
	require.NoError(t, err)

	// Assert
	require.Len(t, neighbours, 1)
	assert.Same(t, neighbours[0], second)
	require.Len(t, back, 2)
	assert.Same(t, first, back[0])
	assert.Equal(t, 2, fetcher.Calls())
}

func TestWorldGraphService_DatabaseTierSurvivesRestart(t *testing.T) {
	repo := newRepo(t)
	fetcher := &stubFetcher{}

	_, err := newService(t, repo, fetcher, graph.Options{}).LoadWorld(context.Background(), hex("0201"), false)
	require.NoError(t, err)

	restarted := newService(t, repo, fetcher, graph.Options{})
	neighbours, err := restarted.Neighbours(context.Background(), hex("0201"))

	require.NoError(t, err)
	assert.Len(t, neighbours, 2)
	assert.Equal(t, 1, fetcher.Calls())
	assert.Equal(t, int64(1), restarted.Stats().Cached)
}

func TestWorldGraphService_ForceRefreshKeepsInstances(t *testing.T) {
	fetcher := &stubFetcher{}
	svc := newService(t, newRepo(t), fetcher, graph.Options{})
	ctx := context.Background()

	before, err := svc.LoadWorld(ctx, hex("0101"), false)
	require.NoError(t, err)
	after, err := svc.LoadWorld(ctx, hex("0101"), true)
	require.NoError(t, err)

	assert.Same(t, before, after)
	assert.Equal(t, 2, fetcher.Calls())
}

func TestWorldGraphService_ExpiredCacheIsRefetched(t *testing.T) {
	repo := newRepo(t)
	fetcher := &stubFetcher{}
	clock := shared.NewManualClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	_, err := newService(t, repo, fetcher, graph.Options{CacheTTL: time.Hour, Clock: clock}).LoadWorld(context.Background(), hex("0101"), false)
	require.NoError(t, err)

	clock.Advance(2 * time.Hour)
	svc := newService(t, repo, fetcher, graph.Options{CacheTTL: time.Hour, Clock: clock})
	_, err = svc.LoadWorld(context.Background(), hex("0101"), false)

	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.Calls())
	assert.Equal(t, int64(1), svc.Stats().Remote)
}

func TestWorldGraphService_StaleCacheServedWhenServiceFails(t *testing.T) {
	repo := newRepo(t)
	clock := shared.NewManualClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	_, err := newService(t, repo, &stubFetcher{}, graph.Options{CacheTTL: time.Hour, Clock: clock}).LoadWorld(context.Background(), hex("0101"), false)
	require.NoError(t, err)

	clock.Advance(2 * time.Hour)
	svc := newService(t, repo, &stubFetcher{err: errors.New("connection refused")}, graph.Options{CacheTTL: time.Hour, Clock: clock})
	w, err := svc.LoadWorld(context.Background(), hex("0101"), false)

	require.NoError(t, err)
	assert.Equal(t, "World 0101", w.Name)
	assert.Equal(t, int64(1), svc.Stats().Stale)
}

func TestWorldGraphService_ConcurrentLoadsShareOneFetch(t *testing.T) {
	// Arrange
	fetcher := &stubFetcher{gate: make(chan struct{})}
	svc := newService(t, nil, fetcher, graph.Options{})

	var wg sync.WaitGroup
	results := make([]*world.World, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w, err := svc.LoadWorld(context.Background(), hex("0201"), false)
			assert.NoError(t, err)
			results[i] = w
		}()
	}

	// Act
	time.Sleep(20 * time.Millisecond)
	close(fetcher.gate)
	wg.Wait()

	// Assert
	assert.Equal(t, 1, fetcher.Calls())
	for _, w := range results {
		assert.Same(t, results[0], w)
	}
}

func TestWorldGraphService_CancelledCallerDoesNotFailJoinedLoad(t *testing.T) {
	// Arrange
	fetcher := &stubFetcher{gate: make(chan struct{})}
	svc := newService(t, nil, fetcher, graph.Options{})
	ctx, cancel := context.WithCancel(context.Background())

	first := make(chan error, 1)
	go func() {
		_, err := svc.LoadWorld(ctx, hex("0201"), false)
		first <- err
	}()
	require.Eventually(t, func() bool { return fetcher.Calls() == 1 }, time.Second, time.Millisecond)

	type result struct {
		w   *world.World
		err error
	}
	second := make(chan result, 1)
	go func() {
		w, err := svc.LoadWorld(context.Background(), hex("0201"), false)
		second <- result{w, err}
	}()
	// Let the second caller join the in-flight load
	time.Sleep(50 * time.Millisecond)

	// Act
	cancel()
	firstErr := <-first
	close(fetcher.gate)
	res := <-second

	// Assert
	assert.ErrorIs(t, firstErr, context.Canceled)
	require.NoError(t, res.err)
	assert.Equal(t, hex("0201"), res.w.Key())
	assert.Equal(t, 1, fetcher.Calls())
}

func TestWorldGraphService_Prefetch(t *testing.T) {
	fetcher := &stubFetcher{}
	svc := newService(t, nil, fetcher, graph.Options{})

	err := svc.Prefetch(context.Background(), []shared.SectorHex{hex("0101"), hex("0201"), hex("0301")}, 3)

	require.NoError(t, err)
	assert.Equal(t, 3, fetcher.Calls())
	neighbours, err := svc.Neighbours(context.Background(), hex("0301"))
	require.NoError(t, err)
	assert.Len(t, neighbours, 1)
	assert.Equal(t, 3, fetcher.Calls())
}

func TestWorldGraphService_OfflineMiss(t *testing.T) {
	svc := newService(t, newRepo(t), nil, graph.Options{Offline: true})

	_, err := svc.LoadWorld(context.Background(), hex("0101"), false)

	assert.ErrorIs(t, err, world.ErrWorldNotFound)
}

func TestWorldGraphService_UnknownHex(t *testing.T) {
	svc := newService(t, nil, &stubFetcher{}, graph.Options{})

	_, err := svc.LoadWorld(context.Background(), hex("0909"), false)

	assert.ErrorIs(t, err, world.ErrWorldNotFound)
}

func TestNewWorldGraphService_RequiresFetcherOnline(t *testing.T) {
	_, err := graph.NewWorldGraphService(nil, nil, graph.Options{Jump: 2})

	assert.Error(t, err)
}
