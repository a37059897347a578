package graph

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/andrescamacho/traveller-trade-go/internal/domain/shared"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/world"
)

// JumpWorldsFetcher queries the map service for the worlds around origin
type JumpWorldsFetcher interface {
	JumpWorlds(ctx context.Context, origin shared.SectorHex, jump int) ([]*world.World, error)
}

// Options configures a WorldGraphService
type Options struct {
	// Jump is the neighbourhood radius in parsecs, normally the ship's max range
	Jump int

	// CacheTTL is how long a database entry stays fresh, 0 for forever
	CacheTTL time.Duration

	// Offline never calls the fetcher
	Offline bool

	Clock shared.Clock
}

// LoadStats counts where neighbourhoods came from
type LoadStats struct {
	Remote int64
	Cached int64
	Stale  int64
}

// WorldGraphService implements world.Provider over the map service with a
// database cache in front of it.
//
// Caching Strategy (Two-Tier):
// - Tier 1: In-memory identity map - one *world.World per hex for the run
// - Tier 2: Database cache (jump_worlds table) with a TTL, survives restarts
// - Concurrent loads of the same hex share one fetch (singleflight)
type WorldGraphService struct {
	repo    world.JumpWorldsRepository
	fetcher JumpWorldsFetcher
	jump    int
	ttl     time.Duration
	offline bool
	clock   shared.Clock

	mu         sync.RWMutex
	worlds     map[shared.SectorHex]*world.World
	neighbours map[shared.SectorHex][]*world.World

	group singleflight.Group

	remote atomic.Int64
	cached atomic.Int64
	stale  atomic.Int64
}

// NewWorldGraphService creates a graph service. repo may be nil to disable
// the database tier; fetcher may be nil only in offline mode.
func NewWorldGraphService(repo world.JumpWorldsRepository, fetcher JumpWorldsFetcher, opts Options) (*WorldGraphService, error) {
	if opts.Jump < 1 {
		return nil, fmt.Errorf("jump radius must be at least 1, got %d", opts.Jump)
	}
	if fetcher == nil && !opts.Offline {
		return nil, fmt.Errorf("a map service fetcher is required unless offline")
	}
	if opts.Clock == nil {
		opts.Clock = shared.SystemClock{}
	}

	return &WorldGraphService{
		repo:       repo,
		fetcher:    fetcher,
		jump:       opts.Jump,
		ttl:        opts.CacheTTL,
		offline:    opts.Offline,
		clock:      opts.Clock,
		worlds:     make(map[shared.SectorHex]*world.World),
		neighbours: make(map[shared.SectorHex][]*world.World),
	}, nil
}

// LoadWorld returns the world at key with its neighbourhood loaded.
// forceRefresh skips the database tier and refetches from the map service;
// instances already handed out are kept.
func (s *WorldGraphService) LoadWorld(ctx context.Context, key shared.SectorHex, forceRefresh bool) (*world.World, error) {
	if !forceRefresh {
		if w, ok := s.loaded(key); ok {
			return w, nil
		}
	}

	flight := key.String()
	if forceRefresh {
		flight += "#refresh"
	}

	// The flight outlives any one caller, so it runs detached from ctx and
	// each caller waits on its own ctx
	fetchCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(flight, func() (interface{}, error) {
		// Double-check after joining: an earlier flight may have just finished
		if !forceRefresh {
			if w, ok := s.loaded(key); ok {
				return w, nil
			}
		}
		worlds, err := s.fetch(fetchCtx, key, forceRefresh)
		if err != nil {
			return nil, err
		}
		return s.merge(key, worlds)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*world.World), nil
	}
}

// Neighbours returns the worlds within jump range of key, loading them on
// first use. The order is the map service's.
func (s *WorldGraphService) Neighbours(ctx context.Context, key shared.SectorHex) ([]*world.World, error) {
	if _, err := s.LoadWorld(ctx, key, false); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*world.World(nil), s.neighbours[key]...), nil
}

// Prefetch loads several worlds concurrently, at most parallelism at a time
func (s *WorldGraphService) Prefetch(ctx context.Context, keys []shared.SectorHex, parallelism int) error {
	if parallelism < 1 {
		parallelism = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for _, key := range keys {
		g.Go(func() error {
			_, err := s.LoadWorld(gctx, key, false)
			return err
		})
	}
	return g.Wait()
}

// Stats reports how many neighbourhoods were fetched, served from cache, or
// served stale after a failed refresh
func (s *WorldGraphService) Stats() LoadStats {
	return LoadStats{
		Remote: s.remote.Load(),
		Cached: s.cached.Load(),
		Stale:  s.stale.Load(),
	}
}

func (s *WorldGraphService) loaded(key shared.SectorHex) (*world.World, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.neighbours[key]; !ok {
		return nil, false
	}
	w, ok := s.worlds[key]
	return w, ok
}

// fetch resolves the neighbourhood of key through the database and map service tiers
func (s *WorldGraphService) fetch(ctx context.Context, key shared.SectorHex, forceRefresh bool) ([]*world.World, error) {
	var entry *world.CachedJumpWorlds
	if s.repo != nil && (!forceRefresh || s.offline) {
		var err error
		entry, err = s.repo.Get(ctx, key, s.jump)
		if err != nil {
			log.Printf("Error loading jump worlds for %s from database: %v", key, err)
			entry = nil
		}
	}

	if entry != nil && (s.offline || s.fresh(entry)) {
		s.cached.Add(1)
		return entry.Worlds, nil
	}

	if s.offline {
		return nil, fmt.Errorf("%w: %s is not cached and the planner is offline", world.ErrWorldNotFound, key)
	}

	worlds, err := s.fetcher.JumpWorlds(ctx, key, s.jump)
	if err != nil {
		if entry != nil && ctx.Err() == nil {
			log.Printf("Warning: refreshing %s failed, using cache from %s: %v", key, entry.FetchedAt.Format(time.RFC3339), err)
			s.stale.Add(1)
			return entry.Worlds, nil
		}
		return nil, err
	}
	s.remote.Add(1)

	if s.repo != nil {
		save := &world.CachedJumpWorlds{Origin: key, Jump: s.jump, Worlds: worlds, FetchedAt: s.clock.Now()}
		if err := s.repo.Save(ctx, save); err != nil {
			// Don't fail - caching failure shouldn't break planning
			log.Printf("Warning: failed to cache jump worlds for %s: %v", key, err)
		}
	}
	return worlds, nil
}

func (s *WorldGraphService) fresh(entry *world.CachedJumpWorlds) bool {
	return s.ttl <= 0 || s.clock.Now().Sub(entry.FetchedAt) < s.ttl
}

// merge folds a fetched neighbourhood into the identity map
func (s *WorldGraphService) merge(key shared.SectorHex, fetched []*world.World) (*world.World, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var origin *world.World
	others := make([]*world.World, 0, len(fetched))
	for _, w := range fetched {
		if existing, ok := s.worlds[w.Key()]; ok {
			w = existing
		} else {
			s.worlds[w.Key()] = w
		}

		if w.Key() == key {
			origin = w
			continue
		}
		others = append(others, w)
	}

	if origin == nil {
		return nil, fmt.Errorf("%w: no world at %s", world.ErrWorldNotFound, key)
	}
	s.neighbours[key] = others
	return origin, nil
}
