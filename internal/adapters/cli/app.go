package cli

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/andrescamacho/traveller-trade-go/internal/adapters/graph"
	"github.com/andrescamacho/traveller-trade-go/internal/adapters/logging"
	"github.com/andrescamacho/traveller-trade-go/internal/adapters/metrics"
	"github.com/andrescamacho/traveller-trade-go/internal/adapters/packing"
	"github.com/andrescamacho/traveller-trade-go/internal/adapters/persistence"
	"github.com/andrescamacho/traveller-trade-go/internal/adapters/rules"
	"github.com/andrescamacho/traveller-trade-go/internal/adapters/travellermap"
	"github.com/andrescamacho/traveller-trade-go/internal/application/common"
	"github.com/andrescamacho/traveller-trade-go/internal/application/mediator"
	"github.com/andrescamacho/traveller-trade-go/internal/application/planning"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/routing"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/trading"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/world"
	"github.com/andrescamacho/traveller-trade-go/internal/infrastructure/config"
	"github.com/andrescamacho/traveller-trade-go/internal/infrastructure/database"
)

// app holds everything a command needs, wired from the config
type app struct {
	cfg      *config.Config
	db       *gorm.DB
	repo     *persistence.GormJumpWorldsRepository
	logger   *logging.ConsoleLogger
	mediator mediator.Mediator

	closers []func() error
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if offline {
		cfg.TravellerMap.Offline = true
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

// newApp loads config, opens the world cache and registers the planning handlers
func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}
	if err := a.init(); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) init() error {
	cfg := a.cfg

	logger, err := logging.NewConsoleLogger(cfg.Logging)
	if err != nil {
		return err
	}
	a.logger = logger
	a.closers = append(a.closers, logger.Close)

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	a.db = db
	a.closers = append(a.closers, func() error { return database.Close(db) })
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	repo, err := persistence.NewGormJumpWorldsRepository(db)
	if err != nil {
		return err
	}
	a.repo = repo

	tables, err := rules.LoadTables(cfg.Rules.TablesPath)
	if err != nil {
		return err
	}
	catalog := rules.NewJSONCatalog(cfg.Rules.CatalogPath)

	packer, err := a.freightPacker()
	if err != nil {
		return err
	}

	rivals, err := cfg.Politics.RivalZones()
	if err != nil {
		return err
	}
	analyzer := trading.NewEdgeAnalyzer(tables, packer, rivals)

	var observer routing.Observer
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		collector := metrics.NewSearchMetricsCollector(cfg.Metrics.Namespace)
		if err := collector.Register(); err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}
		observer = collector
		if cfg.Metrics.TextfilePath != "" {
			// Runs before the database closes, so it is prepended
			path := cfg.Metrics.TextfilePath
			a.closers = append([]func() error{func() error { return metrics.WriteTextfile(path) }}, a.closers...)
		}
	}

	var fetcher graph.JumpWorldsFetcher
	if !cfg.TravellerMap.Offline {
		fetcher = travellermap.NewClient(travellermap.Options{
			BaseURL:          cfg.TravellerMap.BaseURL,
			Timeout:          cfg.TravellerMap.Timeout,
			RateLimit:        cfg.TravellerMap.RateLimit,
			Burst:            cfg.TravellerMap.Burst,
			MaxRetries:       cfg.TravellerMap.MaxRetries,
			BackoffBase:      cfg.TravellerMap.BackoffBase,
			BreakerThreshold: cfg.TravellerMap.CircuitBreaker.Threshold,
			BreakerTimeout:   cfg.TravellerMap.CircuitBreaker.Timeout,
		})
	}

	worlds := func(jump int) (world.Provider, error) {
		svc, err := graph.NewWorldGraphService(repo, fetcher, graph.Options{
			Jump:     jump,
			CacheTTL: cfg.TravellerMap.CacheTTL,
			Offline:  cfg.TravellerMap.Offline,
		})
		if err != nil {
			return nil, err
		}
		return svc, nil
	}
	snapshots := func(path string) world.SnapshotSource {
		return rules.NewSnapshotLoader(path)
	}

	m := mediator.NewMediator()
	m.RegisterMiddleware(common.RunMiddleware())
	if err := mediator.RegisterHandler[*planning.PlanVoyageCommand](m,
		planning.NewPlanVoyageHandler(cfg, worlds, snapshots, catalog, analyzer, cfg.Search.Options(), observer)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*planning.QuoteJumpQuery](m,
		planning.NewQuoteJumpHandler(cfg, worlds, snapshots, catalog, analyzer)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*planning.ShowWorldQuery](m,
		planning.NewShowWorldHandler(cfg, worlds)); err != nil {
		return err
	}
	a.mediator = m
	return nil
}

func (a *app) freightPacker() (trading.FreightPacker, error) {
	if a.cfg.Packing.Mode != "grpc" {
		return packing.NewLocalPacker(), nil
	}
	client, err := packing.NewGRPCPackingClient(a.cfg.Packing.Address, a.cfg.Packing.Timeout)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, client.Close)
	return client, nil
}

// context returns a context carrying the run logger
func (a *app) context(ctx context.Context) context.Context {
	return common.WithLogger(ctx, a.logger)
}

// Close releases resources in order, reporting every failure
func (a *app) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			log.Printf("cleanup failed: %v", err)
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
