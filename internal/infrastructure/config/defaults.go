package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = "tradeplanner.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "tradeplanner"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "tradeplanner"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 10
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 2
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Map service defaults
	if cfg.TravellerMap.BaseURL == "" {
		cfg.TravellerMap.BaseURL = "https://travellermap.com"
	}
	if cfg.TravellerMap.Timeout == 0 {
		cfg.TravellerMap.Timeout = 30 * time.Second
	}
	if cfg.TravellerMap.RateLimit == 0 {
		cfg.TravellerMap.RateLimit = 2
	}
	if cfg.TravellerMap.Burst == 0 {
		cfg.TravellerMap.Burst = 4
	}
	if cfg.TravellerMap.MaxRetries == 0 {
		cfg.TravellerMap.MaxRetries = 3
	}
	if cfg.TravellerMap.BackoffBase == 0 {
		cfg.TravellerMap.BackoffBase = 1 * time.Second
	}
	if cfg.TravellerMap.CircuitBreaker.Threshold == 0 {
		cfg.TravellerMap.CircuitBreaker.Threshold = 5
	}
	if cfg.TravellerMap.CircuitBreaker.Timeout == 0 {
		cfg.TravellerMap.CircuitBreaker.Timeout = 60 * time.Second
	}
	if cfg.TravellerMap.CacheTTL == 0 {
		cfg.TravellerMap.CacheTTL = 30 * 24 * time.Hour
	}

	// Packing defaults
	if cfg.Packing.Mode == "" {
		cfg.Packing.Mode = "local"
	}
	if cfg.Packing.Address == "" {
		cfg.Packing.Address = "localhost:50061"
	}
	if cfg.Packing.Timeout == 0 {
		cfg.Packing.Timeout = 5 * time.Second
	}

	// Search defaults
	if cfg.Search.StaleCompletionLimit == 0 {
		cfg.Search.StaleCompletionLimit = 10
	}
	if cfg.Search.CycleWindow == 0 {
		cfg.Search.CycleWindow = 10
	}
	if cfg.Search.Parallelism == 0 {
		cfg.Search.Parallelism = 4
	}

	// Politics defaults
	if cfg.Politics.HomeWorlds == nil {
		cfg.Politics.HomeWorlds = []string{"Reft 1822", "Reft 1923"}
	}
	if cfg.Politics.SafeWorlds == nil {
		cfg.Politics.SafeWorlds = []string{}
	}
	if cfg.Politics.RivalZoneA == nil {
		cfg.Politics.RivalZoneA = []string{"Reft 1822", "Reft 1923"}
	}
	if cfg.Politics.RivalZoneB == nil {
		cfg.Politics.RivalZoneB = []string{"Reft 2325", "Reft 2225"}
	}
	if cfg.Politics.RivalPenalty == 0 {
		cfg.Politics.RivalPenalty = 2
	}

	// Ship defaults
	if len(cfg.Ships) == 0 {
		cfg.Ships = DefaultShips()
	}
	if cfg.DefaultShip == "" {
		cfg.DefaultShip = "perfect-stranger"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Metrics defaults
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = "tradeplanner"
	}
	if cfg.Metrics.TextfilePath == "" {
		cfg.Metrics.TextfilePath = "tradeplanner.prom"
	}
}
