package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/traveller-trade-go/internal/domain/contract"
	"github.com/andrescamacho/traveller-trade-go/internal/infrastructure/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := config.Default()

	require.NoError(t, config.ValidateConfig(cfg))
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "local", cfg.Packing.Mode)
	assert.Equal(t, 10, cfg.Search.StaleCompletionLimit)
	assert.Equal(t, 2, cfg.Politics.RivalPenalty)
	assert.Contains(t, cfg.Ships, cfg.DefaultShip)
}

func TestDefaultShips_Build(t *testing.T) {
	cfg := config.Default()

	for name, profile := range cfg.Ships {
		ship, err := profile.Build(name, cfg.Politics)
		require.NoError(t, err, name)
		assert.Equal(t, name, ship.Name())
	}

	_, profile, err := cfg.Ship("perfect-stranger")
	require.NoError(t, err)
	ship, err := profile.Build("perfect-stranger", cfg.Politics)
	require.NoError(t, err)
	assert.Equal(t, 5, ship.MaxRange())
	assert.IsType(t, &contract.RevenueShare{}, ship.Contract())
}

func TestLoadConfig_FromFile(t *testing.T) {
	// Arrange
	path := writeConfig(t, `
database:
  type: sqlite
  path: ":memory:"
search:
  parallelism: 8
  timeout: 90s
packing:
  mode: grpc
  address: packer:50061
ships:
  scout:
    monthly_maintenance: 1000
    fuel_per_jump: 10
    jump_rating: 2
    fuel_tank: 20
    cargo: 10
    passages:
      - kind: middle
        seats: 1
    contract:
      type: mortgage
      principal: 240000
default_ship: scout
`)

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Search.Parallelism)
	assert.Equal(t, 90*time.Second, cfg.Search.Timeout)
	assert.Equal(t, "grpc", cfg.Packing.Mode)

	name, profile, err := cfg.Ship("")
	require.NoError(t, err)
	assert.Equal(t, "scout", name)
	ship, err := profile.Build(name, cfg.Politics)
	require.NoError(t, err)
	assert.Equal(t, 2, ship.MaxRange())
	mortgage, ok := ship.Contract().(*contract.Mortgage)
	require.True(t, ok)
	assert.Equal(t, 1000.0, mortgage.Installment())
}

func TestLoadConfig_EnvOverridesKeysMissingFromFile(t *testing.T) {
	// Arrange
	path := writeConfig(t, "logging:\n  level: warn\n")
	t.Setenv("TP_SEARCH_PARALLELISM", "7")
	t.Setenv("TP_LOGGING_LEVEL", "debug")
	t.Setenv("TP_TRAVELLERMAP_OFFLINE", "true")
	t.Setenv("TP_TRAVELLERMAP_CACHE_TTL", "1h")

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Search.Parallelism)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.TravellerMap.Offline)
	assert.Equal(t, time.Hour, cfg.TravellerMap.CacheTTL)
	assert.Equal(t, 10, cfg.Search.StaleCompletionLimit)
}

func TestLoadConfig_RejectsUnknownDefaultShip(t *testing.T) {
	path := writeConfig(t, "default_ship: ghost\n")

	_, err := config.LoadConfig(path)

	assert.ErrorContains(t, err, "ghost")
}

func TestLoadConfig_RejectsBadPoliticsHex(t *testing.T) {
	path := writeConfig(t, "politics:\n  home_worlds: [\"Reft\"]\n")

	_, err := config.LoadConfig(path)

	assert.ErrorContains(t, err, "politics.home_worlds")
}

func TestLoadConfig_RejectsInvalidPackingMode(t *testing.T) {
	path := writeConfig(t, "packing:\n  mode: carrier-pigeon\n")

	_, err := config.LoadConfig(path)

	assert.Error(t, err)
}
