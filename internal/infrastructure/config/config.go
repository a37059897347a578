package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/andrescamacho/traveller-trade-go/internal/domain/navigation"
)

// Config is the main configuration struct combining all sub-configs
type Config struct {
	Database     DatabaseConfig         `mapstructure:"database"`
	TravellerMap TravellerMapConfig     `mapstructure:"travellermap"`
	Rules        RulesConfig            `mapstructure:"rules"`
	Packing      PackingConfig          `mapstructure:"packing"`
	Search       SearchConfig           `mapstructure:"search"`
	Politics     PoliticsConfig         `mapstructure:"politics"`
	Ships        map[string]ShipProfile `mapstructure:"ships" validate:"dive"`
	DefaultShip  string                 `mapstructure:"default_ship"`
	Logging      LoggingConfig          `mapstructure:"logging"`
	Metrics      MetricsConfig          `mapstructure:"metrics"`
}

// LoadConfig loads configuration from multiple sources with priority:
// 1. Environment variables (highest priority)
// 2. Config file (config.yaml)
// 3. Defaults (lowest priority)
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (doesn't error if missing)
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".tradeplanner"))
		}
		v.AddConfigPath("/etc/tradeplanner")
	}

	v.SetEnvPrefix("TP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnv(v, reflect.TypeOf(Config{}), "")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK - env vars and defaults still apply
	}

	// DATABASE_URL is honoured without the TP_ prefix
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		v.Set("database.url", dbURL)
		v.Set("database.type", "postgres")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	SetDefaults(&cfg)

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// bindEnv registers every leaf key of t with viper. AutomaticEnv only
// resolves keys viper already knows, and defaults live on the struct, so
// keys missing from the file would otherwise never see their TP_ variable.
// Maps are skipped since their keys are user-defined.
func bindEnv(v *viper.Viper, t reflect.Type, prefix string) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := strings.Split(field.Tag.Get("mapstructure"), ",")[0]
		if tag == "" || tag == "-" {
			continue
		}
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}
		switch field.Type.Kind() {
		case reflect.Struct:
			bindEnv(v, field.Type, key)
		case reflect.Map:
		default:
			_ = v.BindEnv(key)
		}
	}
}

// LoadConfigOrDefault loads configuration or returns a default config on error
func LoadConfigOrDefault(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	SetDefaults(cfg)
	return cfg
}

// Ship returns the named ship profile, or the default ship when name is empty
func (c *Config) Ship(name string) (string, ShipProfile, error) {
	if name == "" {
		name = c.DefaultShip
	}
	profile, ok := c.Ships[name]
	if !ok {
		return "", ShipProfile{}, fmt.Errorf("unknown ship profile %q", name)
	}
	return name, profile, nil
}

// BuildShip resolves a ship profile by name and builds the domain ship.
// An empty name selects the default ship.
func (c *Config) BuildShip(name string) (*navigation.Ship, error) {
	name, profile, err := c.Ship(name)
	if err != nil {
		return nil, err
	}
	return profile.Build(name, c.Politics)
}
