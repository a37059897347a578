package config

// LoggingConfig configures the run logger
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`

	// Output is stderr, stdout or file; file needs FilePath
	Output   string `mapstructure:"output" validate:"required,oneof=stdout stderr file"`
	FilePath string `mapstructure:"file_path"`
}

// MetricsConfig holds search metrics configuration
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// TextfilePath is where the CLI writes metrics in the Prometheus text
	// format after each run, for the node exporter textfile collector
	TextfilePath string `mapstructure:"textfile_path"`

	// Namespace prefixes every metric name
	Namespace string `mapstructure:"namespace" validate:"required"`
}
