package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	VenueAPI  VenueAPIConfig  `mapstructure:"venue_api"`
	Pricing   PricingConfig   `mapstructure:"pricing"`
	Log       LogConfig       `mapstructure:"log"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

// VenueAPIConfig routes venue slugs to the upstream venue-information
// service: the last slug segment is looked up in Cities to get a country
// code, and Countries maps that code to an API base URL.
type VenueAPIConfig struct {
	Countries map[string]string `mapstructure:"countries"`
	Cities    map[string]string `mapstructure:"cities"`
	Timeout   int               `mapstructure:"timeout"` // seconds, per upstream request
	Retries   int               `mapstructure:"retries"`
}

// PricingConfig selects between the interchangeable calculation methods.
type PricingConfig struct {
	DistanceMethod string `mapstructure:"distance_method"` // planar | haversine
	FeeStrategy    string `mapstructure:"fee_strategy"`    // linear | binary | bucket
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	OTLPAddr    string `mapstructure:"otlp_addr"`
	Enabled     bool   `mapstructure:"enabled"`
}

// Load reads configuration from file and environment variables.
func Load(service string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("venue_api.countries", map[string]string{
		"FI": "https://consumer-api.development.dev.woltapi.com/home-assignment-api/v1",
	})
	v.SetDefault("venue_api.cities", map[string]string{
		"helsinki": "FI",
		"espoo":    "FI",
		"tampere":  "FI",
	})
	v.SetDefault("venue_api.timeout", 8)
	v.SetDefault("venue_api.retries", 2)
	v.SetDefault("pricing.distance_method", "haversine")
	v.SetDefault("pricing.fee_strategy", "linear")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.otlp_addr", "tempo:4317")
	v.SetDefault("telemetry.enabled", false)

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: DOPC_SERVER_PORT → server.port
	v.SetEnvPrefix("DOPC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if len(c.VenueAPI.Countries) == 0 {
		errs = append(errs, "venue_api.countries must not be empty")
	}
	if len(c.VenueAPI.Cities) == 0 {
		errs = append(errs, "venue_api.cities must not be empty")
	}
	for city, country := range c.VenueAPI.Cities {
		if _, ok := c.VenueAPI.Countries[country]; !ok {
			errs = append(errs, fmt.Sprintf("venue_api.cities[%s] points at unconfigured country %q", city, country))
		}
	}
	if c.VenueAPI.Timeout <= 0 {
		errs = append(errs, "venue_api.timeout must be positive")
	}
	if c.VenueAPI.Retries < 0 {
		errs = append(errs, "venue_api.retries must not be negative")
	}
	switch c.Pricing.DistanceMethod {
	case "planar", "haversine":
	default:
		errs = append(errs, fmt.Sprintf("pricing.distance_method must be planar or haversine, got %q", c.Pricing.DistanceMethod))
	}
	switch c.Pricing.FeeStrategy {
	case "linear", "binary", "bucket":
	default:
		errs = append(errs, fmt.Sprintf("pricing.fee_strategy must be linear, binary, or bucket, got %q", c.Pricing.FeeStrategy))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
