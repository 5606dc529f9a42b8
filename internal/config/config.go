package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Platform PlatformConfig
	Radar    RadarConfig
	Logging  LoggingConfig
}

// ServerConfig configures the local API the presentation layer talks to.
type ServerConfig struct {
	Host         string
	Port         int `validate:"gt=0,lte=65535"`
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PlatformConfig points the gateway at the hosted backend: the Postgres
// endpoint exposing the externally defined tables and procedures, and the
// auth service that issues session tokens.
type PlatformConfig struct {
	Database DatabaseConfig
	Auth     AuthConfig
}

type DatabaseConfig struct {
	Host     string `validate:"required"`
	Port     int    `validate:"gt=0"`
	User     string `validate:"required"`
	Password string
	DBName   string `validate:"required"`
	SSLMode  string
}

type AuthConfig struct {
	URL          string `validate:"required,url"`
	AnonKey      string `validate:"required"`
	RefreshToken string `validate:"required"`
}

// RadarConfig carries the recognized proximity-feed options.
type RadarConfig struct {
	RadiusMeters   float64       `validate:"gt=0"`
	PollInterval   time.Duration `validate:"gt=0"`
	ReportInterval time.Duration `validate:"gt=0"`
}

type LoggingConfig struct {
	Level string
}

const (
	defaultRadiusMeters   = 100
	defaultPollInterval   = 5 * time.Second
	defaultReportInterval = 5 * time.Second
)

// Load loads configuration from environment variables or a .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// A missing .env file is fine; the environment may carry everything.
	_ = viper.ReadInConfig()

	viper.SetDefault("SERVER_HOST", "127.0.0.1")
	viper.SetDefault("SERVER_PORT", 8750)
	viper.SetDefault("PLATFORM_DB_PORT", 5432)
	viper.SetDefault("PLATFORM_DB_SSL_MODE", "require")
	viper.SetDefault("RADAR_RADIUS_METERS", defaultRadiusMeters)
	viper.SetDefault("RADAR_POLL_INTERVAL_MS", int(defaultPollInterval/time.Millisecond))
	viper.SetDefault("LOCATION_REPORT_INTERVAL_MS", int(defaultReportInterval/time.Millisecond))
	viper.SetDefault("LOG_LEVEL", "info")

	config := &Config{
		Server: ServerConfig{
			Host:         viper.GetString("SERVER_HOST"),
			Port:         viper.GetInt("SERVER_PORT"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Platform: PlatformConfig{
			Database: DatabaseConfig{
				Host:     viper.GetString("PLATFORM_DB_HOST"),
				Port:     viper.GetInt("PLATFORM_DB_PORT"),
				User:     viper.GetString("PLATFORM_DB_USER"),
				Password: viper.GetString("PLATFORM_DB_PASSWORD"),
				DBName:   viper.GetString("PLATFORM_DB_NAME"),
				SSLMode:  viper.GetString("PLATFORM_DB_SSL_MODE"),
			},
			Auth: AuthConfig{
				URL:          viper.GetString("PLATFORM_AUTH_URL"),
				AnonKey:      viper.GetString("PLATFORM_ANON_KEY"),
				RefreshToken: viper.GetString("PLATFORM_REFRESH_TOKEN"),
			},
		},
		Radar: RadarConfig{
			RadiusMeters:   viper.GetFloat64("RADAR_RADIUS_METERS"),
			PollInterval:   time.Duration(viper.GetInt("RADAR_POLL_INTERVAL_MS")) * time.Millisecond,
			ReportInterval: time.Duration(viper.GetInt("LOCATION_REPORT_INTERVAL_MS")) * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates critical configuration values.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string.
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}
