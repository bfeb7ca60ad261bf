package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	GRPC     GRPCConfig     `yaml:"grpc"`
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Booking  BookingConfig  `yaml:"booking"`
	Report   ReportConfig   `yaml:"report"`
	Drafts   DraftsConfig   `yaml:"drafts"`
}

type HTTPConfig struct {
	Address     string   `yaml:"address"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type GRPCConfig struct {
	Address string `yaml:"address"`
}

// StorageConfig selects where the persisted collections live. Whatever the
// driver, an installation keeps exactly one copy of its data.
type StorageConfig struct {
	Driver     string `yaml:"driver"`
	SQLitePath string `yaml:"sqlite_path"`
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingEventsTopic string   `yaml:"booking_events_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type BookingConfig struct {
	DefaultCurrency   string `yaml:"default_currency"`
	UrgentWindowHours int    `yaml:"urgent_window_hours"`
	StrictReturnDate  bool   `yaml:"strict_return_date"`
}

func (b BookingConfig) UrgentWindow() time.Duration {
	return time.Duration(b.UrgentWindowHours) * time.Hour
}

type ReportConfig struct {
	Timezone       string `yaml:"timezone"`
	DateLayout     string `yaml:"date_layout"`
	DateTimeLayout string `yaml:"datetime_layout"`
}

// Location resolves the report timezone, falling back to UTC when the zone
// database does not know it.
func (r ReportConfig) Location() *time.Location {
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type DraftsConfig struct {
	Model           string `yaml:"model"`
	APIKeyEnv       string `yaml:"api_key_env"`
	TimeoutSeconds  int    `yaml:"timeout_seconds"`
	CacheTTLMinutes int    `yaml:"cache_ttl_minutes"`
}

// APIKey reads the text-generation key from the configured variable.
func (d DraftsConfig) APIKey() string {
	return os.Getenv(d.APIKeyEnv)
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.GRPC.Address == "" {
		c.GRPC.Address = ":9090"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverSQLite
	}
	if c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = "travelpro.db"
	}
	if c.Booking.DefaultCurrency == "" {
		c.Booking.DefaultCurrency = "MAD"
	}
	if c.Booking.UrgentWindowHours <= 0 {
		c.Booking.UrgentWindowHours = 48
	}
	if c.Report.Timezone == "" {
		c.Report.Timezone = "Africa/Casablanca"
	}
	if c.Report.DateLayout == "" {
		c.Report.DateLayout = "02/01/2006"
	}
	if c.Report.DateTimeLayout == "" {
		c.Report.DateTimeLayout = "02/01/2006 15:04"
	}
	if c.Drafts.Model == "" {
		c.Drafts.Model = "gemini-2.5-flash"
	}
	if c.Drafts.APIKeyEnv == "" {
		c.Drafts.APIKeyEnv = "GEMINI_API_KEY"
	}
	if c.Drafts.TimeoutSeconds <= 0 {
		c.Drafts.TimeoutSeconds = 30
	}
}
