package internal

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"http_server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Expense       ExpenseConfig       `mapstructure:"expense"`
	Client        ClientConfig        `mapstructure:"client"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	AllowedOrigins    string        `mapstructure:"allowed_origins"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	// Driver selects the store: mongo (default), postgres, sqlite or memory.
	Driver         string        `mapstructure:"driver"`
	Source         string        `mapstructure:"source"`
	Name           string        `mapstructure:"name"`
	Collection     string        `mapstructure:"collection"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	MaxOpenConns   int           `mapstructure:"max_open_conns"`
	MaxIdleConns   int           `mapstructure:"max_idle_conns"`
}

type ExpenseConfig struct {
	StrictCategories bool `mapstructure:"strict_categories"`
}

type ClientConfig struct {
	APIURL          string        `mapstructure:"api_url"`
	Currency        string        `mapstructure:"currency"`
	NotificationTTL time.Duration `mapstructure:"notification_ttl"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
}

type ObservabilityConfig struct {
	Logging LoggingConfig `mapstructure:"logging"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultConfig mirrors the defaults of the original deployment: port 5000,
// a local mongo and the "expenses" collection.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              5000,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
			ShutdownTimeout:   30 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:         DriverMongo,
			Source:         "mongodb://localhost:27017",
			Name:           "expense_tracker",
			Collection:     "expenses",
			ConnectTimeout: 10 * time.Second,
			MaxOpenConns:   10,
			MaxIdleConns:   5,
		},
		Client: ClientConfig{
			APIURL:          "http://localhost:5000",
			Currency:        "₹",
			NotificationTTL: 3 * time.Second,
			RequestTimeout:  10 * time.Second,
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{Level: "info", Format: "text"},
		},
	}
}

// LoadConfigFromEnv builds the configuration from the process environment
// on top of DefaultConfig.
func LoadConfigFromEnv() *Config {
	cfg := DefaultConfig()
	cfg.ApplyEnv()
	return cfg
}

// ApplyEnv overrides the fields that have a well-known environment variable.
// MONGO_URI and PORT are the two the deployment relies on.
func (c *Config) ApplyEnv() {
	c.Server.Port = getEnvAsInt("PORT", c.Server.Port)
	c.Server.AllowedOrigins = getEnv("ALLOWED_ORIGINS", c.Server.AllowedOrigins)

	c.Database.Driver = getEnv("DB_DRIVER", c.Database.Driver)
	c.Database.Source = getEnv("MONGO_URI", c.Database.Source)
	c.Database.Source = getEnv("DATABASE_URL", c.Database.Source)
	c.Database.Name = getEnv("MONGO_DATABASE", c.Database.Name)
	c.Database.Collection = getEnv("MONGO_COLLECTION", c.Database.Collection)

	c.Expense.StrictCategories = getEnvAsBool("STRICT_CATEGORIES", c.Expense.StrictCategories)

	c.Client.APIURL = getEnv("API_URL", c.Client.APIURL)

	c.Observability.Logging.Level = getEnv("LOG_LEVEL", c.Observability.Logging.Level)
	c.Observability.Logging.Format = getEnv("LOG_FORMAT", c.Observability.Logging.Format)
}

// ----------------- HELPERS -----------------

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultVal
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if err := c.Observability.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("logging config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Port)
	}
	for _, origin := range c.Origins() {
		if origin == "*" {
			continue
		}
		u, err := url.Parse(origin)
		if err != nil {
			return fmt.Errorf("invalid allowed origin %s: %w", origin, err)
		}
		if u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid allowed origin %s: scheme and host are required", origin)
		}
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

// Origins splits the comma separated allow list, dropping blanks and trailing slashes.
func (c *ServerConfig) Origins() []string {
	if c.AllowedOrigins == "" {
		return nil
	}
	var origins []string
	for _, origin := range strings.Split(c.AllowedOrigins, ",") {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func (c *DatabaseConfig) Validate() error {
	switch c.Driver {
	case DriverMongo:
		if c.Name == "" || c.Collection == "" {
			return errors.New("mongo driver requires name and collection")
		}
	case DriverPostgres, DriverSQLite:
	case DriverMemory:
		return nil
	default:
		return fmt.Errorf("unknown driver %q: must be one of mongo, postgres, sqlite, memory", c.Driver)
	}
	if c.GetDSN() == "" {
		return errors.New("source is required")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

// GetDSN returns the connection string with surrounding whitespace removed,
// which env files and quoted YAML values tend to leave behind.
func (c *DatabaseConfig) GetDSN() string {
	return strings.TrimSpace(c.Source)
}

func (c *LoggingConfig) Validate() error {
	switch strings.ToLower(c.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid level %q", c.Level)
	}
	switch strings.ToLower(c.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("invalid format %q", c.Format)
	}
	return nil
}
