package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/vanshika/filmgraph/internal/graph"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Graph   GraphConfig   `yaml:"graph"`
	Breaker BreakerConfig `yaml:"breaker"`
	Logging LoggingConfig `yaml:"logging"`
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Host              string        `yaml:"host"`
	Port              int           `yaml:"port" validate:"min=1,max=65535"`
	ReadTimeout       time.Duration `yaml:"read_timeout" validate:"gt=0"`
	WriteTimeout      time.Duration `yaml:"write_timeout" validate:"gt=0"`
	IdleTimeout       time.Duration `yaml:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
	MetricsEnabled    bool          `yaml:"metrics_enabled"`
	AllowedOriginsCSV string        `yaml:"allowed_origins"`
}

// GraphConfig describes connectivity to the graph database over Bolt. Reads
// work against Memgraph and Neo4j; the person write path requires Memgraph.
type GraphConfig struct {
	Scheme         string        `yaml:"scheme" validate:"oneof=bolt bolt+s bolt+ssc neo4j neo4j+s neo4j+ssc"`
	Host           string        `yaml:"host" validate:"required"`
	Port           int           `yaml:"port" validate:"min=1,max=65535"`
	Database       string        `yaml:"database"`
	Username       string        `yaml:"username"`
	Password       string        `yaml:"password"`
	MaxConnections int           `yaml:"max_connections" validate:"min=1"`
	FetchSize      int           `yaml:"fetch_size" validate:"min=0"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" validate:"gte=0"`
	DecodePolicy   string        `yaml:"decode_policy" validate:"oneof=strict lenient"`
}

// BreakerConfig controls the circuit breaker in front of the graph driver.
type BreakerConfig struct {
	Enabled          bool          `yaml:"enabled"`
	MaxRequests      uint32        `yaml:"max_requests" validate:"min=1"`
	Interval         time.Duration `yaml:"interval" validate:"gte=0"`
	Timeout          time.Duration `yaml:"timeout" validate:"gt=0"`
	FailureThreshold float64       `yaml:"failure_threshold" validate:"gt=0,lte=1"`
	MinRequests      uint32        `yaml:"min_requests"`
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string `yaml:"level" validate:"oneof=debug info warn warning error"`
	Format        string `yaml:"format" validate:"oneof=text json"` // text|json
	IncludeCaller bool   `yaml:"include_caller"`
}

const (
	defaultHost             = "0.0.0.0"
	defaultPort             = 8080
	defaultReadTimeout      = 10 * time.Second
	defaultWriteTimeout     = 15 * time.Second
	defaultIdleTimeout      = 60 * time.Second
	defaultShutdownTimeout  = 10 * time.Second
	defaultLoggingLevel     = "info"
	defaultLoggingFormat    = "text"
	defaultGraphScheme      = "bolt"
	defaultGraphHost        = "localhost"
	defaultGraphPort        = 7687
	defaultGraphMaxSessions = 10
	defaultConnectTimeout   = 5 * time.Second
	defaultDecodePolicy     = "strict"
)

var validate = validator.New()

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	breaker := graph.DefaultBreakerSettings("graph")
	return Config{
		HTTP: HTTPConfig{
			Host:            defaultHost,
			Port:            defaultPort,
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			IdleTimeout:     defaultIdleTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Graph: GraphConfig{
			Scheme:         defaultGraphScheme,
			Host:           defaultGraphHost,
			Port:           defaultGraphPort,
			MaxConnections: defaultGraphMaxSessions,
			ConnectTimeout: defaultConnectTimeout,
			DecodePolicy:   defaultDecodePolicy,
		},
		Breaker: BreakerConfig{
			Enabled:          true,
			MaxRequests:      breaker.MaxRequests,
			Interval:         breaker.Interval,
			Timeout:          breaker.Timeout,
			FailureThreshold: breaker.FailureThreshold,
			MinRequests:      breaker.MinRequests,
		},
		Logging: LoggingConfig{
			Level:  defaultLoggingLevel,
			Format: defaultLoggingFormat,
		},
	}
}

// Load reads configuration from the optional file named by CONFIG_FILE and
// environment variables, applying defaults.
func Load() (Config, error) {
	return LoadFile(os.Getenv("CONFIG_FILE"))
}

// LoadFile layers defaults, the YAML file at path (skipped when empty) and
// environment variables, in that order, then validates the result.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	cfg.HTTP.Host = valueOrDefault("SERVER_HOST", cfg.HTTP.Host)
	cfg.HTTP.MetricsEnabled = parseBoolWithDefault("SERVER_METRICS_ENABLED", cfg.HTTP.MetricsEnabled)
	cfg.HTTP.AllowedOriginsCSV = valueOrDefault("SERVER_ALLOWED_ORIGINS", cfg.HTTP.AllowedOriginsCSV)

	cfg.Graph.Scheme = valueOrDefault("GRAPHDB_SCHEME", cfg.Graph.Scheme)
	cfg.Graph.Host = valueOrDefault("GRAPHDB_HOST", cfg.Graph.Host)
	cfg.Graph.Database = valueOrDefault("GRAPHDB_DATABASE", cfg.Graph.Database)
	cfg.Graph.Username = valueOrDefault("GRAPHDB_USERNAME", cfg.Graph.Username)
	cfg.Graph.Password = valueOrDefault("GRAPHDB_PASSWORD", cfg.Graph.Password)
	cfg.Graph.MaxConnections = parseIntWithDefault("GRAPHDB_MAX_CONNECTIONS", cfg.Graph.MaxConnections)
	cfg.Graph.FetchSize = parseIntWithDefault("GRAPHDB_FETCH_SIZE", cfg.Graph.FetchSize)
	cfg.Graph.DecodePolicy = strings.ToLower(valueOrDefault("GRAPHDB_DECODE_POLICY", cfg.Graph.DecodePolicy))

	cfg.Breaker.Enabled = parseBoolWithDefault("BREAKER_ENABLED", cfg.Breaker.Enabled)
	cfg.Breaker.MaxRequests = uint32(parseIntWithDefault("BREAKER_MAX_REQUESTS", int(cfg.Breaker.MaxRequests)))
	cfg.Breaker.MinRequests = uint32(parseIntWithDefault("BREAKER_MIN_REQUESTS", int(cfg.Breaker.MinRequests)))
	if v := os.Getenv("BREAKER_FAILURE_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid BREAKER_FAILURE_THRESHOLD: %w", err)
		}
		cfg.Breaker.FailureThreshold = f
	}

	cfg.Logging.Level = valueOrDefault("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = valueOrDefault("LOG_FORMAT", cfg.Logging.Format)
	cfg.Logging.IncludeCaller = parseBoolWithDefault("LOG_INCLUDE_CALLER", cfg.Logging.IncludeCaller)

	var err error
	if cfg.HTTP.Port, err = parsePort("SERVER_PORT", cfg.HTTP.Port); err != nil {
		return err
	}
	if cfg.Graph.Port, err = parsePort("GRAPHDB_PORT", cfg.Graph.Port); err != nil {
		return err
	}

	durations := []struct {
		key    string
		target *time.Duration
	}{
		{"SERVER_READ_TIMEOUT", &cfg.HTTP.ReadTimeout},
		{"SERVER_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout},
		{"SERVER_IDLE_TIMEOUT", &cfg.HTTP.IdleTimeout},
		{"SERVER_SHUTDOWN_TIMEOUT", &cfg.HTTP.ShutdownTimeout},
		{"GRAPHDB_CONNECT_TIMEOUT", &cfg.Graph.ConnectTimeout},
		{"BREAKER_INTERVAL", &cfg.Breaker.Interval},
		{"BREAKER_TIMEOUT", &cfg.Breaker.Timeout},
	}
	for _, d := range durations {
		if err := parseDuration(d.key, d.target); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks field constraints and reports every violation at once.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s fails %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// URI composes scheme://host:port.
func (g GraphConfig) URI() string {
	return g.Options().URI()
}

// Options converts the configuration into driver options.
func (g GraphConfig) Options() graph.Options {
	return graph.Options{
		Scheme:         g.Scheme,
		Host:           g.Host,
		Port:           g.Port,
		Database:       g.Database,
		Username:       g.Username,
		Password:       g.Password,
		MaxConnections: g.MaxConnections,
		FetchSize:      g.FetchSize,
		ConnectTimeout: g.ConnectTimeout,
	}
}

// Settings converts the configuration into breaker settings.
func (b BreakerConfig) Settings(name string) graph.BreakerSettings {
	return graph.BreakerSettings{
		Name:             name,
		MaxRequests:      b.MaxRequests,
		Interval:         b.Interval,
		Timeout:          b.Timeout,
		FailureThreshold: b.FailureThreshold,
		MinRequests:      b.MinRequests,
	}
}

// AllowedOrigins splits the CSV origin list.
func (h HTTPConfig) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(h.AllowedOriginsCSV, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}

func parseIntWithDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			return val
		}
	}
	return fallback
}

func parsePort(key string, fallback int) (int, error) {
	if v := os.Getenv(key); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
		}
		if port <= 0 || port > 65535 {
			return 0, fmt.Errorf("port %d is out of range", port)
		}
		return port, nil
	}
	return fallback, nil
}

func parseDuration(key string, target *time.Duration) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*target = d
	return nil
}
