package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the music dashboard configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Recommend RecommendConfig `yaml:"recommend"`
	Auth      AuthConfig      `yaml:"auth"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int      `yaml:"port"`
	ReadTimeoutSec  int      `yaml:"read_timeout_sec"`
	WriteTimeoutSec int      `yaml:"write_timeout_sec"`
	ShutdownSec     int      `yaml:"shutdown_timeout_sec"`
	RateLimit       int      `yaml:"rate_limit_per_min"` // per client IP, 0 = unlimited
	CORSOrigins     []string `yaml:"cors_origins"`
}

// DatabaseConfig holds relational store settings.
type DatabaseConfig struct {
	Driver          string `yaml:"driver"` // sqlite (default)
	Path            string `yaml:"path"`
	SlowQueryMillis int    `yaml:"slow_query_ms"`
}

// Catalog samplers.
const (
	SamplerSQL   = "sql"
	SamplerRedis = "redis"
)

// CatalogConfig selects how random catalog samples are drawn.
type CatalogConfig struct {
	Sampler          string      `yaml:"sampler"` // sql (default), redis
	IndexKey         string      `yaml:"index_key"`
	SyncBatch        int         `yaml:"sync_batch"`
	Redis            RedisConfig `yaml:"redis"`
	ReadinessTimeout int         `yaml:"readiness_timeout_sec"`
}

// RedisConfig holds connection settings for the sample index.
type RedisConfig struct {
	Addrs         []string `yaml:"addrs"`
	Username      string   `yaml:"username"`
	Password      string   `yaml:"password"`
	DB            int      `yaml:"db"`
	DialTimeoutMs int      `yaml:"dial_timeout_ms"`
}

// RecommendConfig holds the defaults used when a client omits a parameter.
type RecommendConfig struct {
	SampleSize   int `yaml:"sample_size"`
	TopK         int `yaml:"top_k"`
	ReturnN      int `yaml:"return_n"`
	DiscoverSize int `yaml:"discover_size"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.SlowQueryMillis <= 0 {
		c.Database.SlowQueryMillis = 200
	}
	if c.Catalog.Sampler == "" {
		c.Catalog.Sampler = SamplerSQL
	}
	if c.Catalog.IndexKey == "" {
		c.Catalog.IndexKey = "dashboard:catalog:tracks"
	}
	if c.Catalog.SyncBatch <= 0 {
		c.Catalog.SyncBatch = 1000
	}
	if c.Catalog.ReadinessTimeout <= 0 {
		c.Catalog.ReadinessTimeout = 10
	}
	if c.Recommend.SampleSize <= 0 {
		c.Recommend.SampleSize = 2000
	}
	if c.Recommend.TopK <= 0 {
		c.Recommend.TopK = 50
	}
	if c.Recommend.ReturnN <= 0 {
		c.Recommend.ReturnN = 10
	}
	if c.Recommend.DiscoverSize <= 0 {
		c.Recommend.DiscoverSize = 20
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.HTTP.RateLimit < 0 {
		return fmt.Errorf("http.rate_limit_per_min must not be negative, got %d", c.HTTP.RateLimit)
	}
	if c.Database.Driver != "sqlite" {
		return fmt.Errorf("database.driver must be \"sqlite\", got %q", c.Database.Driver)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	switch c.Catalog.Sampler {
	case SamplerSQL:
	case SamplerRedis:
		if len(c.Catalog.Redis.Addrs) == 0 {
			return fmt.Errorf("catalog.redis.addrs is required for the redis sampler")
		}
	default:
		return fmt.Errorf("catalog.sampler must be \"sql\" or \"redis\", got %q", c.Catalog.Sampler)
	}
	if c.Recommend.TopK > c.Recommend.SampleSize {
		return fmt.Errorf("recommend.top_k (%d) must not exceed recommend.sample_size (%d)",
			c.Recommend.TopK, c.Recommend.SampleSize)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
