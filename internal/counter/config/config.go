package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/anthanhphan/gosdk/conflux"
	"github.com/anthanhphan/gosdk/logger"
)

// Config holds Counter Service configuration
type Config struct {
	Server  ServerConfig  `json:"server" yaml:"server"`
	Counter CounterConfig `json:"counter" yaml:"counter"`
	Backend BackendConfig `json:"backend" yaml:"backend"`
	Retry   RetryConfig   `json:"retry" yaml:"retry"`
	Breaker BreakerConfig `json:"breaker" yaml:"breaker"`
	Logger  logger.Config `json:"logger" yaml:"logger"`
}

type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

type CounterConfig struct {
	VirtualNodes    int `json:"virtual_nodes" yaml:"virtual_nodes"`
	CacheTTLMS      int `json:"cache_ttl_ms" yaml:"cache_ttl_ms"`
	FlushIntervalMS int `json:"flush_interval_ms" yaml:"flush_interval_ms"`
	FlushWorkers    int `json:"flush_workers" yaml:"flush_workers"`
	FlushTimeoutMS  int `json:"flush_timeout_ms" yaml:"flush_timeout_ms"`
}

type BackendConfig struct {
	Nodes          []NodeConfig `json:"nodes" yaml:"nodes"`
	Password       string       `json:"password" yaml:"password"`
	DB             int          `json:"db" yaml:"db"`
	DialTimeoutMS  int          `json:"dial_timeout_ms" yaml:"dial_timeout_ms"`
	ReadTimeoutMS  int          `json:"read_timeout_ms" yaml:"read_timeout_ms"`
	WriteTimeoutMS int          `json:"write_timeout_ms" yaml:"write_timeout_ms"`
	PoolSize       int          `json:"pool_size" yaml:"pool_size"`
}

// NodeConfig describes one backend node. Label is optional and defaults to
// "redis_<port>".
type NodeConfig struct {
	Addr  string `json:"addr" yaml:"addr"`
	Label string `json:"label" yaml:"label"`
}

type RetryConfig struct {
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts"`
	BackoffMS   int `json:"backoff_ms" yaml:"backoff_ms"`
}

type BreakerConfig struct {
	FailureThreshold int `json:"failure_threshold" yaml:"failure_threshold"`
	OpenTimeoutMS    int `json:"open_timeout_ms" yaml:"open_timeout_ms"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8000",
		},
		Counter: CounterConfig{
			VirtualNodes:    100,
			CacheTTLMS:      5000,
			FlushIntervalMS: 30000,
			FlushWorkers:    4,
			FlushTimeoutMS:  10000,
		},
		Backend: BackendConfig{
			Nodes: []NodeConfig{
				{Addr: "localhost:7070"},
				{Addr: "localhost:7071"},
			},
			DialTimeoutMS:  1000,
			ReadTimeoutMS:  1000,
			WriteTimeoutMS: 1000,
			PoolSize:       10,
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			BackoffMS:   200,
		},
		Breaker: BreakerConfig{
			FailureThreshold: 5,
			OpenTimeoutMS:    5000,
		},
		Logger: logger.Config{
			LogLevel:    logger.LevelInfo,
			LogEncoding: logger.EncodingJSON,
		},
	}
}

// Load loads configuration from file, then applies environment overrides.
func Load(path string) (*Config, error) {
	configPath := path
	if configPath == "" {
		env := os.Getenv("ENV")
		if env == "" {
			env = "local"
		}
		configPath = filepath.Join("internal", "counter", "config", env+".yaml")
	}

	cfg := DefaultConfig()

	parsedCfg, err := conflux.ParseConfig(configPath, cfg)
	if err != nil {
		log.Printf("Config file not found or failed to parse, using defaults if file not specified. Path: %s, Error: %v", configPath, err)
		if path != "" {
			return nil, err
		}
	} else {
		cfg = parsedCfg
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad loads configuration or exits on error
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

// applyEnv honours REDIS_NODES (comma separated), REDIS_PASSWORD and REDIS_DB.
func applyEnv(cfg *Config) error {
	if raw := os.Getenv("REDIS_NODES"); strings.TrimSpace(raw) != "" {
		var nodes []NodeConfig
		for _, addr := range strings.Split(raw, ",") {
			if addr = strings.TrimSpace(addr); addr != "" {
				nodes = append(nodes, NodeConfig{Addr: addr})
			}
		}
		cfg.Backend.Nodes = nodes
	}
	if pw, ok := os.LookupEnv("REDIS_PASSWORD"); ok {
		cfg.Backend.Password = pw
	}
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid REDIS_DB %q: %w", raw, err)
		}
		cfg.Backend.DB = db
	}
	return nil
}

// Validate rejects configurations the counter cannot run with.
func (c *Config) Validate() error {
	if len(c.Backend.Nodes) == 0 {
		return fmt.Errorf("backend.nodes must list at least one node")
	}
	if _, err := c.Backend.ShardNodes(); err != nil {
		return err
	}
	if c.Counter.VirtualNodes < 0 {
		return fmt.Errorf("counter.virtual_nodes must not be negative")
	}
	if c.Counter.CacheTTLMS < 0 || c.Counter.FlushIntervalMS < 0 {
		return fmt.Errorf("counter.cache_ttl_ms and counter.flush_interval_ms must not be negative")
	}
	if c.Retry.MaxAttempts < 0 || c.Retry.BackoffMS < 0 {
		return fmt.Errorf("retry settings must not be negative")
	}
	return nil
}
