package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Access     AccessConfig     `yaml:"access"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// AccessConfig holds the access-control policy knobs.
type AccessConfig struct {
	// EmployeeUnlockSeconds is the unlock-duration hint returned to the
	// door controller when an employee card is granted.
	EmployeeUnlockSeconds int `yaml:"employee_unlock_seconds"`
	// LogQueryLimit caps the number of entries returned per log query.
	LogQueryLimit int `yaml:"log_query_limit"`
	// RequestTimeoutSeconds bounds the backing-store calls of a single
	// access check.
	RequestTimeoutSeconds int           `yaml:"request_timeout_seconds"`
	RequestTimeout        time.Duration `yaml:"-"`
}

// PushConfig holds the VAPID keys for front-desk web push alerts.
// Alerts are disabled when the keys are left empty.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// WorkerPoolConfig holds the configuration for the alert worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		// The dashboard polls; a short cache absorbs the poll storm
		// without making the numbers visibly stale.
		cfg.Server.CacheTTLSeconds = 5
	}

	if cfg.Access.EmployeeUnlockSeconds <= 0 {
		cfg.Access.EmployeeUnlockSeconds = 1800
	}
	if cfg.Access.LogQueryLimit <= 0 {
		cfg.Access.LogQueryLimit = 100
	}
	if cfg.Access.RequestTimeoutSeconds <= 0 {
		cfg.Access.RequestTimeoutSeconds = 5
	}
	cfg.Access.RequestTimeout = time.Duration(cfg.Access.RequestTimeoutSeconds) * time.Second

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}

	return &cfg, nil
}
