package config

import (
	"fmt"
	"time"
)

// Storefront KV backends
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// StorefrontConfig configures the storefront client (cmd/storefront)
type StorefrontConfig struct {
	APIURL       string
	Store        string // memory, sqlite or redis
	StorePath    string // sqlite file for the session store
	RedisPrefix  string
	GeminiAPIKey string
	GeminiModel  string
	Timeout      time.Duration
	Redis        RedisConfig
	Log          LogConfig
}

// LoadStorefront reads the storefront.* section plus the shared redis and
// log sections, with the same file lookup and ERGO_ overrides as Load
func LoadStorefront() (*StorefrontConfig, error) {
	v := newViper()
	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	cfg := &StorefrontConfig{
		APIURL:       v.GetString("storefront.api_url"),
		Store:        v.GetString("storefront.store"),
		StorePath:    v.GetString("storefront.store_path"),
		RedisPrefix:  v.GetString("storefront.redis_prefix"),
		GeminiAPIKey: v.GetString("storefront.gemini_api_key"),
		GeminiModel:  v.GetString("storefront.gemini_model"),
		Timeout:      v.GetDuration("storefront.timeout"),
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
	}

	applyStorefrontDefaults(cfg)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyStorefrontDefaults(cfg *StorefrontConfig) {
	if cfg.APIURL == "" {
		cfg.APIURL = "http://localhost:8080"
	}
	if cfg.Store == "" {
		cfg.Store = StoreSQLite
	}
	if cfg.StorePath == "" {
		cfg.StorePath = "storefront.db"
	}
	if cfg.RedisPrefix == "" {
		cfg.RedisPrefix = "ergolife:storefront:"
	}
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = "gemini-3-flash-preview"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stderr"
	}
}

func (c *StorefrontConfig) validate() error {
	switch c.Store {
	case StoreMemory, StoreSQLite, StoreRedis:
	default:
		return fmt.Errorf("storefront.store must be one of memory, sqlite, redis, got %q", c.Store)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("storefront.timeout cannot be negative")
	}
	return nil
}
