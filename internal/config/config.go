package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/holonet/internal/logger"
)

// Config captures everything holonet reads at startup.
type Config struct {
	APIURL         string
	RequestTimeout time.Duration
	RateLimit      float64 // requests per second; negative disables pacing
	Concurrency    int     // in-flight fetches per detail section
	LogFile        string
	LogLevel       string
	Storage        Storage
}

// Storage selects and configures the favourites/history backend.
type Storage struct {
	Backend       string // "file", "redis" or "memory"
	Dir           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// Storage backends.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

const (
	defaultConfigPath     = "~/.config/holonet/config.toml"
	defaultAPIURL         = "https://swapi.dev/api"
	defaultRequestTimeout = 10 * time.Second
	defaultRateLimit      = 20
	defaultConcurrency    = 6
	defaultLogFile        = "~/.local/state/holonet/holonet.log"
	defaultLogLevel       = "info"
	defaultStateDir       = "~/.local/share/holonet"
	defaultRedisPrefix    = "holonet:"
)

type rawConfig struct {
	APIURL         string     `toml:"api_url" env:"HOLONET_API_URL"`
	RequestTimeout string     `toml:"request_timeout" env:"HOLONET_REQUEST_TIMEOUT"`
	RateLimit      float64    `toml:"rate_limit" env:"HOLONET_RATE_LIMIT"`
	Concurrency    int        `toml:"concurrency" env:"HOLONET_CONCURRENCY"`
	LogFile        string     `toml:"log_file" env:"HOLONET_LOG_FILE"`
	LogLevel       string     `toml:"log_level" env:"HOLONET_LOG_LEVEL"`
	Storage        rawStorage `toml:"storage"`
}

type rawStorage struct {
	Backend       string `toml:"backend" env:"HOLONET_STORAGE_BACKEND"`
	Dir           string `toml:"dir" env:"HOLONET_STATE_DIR"`
	RedisAddr     string `toml:"redis_addr" env:"HOLONET_REDIS_ADDR"`
	RedisPassword string `toml:"redis_password" env:"HOLONET_REDIS_PASSWORD"`
	RedisDB       int    `toml:"redis_db" env:"HOLONET_REDIS_DB"`
	RedisPrefix   string `toml:"redis_prefix" env:"HOLONET_REDIS_PREFIX"`
}

// Load reads the TOML config at path (or the default location), applies
// HOLONET_* environment overrides, and fills in defaults. A missing file is
// not an error.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var raw rawConfig
	if err := readFile(resolved, &raw); err != nil {
		return Config{}, err
	}
	if err := cleanenv.ReadEnv(&raw); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	return normalize(raw)
}

func readFile(path string, raw *rawConfig) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(bytes, raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

func normalize(raw rawConfig) (Config, error) {
	cfg := Config{
		APIURL:      orDefault(raw.APIURL, defaultAPIURL),
		RateLimit:   raw.RateLimit,
		Concurrency: raw.Concurrency,
		LogLevel:    strings.ToLower(orDefault(raw.LogLevel, defaultLogLevel)),
	}

	cfg.RequestTimeout = defaultRequestTimeout
	if v := strings.TrimSpace(raw.RequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse request_timeout: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("request_timeout must be > 0, got %v", d)
		}
		cfg.RequestTimeout = d
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = defaultRateLimit
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	if !logger.ValidLevel(cfg.LogLevel) {
		return Config{}, fmt.Errorf("unknown log_level %q", cfg.LogLevel)
	}
	cfg.LogFile = mustExpand(orDefault(raw.LogFile, defaultLogFile))

	cfg.Storage = Storage{
		Backend:       strings.ToLower(orDefault(raw.Storage.Backend, BackendFile)),
		Dir:           mustExpand(orDefault(raw.Storage.Dir, defaultStateDir)),
		RedisAddr:     strings.TrimSpace(raw.Storage.RedisAddr),
		RedisPassword: raw.Storage.RedisPassword,
		RedisDB:       raw.Storage.RedisDB,
		RedisPrefix:   orDefault(raw.Storage.RedisPrefix, defaultRedisPrefix),
	}
	switch cfg.Storage.Backend {
	case BackendFile, BackendMemory:
	case BackendRedis:
		if cfg.Storage.RedisAddr == "" {
			return Config{}, fmt.Errorf("storage backend redis requires redis_addr")
		}
	default:
		return Config{}, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	return cfg, nil
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

// DefaultPath returns the config location used when none is given.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
