package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/glabrego/pokedex-cli/internal/pokedex"
)

const (
	defaultAPIBaseURL       = "https://pokeapi.co/api/v2"
	defaultBatchLimit       = 100
	defaultFetchConcurrency = 16
	defaultDBPath           = ":memory:"
	defaultLogLevel         = "info"
)

// Config holds runtime settings for the CLI app.
type Config struct {
	APIBaseURL        string
	BatchLimit        int
	PageSize          int
	FetchConcurrency  int
	RequestsPerSecond float64
	DBPath            string
	LogPath           string
	LogLevel          string
}

func LoadFromEnv() (Config, error) {
	cfg := Config{
		APIBaseURL: os.Getenv("POKEDEX_API_BASE_URL"),
		DBPath:     os.Getenv("POKEDEX_DB_PATH"),
		LogPath:    os.Getenv("POKEDEX_LOG_PATH"),
		LogLevel:   os.Getenv("POKEDEX_LOG_LEVEL"),
	}

	var err error
	if cfg.BatchLimit, err = intFromEnv("POKEDEX_BATCH_LIMIT", defaultBatchLimit); err != nil {
		return Config{}, err
	}
	if cfg.PageSize, err = intFromEnv("POKEDEX_PAGE_SIZE", pokedex.DefaultPageSize); err != nil {
		return Config{}, err
	}
	if cfg.FetchConcurrency, err = intFromEnv("POKEDEX_FETCH_CONCURRENCY", defaultFetchConcurrency); err != nil {
		return Config{}, err
	}
	if raw := os.Getenv("POKEDEX_REQUESTS_PER_SECOND"); raw != "" {
		cfg.RequestsPerSecond, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return Config{}, fmt.Errorf("POKEDEX_REQUESTS_PER_SECOND must be a number: %s", raw)
		}
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.LogPath == "" {
		cfg.LogPath = filepath.Join(os.TempDir(), "pokedex.log")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.APIBaseURL == "" {
		return errors.New("APIBaseURL is required")
	}
	if c.APIBaseURL[len(c.APIBaseURL)-1] == '/' {
		return fmt.Errorf("APIBaseURL must not end with '/': %s", c.APIBaseURL)
	}
	if c.BatchLimit < 1 {
		return fmt.Errorf("BatchLimit must be at least 1: %d", c.BatchLimit)
	}
	if !pokedex.ValidPageSize(c.PageSize) {
		return fmt.Errorf("PageSize must be one of %v: %d", pokedex.PageSizes, c.PageSize)
	}
	if c.FetchConcurrency < 1 {
		return fmt.Errorf("FetchConcurrency must be at least 1: %d", c.FetchConcurrency)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("RequestsPerSecond must not be negative: %g", c.RequestsPerSecond)
	}
	if c.DBPath == "" {
		return errors.New("DBPath is required")
	}
	if c.LogPath == "" {
		return errors.New("LogPath is required")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LogLevel must be debug, info, warn or error: %s", c.LogLevel)
	}
	return nil
}

func intFromEnv(name string, fallback int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %s", name, raw)
	}
	return n, nil
}
