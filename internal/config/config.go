package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	// Agent service
	AgentURL       string
	APIToken       string // bootstrap bearer token, only used by enrollment
	CredentialFile string

	// Request pipeline
	RequestTimeoutSeconds int
	MaxAttempts           int
	RetryBaseMillis       int
	RetryMaxMillis        int

	// Application
	PurgePerSecond     float64
	PurgePageSize      int
	RunIntervalSeconds int

	// Dashboard
	DashboardHost string
	DashboardPort int

	LogLevel string
	LogFile  string
}

var (
	loadedCfg Config
	loadOnce  sync.Once
	loadErr   error
)

func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func Load() (Config, error) {
	loadOnce.Do(func() {
		// Best-effort .env loading; real deployments use the environment.
		_ = godotenv.Load()

		loadedCfg = Config{
			AgentURL:       envOr("HANA_AGENT_URL", "https://agent.hana.example.com"),
			APIToken:       os.Getenv("HANA_API_TOKEN"),
			CredentialFile: envOr("HANA_CREDENTIAL_FILE", DefaultCredentialPath()),

			RequestTimeoutSeconds: mustInt("HANA_REQUEST_TIMEOUT_SECONDS", 15),
			MaxAttempts:           mustInt("HANA_MAX_ATTEMPTS", 4),
			RetryBaseMillis:       mustInt("HANA_RETRY_BASE_MS", 250),
			RetryMaxMillis:        mustInt("HANA_RETRY_MAX_MS", 5000),

			PurgePerSecond:     mustFloat("HANA_PURGE_PER_SECOND", 2.0),
			PurgePageSize:      mustInt("HANA_PURGE_PAGE_SIZE", 100),
			RunIntervalSeconds: mustInt("HANA_RUN_INTERVAL_SECONDS", 300),

			DashboardHost: envOr("HANA_DASHBOARD_HOST", "127.0.0.1"),
			DashboardPort: mustInt("HANA_DASHBOARD_PORT", 8000),

			LogLevel: envOr("HANA_LOG_LEVEL", "INFO"),
			LogFile:  envOr("HANA_LOG_FILE", ""),
		}

		loadErr = validate(loadedCfg)
	})

	return loadedCfg, loadErr
}

func validate(c Config) error {
	if c.AgentURL == "" {
		return errors.New("HANA_AGENT_URL must not be empty")
	}
	if c.MaxAttempts < 1 {
		return errors.New("HANA_MAX_ATTEMPTS must be at least 1")
	}
	if c.RetryBaseMillis <= 0 || c.RetryMaxMillis < c.RetryBaseMillis {
		return errors.New("HANA_RETRY_BASE_MS/HANA_RETRY_MAX_MS must be positive and ordered")
	}
	if c.PurgePerSecond <= 0 {
		return errors.New("HANA_PURGE_PER_SECOND must be positive")
	}
	if c.PurgePageSize < 1 || c.PurgePageSize > 100 {
		return errors.New("HANA_PURGE_PAGE_SIZE must be between 1 and 100")
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func mustInt(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func mustFloat(key string, def float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return v
}

func (c Config) String() string {
	return fmt.Sprintf("agent=%s attempts=%d timeout=%ds purgeRate=%.1f/s", c.AgentURL, c.MaxAttempts, c.RequestTimeoutSeconds, c.PurgePerSecond)
}
