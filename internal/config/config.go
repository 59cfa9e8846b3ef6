package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/thirdlf03/world-holidays/internal/auth"
	"github.com/thirdlf03/world-holidays/internal/favorites"
	"github.com/thirdlf03/world-holidays/internal/nager"
)

const (
	SessionStoreMemory = "memory"
	SessionStoreSQLite = "sqlite"
)

// Config is the holiday-service configuration. Values are resolved in order:
// defaults, YAML file, .env file, process environment. Command-line flags in
// the binaries take their defaults from the result.
type Config struct {
	Addr          string        `yaml:"addr"`
	HolidayAPIURL string        `yaml:"holiday_api_url"`
	FavoritesPath string        `yaml:"favorites_path"`
	SessionStore  string        `yaml:"session_store"`
	SessionDBPath string        `yaml:"session_db_path"`
	CacheTTL      time.Duration `yaml:"cache_ttl"`
	AuthFile      string        `yaml:"auth_file"`
	HTTPTimeout   time.Duration `yaml:"http_timeout"`
}

func Default() Config {
	return Config{
		Addr:          ":8080",
		HolidayAPIURL: nager.DefaultBaseURL,
		FavoritesPath: favorites.DefaultPath,
		SessionStore:  SessionStoreMemory,
		SessionDBPath: "data/quiz_sessions.db",
		CacheTTL:      time.Hour,
		AuthFile:      auth.DefaultFile,
		HTTPTimeout:   10 * time.Second,
	}
}

// Load builds the configuration. An empty yamlPath skips the YAML layer; a
// missing dotenvPath is ignored.
func Load(yamlPath, dotenvPath string) (Config, error) {
	return load(yamlPath, dotenvPath, os.LookupEnv)
}

func load(yamlPath, dotenvPath string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(yamlPath) != "" {
		if err := cfg.readYAML(yamlPath); err != nil {
			return Config{}, err
		}
	}

	dotenv := map[string]string{}
	if strings.TrimSpace(dotenvPath) != "" {
		values, err := godotenv.Read(dotenvPath)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read %s: %w", dotenvPath, err)
		}
		if values != nil {
			dotenv = values
		}
	}

	// The process environment wins over .env entries.
	get := func(key string) (string, bool) {
		if value, ok := lookup(key); ok {
			return value, true
		}
		value, ok := dotenv[key]
		return value, ok
	}
	if err := cfg.applyEnv(get); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) readYAML(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(c); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(get func(string) (string, bool)) error {
	stringVars := map[string]*string{
		"ADDR":            &c.Addr,
		"HOLIDAY_API_URL": &c.HolidayAPIURL,
		"FAVORITES_PATH":  &c.FavoritesPath,
		"SESSION_STORE":   &c.SessionStore,
		"SESSION_DB_PATH": &c.SessionDBPath,
		"AUTH_FILE":       &c.AuthFile,
	}
	for key, target := range stringVars {
		if value, ok := get(key); ok && value != "" {
			*target = value
		}
	}

	durations := map[string]*time.Duration{
		"CACHE_TTL":    &c.CacheTTL,
		"HTTP_TIMEOUT": &c.HTTPTimeout,
	}
	for key, target := range durations {
		value, ok := get(key)
		if !ok || value == "" {
			continue
		}
		d, err := parseDuration(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*target = d
	}
	return nil
}

// parseDuration accepts Go duration strings and bare numbers of seconds.
func parseDuration(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}
	return time.ParseDuration(value)
}

func (c Config) Validate() error {
	switch c.SessionStore {
	case SessionStoreMemory, SessionStoreSQLite:
	default:
		return fmt.Errorf("unknown session store %q (expected %s or %s)", c.SessionStore, SessionStoreMemory, SessionStoreSQLite)
	}
	if c.CacheTTL <= 0 {
		return errors.New("cache ttl must be positive")
	}
	if c.HTTPTimeout <= 0 {
		return errors.New("http timeout must be positive")
	}
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("listen address is required")
	}
	return nil
}
