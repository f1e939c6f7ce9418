package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"teamdash/infrastructure/session"
	"teamdash/infrastructure/sqlite"
	"teamdash/team"
)

// Config is the process configuration read from the environment.
type Config struct {
	Addr         string
	SQLitePath   string
	SeedPath     string
	LoadingDelay time.Duration
	WorkspaceTTL time.Duration
	LogLevel     slog.Level
	LogFormat    string
	ViewerName   string
	ViewerRole   string
}

// Load reads an optional .env file and then the environment.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := Config{
		Addr:       getenv("APP_ADDR", ":8080"),
		SQLitePath: getenv("SQLITE_PATH", sqlite.MemoryPath),
		SeedPath:   getenv("SEED_PATH", ""),
		LogFormat:  strings.ToLower(getenv("LOG_FORMAT", "text")),
		ViewerName: getenv("VIEWER_NAME", "Tommy"),
		ViewerRole: getenv("VIEWER_ROLE", string(team.RoleRecruiter)),
	}

	var err error
	if cfg.LoadingDelay, err = durationEnv("LOADING_DELAY", team.DefaultLoadingDelay); err != nil {
		return Config{}, err
	}
	if cfg.WorkspaceTTL, err = durationEnv("WORKSPACE_TTL", session.DefaultTTL); err != nil {
		return Config{}, err
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(getenv("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return Config{}, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}
	return cfg, nil
}

// Logger builds the process logger described by the config.
func (c Config) Logger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := getenv(key, "")
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return d, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
