package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/waddle/internal/game"
	"github.com/abhisek/waddle/internal/records"
)

// Config holds all configuration for waddle.
type Config struct {
	Game        GameConfig        `yaml:"game"`
	Storage     StorageConfig     `yaml:"storage"`
	Mirror      MirrorConfig      `yaml:"mirror"`
	Catalog     CatalogConfig     `yaml:"catalog"`
	Log         LogConfig         `yaml:"log"`
	Server      ServerConfig      `yaml:"server"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
}

// GameConfig holds the rules of a run.
type GameConfig struct {
	Lives          int           `yaml:"lives"`
	CorrectPoints  int           `yaml:"correct_points"`
	HintedPoints   int           `yaml:"hinted_points"`
	AutoAdvance    time.Duration `yaml:"auto_advance"`
	NoticeDuration time.Duration `yaml:"notice_duration"`
	Gate           string        `yaml:"gate"`
}

// StorageConfig holds the local database location.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// MirrorConfig holds the optional remote session endpoint.
type MirrorConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// CatalogConfig points at an optional threat bank override.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// LeaderboardConfig holds leaderboard sizes.
type LeaderboardConfig struct {
	Top int `yaml:"top"`
	Cap int `yaml:"cap"`
}

// Default returns the built-in configuration.
func Default() *Config {
	rules := game.DefaultRules()
	return &Config{
		Game: GameConfig{
			Lives:          rules.Lives,
			CorrectPoints:  rules.CorrectPoints,
			HintedPoints:   rules.HintedPoints,
			AutoAdvance:    rules.AutoAdvance,
			NoticeDuration: rules.NoticeDuration,
			Gate:           string(rules.Gate),
		},
		Mirror: MirrorConfig{
			Timeout: 3 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Leaderboard: LeaderboardConfig{
			Top: 5,
			Cap: records.DefaultCap,
		},
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (skipped when path is empty), then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Storage.DBPath = getEnv("WADDLE_DB", c.Storage.DBPath)
	c.Mirror.URL = getEnv("WADDLE_MIRROR_URL", c.Mirror.URL)
	c.Mirror.Timeout = getEnvAsDuration("WADDLE_MIRROR_TIMEOUT", c.Mirror.Timeout)
	c.Catalog.Path = getEnv("WADDLE_CATALOG", c.Catalog.Path)
	c.Log.File = getEnv("WADDLE_LOG_FILE", c.Log.File)
	c.Log.Level = getEnv("WADDLE_LOG_LEVEL", c.Log.Level)
	c.Game.Gate = getEnv("WADDLE_GATE", c.Game.Gate)
	c.Server.Host = getEnv("WADDLE_SERVER_HOST", c.Server.Host)
	c.Server.Port = getEnvAsInt("WADDLE_SERVER_PORT", c.Server.Port)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs []error

	if c.Game.Lives < 1 {
		errs = append(errs, fmt.Errorf("lives must be positive: %d", c.Game.Lives))
	}
	if c.Game.CorrectPoints < 0 || c.Game.HintedPoints < 0 {
		errs = append(errs, fmt.Errorf("points must not be negative"))
	}
	if c.Game.HintedPoints > c.Game.CorrectPoints {
		errs = append(errs, fmt.Errorf("hinted points %d exceed correct points %d",
			c.Game.HintedPoints, c.Game.CorrectPoints))
	}
	if c.Game.AutoAdvance < 0 || c.Game.NoticeDuration < 0 {
		errs = append(errs, fmt.Errorf("delays must not be negative"))
	}
	if _, err := game.ParseGatePolicy(c.Game.Gate); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid server port: %d", c.Server.Port))
	}
	if c.Leaderboard.Top < 1 || c.Leaderboard.Cap < 1 {
		errs = append(errs, fmt.Errorf("leaderboard sizes must be positive"))
	}

	return errors.Join(errs...)
}

// Rules converts the game section to engine rules.
func (c *Config) Rules() game.Rules {
	gate, _ := game.ParseGatePolicy(c.Game.Gate)
	return game.Rules{
		Lives:          c.Game.Lives,
		CorrectPoints:  c.Game.CorrectPoints,
		HintedPoints:   c.Game.HintedPoints,
		AutoAdvance:    c.Game.AutoAdvance,
		NoticeDuration: c.Game.NoticeDuration,
		Gate:           gate,
	}
}

// SlogLevel parses the configured log level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(l.Level))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", l.Level)
	}
	return level, nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
