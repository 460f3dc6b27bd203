// Package config assembles server settings from defaults, an optional YAML
// file and environment overrides, in that order.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"deepmine/internal/domain/mine"
	"deepmine/internal/platform/logger"
)

const configPathEnv = "DEEPMINE_CONFIG"

type Config struct {
	HTTPAddr      string        `yaml:"http_addr"`
	StreamAddr    string        `yaml:"stream_addr"`
	DatabaseDSN   string        `yaml:"database_dsn"`
	AutoMigrate   bool          `yaml:"auto_migrate"`
	TickInterval  time.Duration `yaml:"tick_interval"`
	DayDuration   time.Duration `yaml:"day_duration"`
	NightDuration time.Duration `yaml:"night_duration"`
	ClockStartAt  int64         `yaml:"clock_start_unix"`
	PlayerID      string        `yaml:"player_id"`
	LootSeed      uint64        `yaml:"loot_seed"`
	Player        PlayerConfig  `yaml:"player"`
	Log           logger.Config `yaml:"log"`
}

type PlayerConfig struct {
	Gold      int     `yaml:"gold"`
	MaxHealth float64 `yaml:"max_health"`
	Tool      string  `yaml:"tool"`
	Tier      string  `yaml:"tier"`
}

func Default() Config {
	return Config{
		HTTPAddr:      ":8080",
		StreamAddr:    ":8081",
		AutoMigrate:   true,
		TickInterval:  50 * time.Millisecond,
		DayDuration:   10 * time.Minute,
		NightDuration: 5 * time.Minute,
		PlayerID:      "demo-player",
		LootSeed:      1,
		Player: PlayerConfig{
			Gold:      500,
			MaxHealth: 100,
			Tool:      string(mine.ToolPickaxe),
			Tier:      "basic",
		},
		Log: logger.Config{Level: "info", Format: "console"},
	}
}

// Load reads the file named by DEEPMINE_CONFIG when set, then applies
// environment overrides.
func Load() (Config, error) {
	cfg := Default()
	if path := strings.TrimSpace(os.Getenv(configPathEnv)); path != "" {
		if err := mergeFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func mergeFile(cfg *Config, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.HTTPAddr = stringEnv("DEEPMINE_HTTP_ADDR", cfg.HTTPAddr)
	cfg.StreamAddr = stringEnv("DEEPMINE_STREAM_ADDR", cfg.StreamAddr)
	cfg.DatabaseDSN = stringEnv("DEEPMINE_DB_DSN", cfg.DatabaseDSN)
	cfg.AutoMigrate = boolEnv("DEEPMINE_AUTO_MIGRATE", cfg.AutoMigrate)
	cfg.TickInterval = time.Duration(intEnv("DEEPMINE_TICK_MS", int(cfg.TickInterval/time.Millisecond))) * time.Millisecond
	cfg.DayDuration = time.Duration(intEnv("WORLD_DAY_SECONDS", int(cfg.DayDuration/time.Second))) * time.Second
	cfg.NightDuration = time.Duration(intEnv("WORLD_NIGHT_SECONDS", int(cfg.NightDuration/time.Second))) * time.Second
	cfg.ClockStartAt = int64(intEnv("WORLD_CLOCK_START_UNIX", int(cfg.ClockStartAt)))
	cfg.PlayerID = stringEnv("DEEPMINE_PLAYER_ID", cfg.PlayerID)
	cfg.LootSeed = uint64(intEnv("DEEPMINE_LOOT_SEED", int(cfg.LootSeed)))
	cfg.Player.Gold = intEnv("DEEPMINE_PLAYER_GOLD", cfg.Player.Gold)
	cfg.Player.MaxHealth = float64(intEnv("DEEPMINE_PLAYER_MAX_HEALTH", int(cfg.Player.MaxHealth)))
	cfg.Player.Tool = stringEnv("DEEPMINE_PLAYER_TOOL", cfg.Player.Tool)
	cfg.Player.Tier = stringEnv("DEEPMINE_PLAYER_TIER", cfg.Player.Tier)
	cfg.Log.Level = stringEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = stringEnv("LOG_FORMAT", cfg.Log.Format)
}

func (c Config) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %s", c.TickInterval)
	}
	if c.DayDuration <= 0 || c.NightDuration <= 0 {
		return fmt.Errorf("day and night durations must be positive")
	}
	if c.Player.MaxHealth <= 0 {
		return fmt.Errorf("player max health must be positive")
	}
	if c.Player.Gold < 0 {
		return fmt.Errorf("player gold must not be negative")
	}
	if _, err := mine.ParseToolTier(c.Player.Tier); err != nil {
		return err
	}
	return nil
}

// ToolTier is the parsed starting tier; Validate guarantees it parses.
func (p PlayerConfig) ToolTier() mine.ToolTier {
	tier, _ := mine.ParseToolTier(p.Tier)
	return tier
}

func stringEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func boolEnv(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
