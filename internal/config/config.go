package config

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

const appName = "lyricforge"

type Config struct {
	DataDir      string `yaml:"data_dir"`
	LexiconPath  string `yaml:"lexicon_path"`
	DefaultMood  string `yaml:"default_mood"`
	DefaultMotif string `yaml:"default_motif"`
	Workers      int    `yaml:"workers"`
	LiveDebounce string `yaml:"live_debounce"`
	HistoryDays  int    `yaml:"history_days"`
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.yaml")
}

func DefaultDataDir() string {
	return filepath.Join(xdg.DataHome, appName)
}

// ResolvedDataDir returns the configured data directory or the XDG default.
func (c *Config) ResolvedDataDir() string {
	if strings.TrimSpace(c.DataDir) == "" {
		return DefaultDataDir()
	}
	return c.DataDir
}

// DebounceDuration falls back to 300ms when live_debounce does not parse.
func (c *Config) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(c.LiveDebounce)
	if err != nil || d <= 0 {
		return 300 * time.Millisecond
	}
	return d
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config file at path (or the default location) on top of the
// embedded defaults, then applies .env files and LYRICFORGE_* overrides. A
// missing file is created from the defaults on first run.
func Load(path string) (*Config, error) {
	cfg, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Non-fatal: the embedded defaults still apply.
		_ = writeDefaults(path)
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	loadDotEnv(".env", filepath.Join(filepath.Dir(path), ".env"))
	applyEnv(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

// loadDotEnv loads each existing file. Variables already set in the process
// environment win.
func loadDotEnv(paths ...string) {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		_ = godotenv.Load(p)
	}
}

func applyEnv(cfg *Config) {
	cfg.DataDir = getenvString("LYRICFORGE_DATA_DIR", cfg.DataDir)
	cfg.LexiconPath = getenvString("LYRICFORGE_LEXICON_PATH", cfg.LexiconPath)
	cfg.DefaultMood = getenvString("LYRICFORGE_DEFAULT_MOOD", cfg.DefaultMood)
	cfg.DefaultMotif = getenvString("LYRICFORGE_DEFAULT_MOTIF", cfg.DefaultMotif)
	cfg.Workers = getenvInt("LYRICFORGE_WORKERS", cfg.Workers)
	cfg.LiveDebounce = getenvString("LYRICFORGE_LIVE_DEBOUNCE", cfg.LiveDebounce)
	cfg.HistoryDays = getenvInt("LYRICFORGE_HISTORY_DAYS", cfg.HistoryDays)
}

func validate(cfg *Config) error {
	cfg.DefaultMood = strings.ToUpper(strings.TrimSpace(cfg.DefaultMood))
	cfg.DefaultMotif = strings.ToUpper(strings.TrimSpace(cfg.DefaultMotif))
	switch cfg.DefaultMood {
	case "", "NEGATIVE", "POSITIVE":
	default:
		return fmt.Errorf("default_mood must be NEGATIVE or POSITIVE, got %q", cfg.DefaultMood)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	if cfg.HistoryDays < 0 {
		return fmt.Errorf("history_days must not be negative, got %d", cfg.HistoryDays)
	}
	if cfg.LiveDebounce != "" {
		if _, err := time.ParseDuration(cfg.LiveDebounce); err != nil {
			return fmt.Errorf("live_debounce: %w", err)
		}
	}
	return nil
}

func getenvString(name, fallback string) string {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	return raw
}

func getenvInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
