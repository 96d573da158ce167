// Package config loads modus.toml settings and environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sadopc/modus/internal/model"
)

// Config represents the config.toml file.
type Config struct {
	Storage Storage `toml:"storage"`
	Log     Log     `toml:"log"`
	Modes   Modes   `toml:"modes"`
}

// Storage contains the database location and the keys blobs are stored
// under.
type Storage struct {
	// Path is the SQLite database file. Empty means the default location.
	Path string `toml:"path"`

	TasksKey       string `toml:"tasks-key"`
	ModesKey       string `toml:"modes-key"`
	FirstLaunchKey string `toml:"first-launch-key"`
}

// Log contains logging configuration.
type Log struct {
	// Path is the log file. The TUI owns the terminal, so logs never go to
	// stderr while it runs.
	Path  string `toml:"path"`
	Level string `toml:"level"`
}

// Modes contains mode limits and the first-run seed.
type Modes struct {
	Max  int        `toml:"max"`
	Seed []SeedMode `toml:"seed"`
}

// SeedMode is one mode created when no mode collection is stored yet.
type SeedMode struct {
	ID    string `toml:"id"`
	Name  string `toml:"name"`
	Icon  string `toml:"icon"`
	Color string `toml:"color"`
}

const (
	DefaultTasksKey       = "modus_tasks"
	DefaultModesKey       = "modus_modes"
	DefaultFirstLaunchKey = "modus_first_launch"
	DefaultMaxModes       = 4
	DefaultLogLevel       = "info"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Storage: Storage{
			TasksKey:       DefaultTasksKey,
			ModesKey:       DefaultModesKey,
			FirstLaunchKey: DefaultFirstLaunchKey,
		},
		Log: Log{Level: DefaultLogLevel},
		Modes: Modes{
			Max: DefaultMaxModes,
			Seed: []SeedMode{
				{ID: "mode-1", Name: "Dev", Icon: string(model.IconCode), Color: "blue"},
				{ID: "mode-2", Name: "School", Icon: string(model.IconBookOpen), Color: "orange"},
			},
		},
	}
}

// Load reads the config file at path over the defaults, then applies
// environment overrides. An empty path means the default location; a
// missing file is not an error.
func Load(path string) (Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	cfg := Default()
	// A file-provided seed replaces the default one wholesale.
	cfg.Modes.Seed = nil
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return Config{}, fmt.Errorf("read config file %s: %w", path, err)
	default:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg = FromEnv(cfg)
	cfg.fillDefaults()
	return cfg, nil
}

// FromEnv applies MODUS_* environment overrides to base.
func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvString("MODUS_DB"); ok {
		cfg.Storage.Path = v
	}
	if v, ok := getEnvString("MODUS_LOG_FILE"); ok {
		cfg.Log.Path = v
	}
	if v, ok := getEnvString("MODUS_LOG_LEVEL"); ok {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v, ok := getEnvInt("MODUS_MAX_MODES"); ok && v > 0 {
		cfg.Modes.Max = v
	}
	return cfg
}

func (c *Config) fillDefaults() {
	def := Default()
	if strings.TrimSpace(c.Storage.TasksKey) == "" {
		c.Storage.TasksKey = def.Storage.TasksKey
	}
	if strings.TrimSpace(c.Storage.ModesKey) == "" {
		c.Storage.ModesKey = def.Storage.ModesKey
	}
	if strings.TrimSpace(c.Storage.FirstLaunchKey) == "" {
		c.Storage.FirstLaunchKey = def.Storage.FirstLaunchKey
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	// The cap can be lowered but never raised past the 1-4 mode keys.
	if c.Modes.Max <= 0 || c.Modes.Max > DefaultMaxModes {
		c.Modes.Max = def.Modes.Max
	}
	if len(c.Modes.Seed) == 0 {
		c.Modes.Seed = def.Modes.Seed
	}
}

// SeedModes converts the configured seed into domain modes. Entries
// without an id get a positional one; entries past the mode cap are ignored.
func (c Config) SeedModes() []model.Mode {
	seed := c.Modes.Seed
	if c.Modes.Max > 0 && len(seed) > c.Modes.Max {
		seed = seed[:c.Modes.Max]
	}
	modes := make([]model.Mode, 0, len(seed))
	for i, s := range seed {
		id := strings.TrimSpace(s.ID)
		if id == "" {
			id = "mode-" + strconv.Itoa(i+1)
		}
		modes = append(modes, model.Mode{
			ID:       id,
			Name:     s.Name,
			IconName: model.NormalizeIcon(s.Icon),
			Color:    s.Color,
		})
	}
	return modes
}

// DefaultPath returns ~/.config/modus/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get config directory: %w", err)
	}
	return filepath.Join(dir, "modus", "config.toml"), nil
}

// DefaultLogPath returns the log file location under the user cache dir.
func DefaultLogPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("get cache directory: %w", err)
	}
	return filepath.Join(dir, "modus", "modus.log"), nil
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvInt(name string) (int, bool) {
	raw, ok := getEnvString(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
