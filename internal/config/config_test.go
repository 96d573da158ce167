package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sadopc/modus/internal/model"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Storage.TasksKey != "modus_tasks" || cfg.Storage.ModesKey != "modus_modes" || cfg.Storage.FirstLaunchKey != "modus_first_launch" {
		t.Fatalf("unexpected storage defaults: %+v", cfg.Storage)
	}
	if cfg.Modes.Max != 4 {
		t.Fatalf("expected max 4 modes, got %d", cfg.Modes.Max)
	}

	seed := cfg.SeedModes()
	if len(seed) != 2 {
		t.Fatalf("expected 2 seed modes, got %d", len(seed))
	}
	if seed[0].Name != "Dev" || seed[0].IconName != model.IconCode {
		t.Fatalf("unexpected first seed: %+v", seed[0])
	}
	if seed[1].Name != "School" || seed[1].IconName != model.IconBookOpen {
		t.Fatalf("unexpected second seed: %+v", seed[1])
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Modes.Max != DefaultMaxModes || cfg.Log.Level != DefaultLogLevel {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[storage]
path = "/tmp/custom.db"
tasks-key = "t"

[log]
level = "debug"

[modes]
max = 3

[[modes.seed]]
name = "Fitness"
icon = "Dumbbell"
color = "green"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Storage.Path != "/tmp/custom.db" || cfg.Storage.TasksKey != "t" {
		t.Fatalf("unexpected storage: %+v", cfg.Storage)
	}
	// Unset keys keep their defaults.
	if cfg.Storage.ModesKey != DefaultModesKey {
		t.Fatalf("expected default modes key, got %q", cfg.Storage.ModesKey)
	}
	if cfg.Log.Level != "debug" || cfg.Modes.Max != 3 {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}

	seed := cfg.SeedModes()
	if len(seed) != 1 || seed[0].ID != "mode-1" || seed[0].IconName != model.IconDumbbell {
		t.Fatalf("unexpected seed: %+v", seed)
	}
}

func TestLoadUnknownSeedIcon(t *testing.T) {
	path := writeConfig(t, `
[[modes.seed]]
id = "x"
name = "Misc"
icon = "Rocket"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := cfg.SeedModes()[0].IconName; got != model.IconStar {
		t.Fatalf("expected Star fallback, got %s", got)
	}
}

func TestLoadParseError(t *testing.T) {
	path := writeConfig(t, "[storage\npath = ")
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "parse config file") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("MODUS_DB", "state/modus.db")
	t.Setenv("MODUS_LOG_FILE", "state/modus.log")
	t.Setenv("MODUS_LOG_LEVEL", "DEBUG")
	t.Setenv("MODUS_MAX_MODES", "3")

	cfg := FromEnv(Default())
	if cfg.Storage.Path != "state/modus.db" || cfg.Log.Path != "state/modus.log" {
		t.Fatalf("unexpected paths: %+v", cfg)
	}
	if cfg.Log.Level != "debug" || cfg.Modes.Max != 3 {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
}

func TestLoadCapsMaxModes(t *testing.T) {
	path := writeConfig(t, `
[modes]
max = 9

[[modes.seed]]
name = "One"
[[modes.seed]]
name = "Two"
[[modes.seed]]
name = "Three"
[[modes.seed]]
name = "Four"
[[modes.seed]]
name = "Five"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Modes.Max != DefaultMaxModes {
		t.Fatalf("max = %d, want %d", cfg.Modes.Max, DefaultMaxModes)
	}
	seed := cfg.SeedModes()
	if len(seed) != DefaultMaxModes || seed[3].Name != "Four" {
		t.Fatalf("seed should stop at the cap, got %+v", seed)
	}

	t.Setenv("MODUS_MAX_MODES", "6")
	cfg, err = Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Modes.Max != DefaultMaxModes {
		t.Fatalf("env max = %d, want %d", cfg.Modes.Max, DefaultMaxModes)
	}
}

func TestFromEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("MODUS_MAX_MODES", "lots")
	cfg := FromEnv(Default())
	if cfg.Modes.Max != DefaultMaxModes {
		t.Fatalf("expected default max, got %d", cfg.Modes.Max)
	}
}
