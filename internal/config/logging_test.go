package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStateConfig(t *testing.T) {
	cfg := Default()
	cfg.Storage.TasksKey = "t"
	cfg.Modes.Max = 3

	sc := cfg.StateConfig(nil)
	if sc.Keys.Tasks != "t" || sc.Keys.Modes != "modus_modes" || sc.Keys.FirstLaunch != "modus_first_launch" {
		t.Fatalf("unexpected keys: %+v", sc.Keys)
	}
	if sc.MaxModes != 3 {
		t.Fatalf("expected max 3, got %d", sc.MaxModes)
	}
	if len(sc.Seed) != 2 || sc.Seed[0].ID != "mode-1" {
		t.Fatalf("unexpected seed: %+v", sc.Seed)
	}
}

func TestOpenLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "modus.log")
	logger, closer, err := Log{Path: path, Level: "debug"}.OpenLogger()
	if err != nil {
		t.Fatalf("OpenLogger: %v", err)
	}
	logger.Debug("hello", "key", "value")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "hello") || !strings.Contains(string(data), "key=value") {
		t.Fatalf("log file missing entry: %q", data)
	}
}

func TestOpenLoggerRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "modus.log")
	logger, closer, err := Log{Path: path, Level: "warn"}.OpenLogger()
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("quiet")
	closer.Close()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "quiet") {
		t.Fatalf("info line written at warn level: %q", data)
	}
}

func TestOpenLoggerBadLevel(t *testing.T) {
	_, _, err := Log{Path: filepath.Join(t.TempDir(), "x.log"), Level: "loud"}.OpenLogger()
	if err == nil {
		t.Fatal("expected error for unknown level")
	}
}
