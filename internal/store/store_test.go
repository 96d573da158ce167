package store

import (
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Should have run migration v1
	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "modus.db")
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save("k", []byte(`"v"`)); err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopening keeps the data and skips migration.
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	v, ok, err := s2.Load("k")
	if err != nil || !ok || string(v) != `"v"` {
		t.Fatalf("expected persisted value, got %q ok=%v err=%v", v, ok, err)
	}
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
	if filepath.Base(path) != "modus.db" {
		t.Fatalf("unexpected db file name: %s", path)
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	// Running migrate again should be a no-op
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

func TestClosedStore(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	if _, _, err := s.Load("k"); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed from Load, got %v", err)
	}
	if err := s.Save("k", nil); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed from Save, got %v", err)
	}
	if _, err := s.FirstLaunch("k"); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed from FirstLaunch, got %v", err)
	}
	if err := s.Close(); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed from second Close, got %v", err)
	}
}

// ============================================================
// Key/value
// ============================================================

func TestLoadMissingKey(t *testing.T) {
	s := newTestStore(t)
	v, ok, err := s.Load("modus_tasks")
	if err != nil {
		t.Fatal(err)
	}
	if ok || v != nil {
		t.Fatalf("expected absent key, got %q", v)
	}
}

func TestSaveAndLoad(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save("modus_tasks", []byte(`[]`)); err != nil {
		t.Fatal(err)
	}
	v, ok, err := s.Load("modus_tasks")
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if string(v) != `[]` {
		t.Fatalf("expected [], got %s", v)
	}
}

func TestSaveOverwrites(t *testing.T) {
	s := newTestStore(t)
	s.Save("modus_modes", []byte(`[1]`))
	s.Save("modus_modes", []byte(`[1,2]`))

	v, _, _ := s.Load("modus_modes")
	if string(v) != `[1,2]` {
		t.Fatalf("expected overwrite, got %s", v)
	}
	keys, err := s.Keys()
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 1 {
		t.Fatalf("expected 1 key, got %v", keys)
	}
}

func TestKeysSorted(t *testing.T) {
	s := newTestStore(t)
	s.Save("b", []byte(`1`))
	s.Save("a", []byte(`1`))

	keys, err := s.Keys()
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("expected [a b], got %v", keys)
	}
}

func TestKeysEmpty(t *testing.T) {
	s := newTestStore(t)
	keys, err := s.Keys()
	if err != nil {
		t.Fatal(err)
	}
	if keys != nil {
		t.Fatalf("expected nil slice, got %v", keys)
	}
}

// ============================================================
// First launch
// ============================================================

func TestFirstLaunchOnce(t *testing.T) {
	s := newTestStore(t)

	first, err := s.FirstLaunch("modus_first_launch")
	if err != nil {
		t.Fatal(err)
	}
	if !first {
		t.Fatal("first call should report first launch")
	}
	for i := 0; i < 3; i++ {
		again, err := s.FirstLaunch("modus_first_launch")
		if err != nil {
			t.Fatal(err)
		}
		if again {
			t.Fatal("later calls must not report first launch")
		}
	}

	v, ok, _ := s.Load("modus_first_launch")
	if !ok || string(v) != "true" {
		t.Fatalf("expected marker to be stored, got %q", v)
	}
}

func TestFirstLaunchSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "modus.db")
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if first, _ := s.FirstLaunch("fl"); !first {
		t.Fatal("expected first launch")
	}
	s.Close()

	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	if first, _ := s2.FirstLaunch("fl"); first {
		t.Fatal("marker should persist across reopen")
	}
}

// ============================================================
// Memory gateway
// ============================================================

func TestMemoryGatewayContract(t *testing.T) {
	m := NewMemoryGateway()

	if _, ok, err := m.Load("k"); ok || err != nil {
		t.Fatalf("expected absent key, ok=%v err=%v", ok, err)
	}

	buf := []byte(`[1]`)
	m.Save("k", buf)
	buf[1] = '9' // caller mutation must not leak into the gateway

	v, ok, _ := m.Load("k")
	if !ok || string(v) != `[1]` {
		t.Fatalf("expected stored copy, got %s", v)
	}
	if m.Saves != 1 {
		t.Fatalf("expected 1 save, got %d", m.Saves)
	}

	if first, _ := m.FirstLaunch("fl"); !first {
		t.Fatal("expected first launch")
	}
	if first, _ := m.FirstLaunch("fl"); first {
		t.Fatal("expected marker set")
	}

	keys, _ := m.Keys()
	if len(keys) != 2 || keys[0] != "fl" || keys[1] != "k" {
		t.Fatalf("unexpected keys: %v", keys)
	}
}
