// Package state owns the task and mode collections and the active-mode
// selection. Every mutation is synchronous and is followed by a write of the
// full affected collection through the Gateway.
//
// Mutations never fail loudly: rejected input and unknown ids are no-ops
// that report false.
package state

import (
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/sadopc/modus/internal/model"
	"github.com/sadopc/modus/internal/query"
)

// Gateway is the key/value persistence the store writes through.
type Gateway interface {
	Load(key string) ([]byte, bool, error)
	Save(key string, value []byte) error
	// FirstLaunch reports true exactly once per storage lifetime.
	FirstLaunch(key string) (bool, error)
}

// Keys names the blobs the store reads and writes.
type Keys struct {
	Tasks       string
	Modes       string
	FirstLaunch string
}

// View is the screen the presentation layer shows.
type View string

const (
	ViewHome     View = "home"
	ViewArchive  View = "archive"
	ViewSettings View = "settings"
)

const (
	DefaultMaxModes = 4
	newModeName     = "New Mode"
	newModeColor    = "brand"
)

// Config carries the process-wide constants the store needs. Zero fields
// get defaults.
type Config struct {
	Keys     Keys
	Seed     []model.Mode
	MaxModes int

	Now    func() time.Time
	NewID  func() string
	Logger *log.Logger
}

func (c *Config) fillDefaults() {
	if c.Keys.Tasks == "" {
		c.Keys.Tasks = "modus_tasks"
	}
	if c.Keys.Modes == "" {
		c.Keys.Modes = "modus_modes"
	}
	if c.Keys.FirstLaunch == "" {
		c.Keys.FirstLaunch = "modus_first_launch"
	}
	if len(c.Seed) == 0 {
		c.Seed = []model.Mode{
			{ID: "mode-1", Name: "Dev", IconName: model.IconCode, Color: "blue"},
			{ID: "mode-2", Name: "School", IconName: model.IconBookOpen, Color: "orange"},
		}
	}
	if c.MaxModes <= 0 || c.MaxModes > DefaultMaxModes {
		c.MaxModes = DefaultMaxModes
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.NewID == nil {
		c.NewID = uuid.NewString
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard)
	}
}

// Store is the single source of truth for tasks, modes and the active
// mode. It is not safe for concurrent use; the UI loop owns it.
type Store struct {
	gw  Gateway
	cfg Config
	log *log.Logger

	tasks        []model.Task
	modes        []model.Mode
	activeModeID string
	view         View
}

// loadResult says how a collection was read.
type loadResult int

// A failed load leaves storage untouched; absent and corrupt collections
// are (re)created from defaults.
const (
	loaded loadResult = iota
	absent
	corrupt
	failed
)

// Open loads both collections from gw and selects the first mode. Storage is
// written only when a collection has to be created or repaired: a missing or
// corrupt mode list gets the seed, and an empty task list is stored on the
// first launch.
func Open(gw Gateway, cfg Config) *Store {
	cfg.fillDefaults()
	s := &Store{
		gw:   gw,
		cfg:  cfg,
		log:  cfg.Logger,
		view: ViewHome,
	}
	var tasksRes, modesRes loadResult
	s.tasks, tasksRes = s.loadTasks()
	s.modes, modesRes = s.loadModes()
	s.activeModeID = s.modes[0].ID

	if modesRes == absent || modesRes == corrupt {
		s.saveModes()
	}
	if tasksRes != failed && len(s.tasks) == 0 && s.firstLaunch() {
		s.saveTasks()
	}
	return s
}

// loadTasks keeps every decoded task, including ones with a missing or
// malformed date; the views skip those but they are never dropped.
func (s *Store) loadTasks() ([]model.Task, loadResult) {
	data, ok, err := s.gw.Load(s.cfg.Keys.Tasks)
	if err != nil {
		s.log.Warn("load tasks failed, starting empty", "key", s.cfg.Keys.Tasks, "err", err)
		return nil, failed
	}
	if !ok {
		return nil, absent
	}
	var stored []model.Task
	if err := json.Unmarshal(data, &stored); err != nil {
		s.log.Warn("corrupt task blob, starting empty", "key", s.cfg.Keys.Tasks, "err", err)
		return nil, corrupt
	}
	for _, t := range stored {
		if err := t.Validate(); err != nil {
			s.log.Warn("stored task is invalid, keeping it out of the views", "id", t.ID, "err", err)
		}
	}
	return stored, loaded
}

func (s *Store) loadModes() ([]model.Mode, loadResult) {
	seed := func() []model.Mode {
		return append([]model.Mode(nil), s.cfg.Seed...)
	}

	data, ok, err := s.gw.Load(s.cfg.Keys.Modes)
	if err != nil {
		s.log.Warn("load modes failed, using seed", "key", s.cfg.Keys.Modes, "err", err)
		return seed(), failed
	}
	if !ok {
		return seed(), absent
	}
	var stored []model.Mode
	if err := json.Unmarshal(data, &stored); err != nil {
		s.log.Warn("corrupt mode blob, using seed", "key", s.cfg.Keys.Modes, "err", err)
		return seed(), corrupt
	}
	modes := make([]model.Mode, 0, len(stored))
	for _, m := range stored {
		if strings.TrimSpace(m.ID) == "" {
			s.log.Warn("dropping stored mode without id", "name", m.Name)
			continue
		}
		m.IconName = model.NormalizeIcon(string(m.IconName))
		modes = append(modes, m)
	}
	if len(modes) == 0 {
		s.log.Warn("stored mode list empty, using seed", "key", s.cfg.Keys.Modes)
		return seed(), corrupt
	}
	return modes, loaded
}

func (s *Store) firstLaunch() bool {
	first, err := s.gw.FirstLaunch(s.cfg.Keys.FirstLaunch)
	if err != nil {
		s.log.Warn("first launch check failed", "err", err)
		return false
	}
	return first
}

func (s *Store) saveTasks() {
	s.save(s.cfg.Keys.Tasks, s.tasks)
}

func (s *Store) saveModes() {
	s.save(s.cfg.Keys.Modes, s.modes)
}

func (s *Store) save(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Error("encode failed", "key", key, "err", err)
		return
	}
	// A nil slice must still be stored as an empty collection.
	if string(data) == "null" {
		data = []byte("[]")
	}
	if err := s.gw.Save(key, data); err != nil {
		s.log.Error("save failed", "key", key, "err", err)
	}
}

// --- Read access ---

// Tasks returns a copy of every task in insertion order.
func (s *Store) Tasks() []model.Task {
	return append([]model.Task(nil), s.tasks...)
}

// Modes returns a copy of the modes in display order.
func (s *Store) Modes() []model.Mode {
	return append([]model.Mode(nil), s.modes...)
}

func (s *Store) ActiveModeID() string { return s.activeModeID }

func (s *Store) ActiveMode() (model.Mode, bool) {
	i := s.modeIndex(s.activeModeID)
	if i < 0 {
		return model.Mode{}, false
	}
	return s.modes[i], true
}

func (s *Store) View() View { return s.view }

func (s *Store) SetView(v View) {
	switch v {
	case ViewHome, ViewArchive, ViewSettings:
		s.view = v
	}
}

// MaxModes is the configured mode cap.
func (s *Store) MaxModes() int { return s.cfg.MaxModes }

// CanAddMode reports whether AddMode would succeed.
func (s *Store) CanAddMode() bool { return len(s.modes) < s.cfg.MaxModes }

// Now reads the store's clock.
func (s *Store) Now() time.Time { return s.cfg.Now() }

// Today is the current local calendar date. It is read from the clock on
// every call so a session left open past midnight rolls over.
func (s *Store) Today() string {
	return model.DateOf(s.Now())
}

// Snapshot captures the state for the view queries.
func (s *Store) Snapshot() query.Snapshot {
	return query.Snapshot{
		Tasks:        s.Tasks(),
		Modes:        s.Modes(),
		ActiveModeID: s.activeModeID,
		Today:        s.Today(),
	}
}

func (s *Store) taskIndex(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) modeIndex(id string) int {
	for i := range s.modes {
		if s.modes[i].ID == id {
			return i
		}
	}
	return -1
}
