package state

import (
	"strings"

	"github.com/sadopc/modus/internal/model"
)

// AddMode appends a mode unless the cap is reached. A blank name becomes
// "New Mode"; an unknown icon becomes the default icon.
func (s *Store) AddMode(name, iconName string) bool {
	if !s.CanAddMode() {
		s.log.Debug("add mode rejected: cap reached", "max", s.cfg.MaxModes)
		return false
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = newModeName
	}
	s.modes = append(s.modes, model.Mode{
		ID:       s.cfg.NewID(),
		Name:     name,
		IconName: model.NormalizeIcon(iconName),
		Color:    newModeColor,
	})
	s.saveModes()
	return true
}

// UpdateMode merges patch into the mode with the given id.
func (s *Store) UpdateMode(id string, patch model.ModePatch) bool {
	i := s.modeIndex(id)
	if i < 0 {
		s.log.Debug("update ignored: unknown mode", "id", id)
		return false
	}
	s.modes[i] = s.modes[i].Apply(patch)
	s.saveModes()
	return true
}

// DeleteMode removes a mode. The last mode is never removed, and neither
// is a mode that still owns tasks dated today or later, since those would
// drop out of every view. If the active mode is removed, the first
// remaining mode becomes active.
func (s *Store) DeleteMode(id string) bool {
	if len(s.modes) <= 1 {
		s.log.Debug("delete rejected: last mode", "id", id)
		return false
	}
	i := s.modeIndex(id)
	if i < 0 {
		s.log.Debug("delete ignored: unknown mode", "id", id)
		return false
	}
	if n := s.upcomingTaskCount(id); n > 0 {
		s.log.Debug("delete rejected: mode has upcoming tasks", "id", id, "tasks", n)
		return false
	}

	s.modes = append(s.modes[:i:i], s.modes[i+1:]...)
	if s.activeModeID == id {
		s.activeModeID = s.modes[0].ID
	}
	s.saveModes()
	return true
}

// UpcomingTaskCount reports how many tasks of the mode are dated today or
// later. Such a mode cannot be deleted.
func (s *Store) UpcomingTaskCount(modeID string) int {
	return s.upcomingTaskCount(modeID)
}

func (s *Store) upcomingTaskCount(modeID string) int {
	today := s.Today()
	n := 0
	for _, t := range s.tasks {
		if t.ModeID == modeID && t.Date >= today && model.ValidDate(t.Date) {
			n++
		}
	}
	return n
}

// SetActiveMode selects the mode for the home view. Unknown ids are
// ignored so the selector never dangles. The selection is not persisted.
func (s *Store) SetActiveMode(id string) bool {
	if s.modeIndex(id) < 0 {
		s.log.Debug("select ignored: unknown mode", "id", id)
		return false
	}
	s.activeModeID = id
	return true
}

// CycleMode moves the active selection by delta positions, wrapping.
func (s *Store) CycleMode(delta int) bool {
	if len(s.modes) < 2 {
		return false
	}
	i := s.modeIndex(s.activeModeID)
	if i < 0 {
		i = 0
	}
	n := len(s.modes)
	next := ((i+delta)%n + n) % n
	return s.SetActiveMode(s.modes[next].ID)
}
