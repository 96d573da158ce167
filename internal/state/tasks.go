package state

import (
	"strings"

	"github.com/sadopc/modus/internal/model"
)

// AddTask appends a new open task. Blank titles and invalid dates are
// rejected. An empty modeID means the active mode.
func (s *Store) AddTask(title, date, modeID string) bool {
	title = strings.TrimSpace(title)
	if title == "" {
		s.log.Debug("add task rejected: empty title")
		return false
	}
	if !model.ValidDate(date) {
		s.log.Debug("add task rejected: invalid date", "date", date)
		return false
	}
	if modeID == "" {
		modeID = s.activeModeID
	}

	s.tasks = append(s.tasks, model.Task{
		ID:     s.cfg.NewID(),
		Title:  title,
		Date:   date,
		ModeID: modeID,
	})
	s.saveTasks()
	return true
}

// ToggleComplete flips the completed flag of the task.
func (s *Store) ToggleComplete(taskID string) bool {
	i := s.taskIndex(taskID)
	if i < 0 {
		s.log.Debug("toggle ignored: unknown task", "id", taskID)
		return false
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	s.saveTasks()
	return true
}

// PostponeTask moves the task to tomorrow (relative to the clock, not to
// the task's date) and records the date it had before. Only that one
// previous date is kept.
func (s *Store) PostponeTask(taskID string) bool {
	i := s.taskIndex(taskID)
	if i < 0 {
		s.log.Debug("postpone ignored: unknown task", "id", taskID)
		return false
	}
	prev := s.tasks[i].Date
	s.tasks[i].Date = model.DateOf(s.cfg.Now().AddDate(0, 0, 1))
	s.tasks[i].PostponedFrom = &prev
	s.saveTasks()
	return true
}
