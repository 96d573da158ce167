// Package query derives the home and archive views from a state snapshot.
// Every function is pure: the same inputs give the same output and nothing
// is modified.
package query

import (
	"fmt"
	"sort"

	"github.com/sadopc/modus/internal/model"
)

// Snapshot is the input every view is computed from.
type Snapshot struct {
	Tasks        []model.Task
	Modes        []model.Mode
	ActiveModeID string
	Today        string
}

func (s Snapshot) Visible() []model.Task {
	return VisibleTasks(s.Tasks, s.ActiveModeID, s.Today)
}

func (s Snapshot) ArchiveDates() []string {
	return ArchiveDates(s.Tasks, s.Today)
}

func (s Snapshot) Archive() []DayGroup {
	return Archive(s.Tasks, s.Today)
}

func (s Snapshot) ActiveModeName() string {
	return ModeName(s.Modes, s.ActiveModeID)
}

// VisibleTasks returns the tasks of the active mode scheduled for today, in
// insertion order.
func VisibleTasks(tasks []model.Task, activeModeID, today string) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if t.ModeID == activeModeID && t.Date == today {
			out = append(out, t)
		}
	}
	return out
}

// ArchiveDates returns the distinct task dates strictly before today, most
// recent first. Tasks without a valid date belong to no day.
func ArchiveDates(tasks []model.Task, today string) []string {
	seen := make(map[string]bool)
	var dates []string
	for _, t := range tasks {
		if t.Date >= today || seen[t.Date] || !model.ValidDate(t.Date) {
			continue
		}
		seen[t.Date] = true
		dates = append(dates, t.Date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates
}

// TasksForDate returns every task on date, of any mode, in insertion order.
func TasksForDate(tasks []model.Task, date string) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if t.Date == date {
			out = append(out, t)
		}
	}
	return out
}

// DayGroup is one day of the archive.
type DayGroup struct {
	Date      string
	Tasks     []model.Task
	Completed int
}

func (g DayGroup) Total() int { return len(g.Tasks) }

// Ratio is the completed share of the day, 0 for an empty day.
func (g DayGroup) Ratio() float64 {
	if len(g.Tasks) == 0 {
		return 0
	}
	return float64(g.Completed) / float64(len(g.Tasks))
}

// FullyComplete reports whether the day has tasks and all are completed.
func (g DayGroup) FullyComplete() bool {
	return len(g.Tasks) > 0 && g.Completed == len(g.Tasks)
}

// Label renders the completion badge, e.g. "1/2".
func (g DayGroup) Label() string {
	return fmt.Sprintf("%d/%d", g.Completed, len(g.Tasks))
}

// GroupForDate builds the archive group for one date.
func GroupForDate(tasks []model.Task, date string) DayGroup {
	g := DayGroup{Date: date, Tasks: TasksForDate(tasks, date)}
	for _, t := range g.Tasks {
		if t.Completed {
			g.Completed++
		}
	}
	return g
}

// Archive builds a group per archive date, most recent first.
func Archive(tasks []model.Task, today string) []DayGroup {
	dates := ArchiveDates(tasks, today)
	groups := make([]DayGroup, 0, len(dates))
	for _, d := range dates {
		groups = append(groups, GroupForDate(tasks, d))
	}
	return groups
}

// ModeName returns the name of the mode with the given id, or "" when no
// such mode exists.
func ModeName(modes []model.Mode, id string) string {
	for _, m := range modes {
		if m.ID == id {
			return m.Name
		}
	}
	return ""
}
