package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyTitle  = errors.New("model: task title is required")
	ErrInvalidDate = errors.New("model: invalid calendar date")
	ErrInvalidIcon = errors.New("model: unknown icon")
)

// Mode is a task context such as Work or School.
type Mode struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	IconName IconName `json:"iconName"`
	Color    string   `json:"color"`
}

// ModePatch carries the fields to change on a Mode. Nil fields are left
// untouched.
type ModePatch struct {
	Name     *string
	IconName *IconName
	Color    *string
}

// Apply returns a copy of m with every non-nil patch field merged in.
func (m Mode) Apply(p ModePatch) Mode {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.IconName != nil {
		m.IconName = NormalizeIcon(string(*p.IconName))
	}
	if p.Color != nil {
		m.Color = *p.Color
	}
	return m
}

func (m Mode) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return errors.New("model: mode id is required")
	}
	if !m.IconName.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidIcon, m.IconName)
	}
	return nil
}

// Task is a unit of work scheduled for one day in one mode.
type Task struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Date          string  `json:"date"`
	ModeID        string  `json:"modeId"`
	Completed     bool    `json:"completed"`
	PostponedFrom *string `json:"postponedFrom,omitempty"`
}

// Postponed reports whether the task has been moved forward at least once.
func (t Task) Postponed() bool {
	return t.PostponedFrom != nil && *t.PostponedFrom != ""
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if !ValidDate(t.Date) {
		return fmt.Errorf("%w: %q", ErrInvalidDate, t.Date)
	}
	if t.PostponedFrom != nil && !ValidDate(*t.PostponedFrom) {
		return fmt.Errorf("%w: postponed from %q", ErrInvalidDate, *t.PostponedFrom)
	}
	return nil
}
