package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/modus/internal/model"
	"github.com/sadopc/modus/internal/query"
	"github.com/sadopc/modus/internal/state"
)

type homeModel struct {
	store  *state.Store
	width  int
	height int

	cursor int

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formTitle *string
	formDate  *string
	formMode  *string
}

func newHomeModel(s *state.Store) homeModel {
	title, date, mode := "", "", ""
	return homeModel{
		store:     s,
		formTitle: &title,
		formDate:  &date,
		formMode:  &mode,
	}
}

func (h *homeModel) setSize(w, ht int) {
	h.width = w
	h.height = ht
}

func (h homeModel) visible() []model.Task {
	return h.store.Snapshot().Visible()
}

func (h *homeModel) clampCursor() {
	h.cursor = clamp(h.cursor, 0, len(h.visible())-1)
}

func (h homeModel) update(msg tea.Msg) (homeModel, tea.Cmd) {
	if h.formActive && h.form != nil {
		return h.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tickMsg:
		h.clampCursor()
		return h, nil

	case tea.KeyMsg:
		return h.updateList(msg)
	}
	return h, nil
}

func (h homeModel) updateList(msg tea.KeyMsg) (homeModel, tea.Cmd) {
	tasks := h.visible()
	// The list can shrink between ticks when the date rolls over.
	h.cursor = clamp(h.cursor, 0, len(tasks)-1)

	switch {
	case key.Matches(msg, keys.Up):
		if h.cursor > 0 {
			h.cursor--
		}
	case key.Matches(msg, keys.Down):
		if h.cursor < len(tasks)-1 {
			h.cursor++
		}
	case key.Matches(msg, keys.Toggle):
		if len(tasks) == 0 {
			return h, nil
		}
		t := tasks[h.cursor]
		if !h.store.ToggleComplete(t.ID) {
			return h, nil
		}
		if t.Completed {
			return h, statusCmd("Reopened: "+t.Title, false)
		}
		return h, statusCmd("Done: "+t.Title, false)
	case key.Matches(msg, keys.Postpone):
		if len(tasks) == 0 {
			return h, nil
		}
		t := tasks[h.cursor]
		if !h.store.PostponeTask(t.ID) {
			return h, nil
		}
		h.clampCursor()
		return h, statusCmd("Moved to tomorrow: "+t.Title, false)
	case key.Matches(msg, keys.New):
		return h.showAddForm()
	case key.Matches(msg, keys.Left):
		if h.store.CycleMode(-1) {
			h.cursor = 0
		}
	case key.Matches(msg, keys.Right):
		if h.store.CycleMode(1) {
			h.cursor = 0
		}
	default:
		for i, b := range modeKeys {
			if !key.Matches(msg, b) {
				continue
			}
			modes := h.store.Modes()
			if i < len(modes) && h.store.SetActiveMode(modes[i].ID) {
				h.cursor = 0
			}
			break
		}
	}
	return h, nil
}

var (
	errTitleRequired = errors.New("title is required")
	errDateFormat    = errors.New("use YYYY-MM-DD")
)

func validateTitle(s string) error {
	if strings.TrimSpace(s) == "" {
		return errTitleRequired
	}
	return nil
}

func validateDate(s string) error {
	if !model.ValidDate(strings.TrimSpace(s)) {
		return errDateFormat
	}
	return nil
}

func (h homeModel) showAddForm() (homeModel, tea.Cmd) {
	*h.formTitle = ""
	*h.formDate = h.store.Today()
	*h.formMode = h.store.ActiveModeID()

	modes := h.store.Modes()
	modeOptions := make([]huh.Option[string], len(modes))
	for i, m := range modes {
		modeOptions[i] = huh.NewOption(m.IconName.Glyph()+" "+m.Name, m.ID)
	}

	h.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task").Placeholder("What needs doing?").Value(h.formTitle).Validate(validateTitle),
			huh.NewInput().Title("Date").Placeholder("YYYY-MM-DD").Value(h.formDate).Validate(validateDate),
			huh.NewSelect[string]().Title("Mode").Options(modeOptions...).Value(h.formMode),
		),
	).WithShowHelp(true).WithShowErrors(true)

	h.formActive = true
	return h, h.form.Init()
}

func (h homeModel) updateForm(msg tea.Msg) (homeModel, tea.Cmd) {
	// Escape discards the draft
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			h.formActive = false
			h.form = nil
			return h, nil
		}
	}

	form, cmd := h.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		h.form = f
	}

	if h.form.State == huh.StateCompleted {
		h.formActive = false
		h.form = nil
		return h, h.submit()
	}

	return h, cmd
}

func (h homeModel) submit() tea.Cmd {
	date := strings.TrimSpace(*h.formDate)
	if !h.store.AddTask(*h.formTitle, date, *h.formMode) {
		return statusCmd("Task not added", true)
	}
	modeName := query.ModeName(h.store.Modes(), *h.formMode)
	when := query.FormatDisplayDate(date, h.store.Today())
	return statusCmd(fmt.Sprintf("Added to %s for %s", modeName, when), false)
}

func (h homeModel) view() string {
	if h.width < 20 {
		return "Terminal too small"
	}
	w := h.width - 4

	if h.formActive && h.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("New Task"), "", h.form.View())
		return activePanelStyle.Width(w).Render(content)
	}

	snap := h.store.Snapshot()
	return lipgloss.JoinVertical(lipgloss.Left,
		h.renderModeSelector(snap),
		h.renderTaskPanel(snap, w),
	)
}

func (h homeModel) renderModeSelector(snap query.Snapshot) string {
	var tabs []string
	for i, m := range snap.Modes {
		label := fmt.Sprintf("%d %s %s", i+1, m.IconName.Glyph(), m.Name)
		if m.ID == snap.ActiveModeID {
			c := modeColor(m.Color)
			tabs = append(tabs, activeTabStyle.Foreground(c).BorderForeground(c).Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
}

func (h homeModel) renderTaskPanel(snap query.Snapshot, w int) string {
	tasks := snap.Visible()

	dateLabel := snap.Today
	if t, err := model.ParseDate(snap.Today); err == nil {
		dateLabel = t.Format("Monday, January 2")
	}
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	header := fmt.Sprintf("%s  %s", titleStyle.Render("Today"), subtitleStyle.Render(dateLabel))
	if len(tasks) > 0 {
		header += "  " + highlightStyle.Render(fmt.Sprintf("%d/%d done", done, len(tasks)))
	}

	if len(tasks) == 0 {
		name := snap.ActiveModeName()
		content := lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			mutedStyle.Render(fmt.Sprintf("Nothing planned in %s today. Press n to add a task.", name)),
		)
		return panelStyle.Width(w).Render(content)
	}

	rows := []string{header, ""}
	for i, t := range tasks {
		cursor := "  "
		style := normalItemStyle
		if i == h.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		check := "[ ]"
		title := style.Render(t.Title)
		if t.Completed {
			check = successStyle.Render("[x]")
			title = doneTaskStyle.Render(t.Title)
		}
		row := fmt.Sprintf("%s%s %s", style.Render(cursor), check, title)
		if t.PostponedFrom != nil {
			row += mutedStyle.Render("  ↻ from " + query.FormatDisplayDate(*t.PostponedFrom, snap.Today))
		}
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: done  p: tomorrow  n: new  ←/→: mode"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
