package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/modus/internal/model"
	"github.com/sadopc/modus/internal/state"
)

type settingsModel struct {
	store  *state.Store
	width  int
	height int

	cursor int

	formActive bool
	form       *huh.Form
	editingID  string

	// Form values as pointers (survive value copies)
	formName  *string
	formIcon  *model.IconName
	formColor *string
}

func newSettingsModel(s *state.Store) settingsModel {
	name, icon, color := "", model.DefaultIcon, ""
	return settingsModel{
		store:     s,
		formName:  &name,
		formIcon:  &icon,
		formColor: &color,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		modes := s.store.Modes()
		s.cursor = clamp(s.cursor, 0, len(modes)-1)

		switch {
		case key.Matches(msg, keys.Up):
			if s.cursor > 0 {
				s.cursor--
			}
		case key.Matches(msg, keys.Down):
			if s.cursor < len(modes)-1 {
				s.cursor++
			}
		case key.Matches(msg, keys.New):
			if !s.store.AddMode("", "") {
				return s, statusCmd(fmt.Sprintf("You can have at most %d modes", s.store.MaxModes()), true)
			}
			modes = s.store.Modes()
			s.cursor = len(modes) - 1
			return s.showForm(modes[s.cursor])
		case key.Matches(msg, keys.Edit):
			if len(modes) > 0 {
				return s.showForm(modes[s.cursor])
			}
		case key.Matches(msg, keys.Delete):
			if len(modes) == 0 {
				return s, nil
			}
			return s.deleteMode(modes[s.cursor])
		}
	}
	return s, nil
}

func (s settingsModel) deleteMode(m model.Mode) (settingsModel, tea.Cmd) {
	if s.store.DeleteMode(m.ID) {
		s.cursor = clamp(s.cursor, 0, len(s.store.Modes())-1)
		return s, statusCmd("Deleted mode "+m.Name, false)
	}
	if len(s.store.Modes()) <= 1 {
		return s, statusCmd("At least one mode is required", true)
	}
	if n := s.store.UpcomingTaskCount(m.ID); n > 0 {
		return s, statusCmd(fmt.Sprintf("%s still has %d upcoming task(s)", m.Name, n), true)
	}
	return s, nil
}

func (s settingsModel) showForm(m model.Mode) (settingsModel, tea.Cmd) {
	*s.formName = m.Name
	*s.formIcon = model.NormalizeIcon(string(m.IconName))
	*s.formColor = m.Color
	s.editingID = m.ID

	iconOptions := make([]huh.Option[model.IconName], len(model.AvailableIcons))
	for i, icon := range model.AvailableIcons {
		iconOptions[i] = huh.NewOption(fmt.Sprintf("%s %s", icon.Glyph(), icon), icon)
	}

	colors := modeColors
	if m.Color != "" && !slices.Contains(colors, m.Color) {
		colors = append([]string{m.Color}, colors...)
	}
	colorOptions := make([]huh.Option[string], len(colors))
	for i, c := range colors {
		dot := lipgloss.NewStyle().Foreground(modeColor(c)).Render("●")
		colorOptions[i] = huh.NewOption(fmt.Sprintf("%s %s", dot, c), c)
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Mode Name").Value(s.formName),
			huh.NewSelect[model.IconName]().Title("Icon").Options(iconOptions...).Value(s.formIcon),
			huh.NewSelect[string]().Title("Color").Options(colorOptions...).Value(s.formColor),
		),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.form = nil
		s.saveMode()
		return s, statusCmd("Mode saved", false)
	}

	return s, cmd
}

// saveMode applies the form. A blank name keeps the current one.
func (s settingsModel) saveMode() {
	patch := model.ModePatch{IconName: s.formIcon, Color: s.formColor}
	if name := strings.TrimSpace(*s.formName); name != "" {
		patch.Name = &name
	}
	s.store.UpdateMode(s.editingID, patch)
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Edit Mode"), "", s.form.View()),
		)
	}

	modes := s.store.Modes()
	title := titleStyle.Render("Modes")
	count := mutedStyle.Render(fmt.Sprintf("%d of %d", len(modes), s.store.MaxModes()))

	rows := []string{title + "  " + count, ""}
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-3s %-4s %-20s %-10s %s", "", "", "Name", "Color", "Upcoming")))

	cursor := clamp(s.cursor, 0, len(modes)-1)
	for i, m := range modes {
		dot := lipgloss.NewStyle().Foreground(modeColor(m.Color)).Render("●")
		marker := "  "
		style := normalItemStyle
		if i == cursor {
			marker = "> "
			style = selectedItemStyle
		}
		active := ""
		if m.ID == s.store.ActiveModeID() {
			active = highlightStyle.Render("  (active)")
		}
		row := style.Render(fmt.Sprintf("%s%s %-4s %-20s %-10s %d",
			marker, dot, m.IconName.Glyph(), m.Name, m.Color, s.store.UpcomingTaskCount(m.ID)))
		rows = append(rows, row+active)
	}

	rows = append(rows, "")
	hint := "  n: new  e: edit  d: delete"
	if !s.store.CanAddMode() {
		hint = "  e: edit  d: delete  (mode limit reached)"
	}
	rows = append(rows, mutedStyle.Render(hint))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
