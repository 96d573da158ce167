package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/modus/internal/export"
	"github.com/sadopc/modus/internal/state"
)

var exportFormats = []string{"CSV", "JSON", "Markdown"}

// App is the root Bubble Tea model.
type App struct {
	store  *state.Store
	width  int
	height int

	showHelp      bool
	exportPicking bool
	exportCursor  int
	exportDir     string

	home     homeModel
	archive  archiveModel
	settings settingsModel

	help        help.Model
	status      string
	statusError bool
}

// NewApp builds the UI over s. Exports are written to exportDir, or to the
// home directory when it is empty.
func NewApp(s *state.Store, exportDir string) App {
	h := help.New()
	h.ShowAll = false

	return App{
		store:     s,
		exportDir: exportDir,
		home:      newHomeModel(s),
		archive:   newArchiveModel(s),
		settings:  newSettingsModel(s),
		help:      h,
	}
}

func (a App) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.home.setSize(a.width, contentHeight)
		a.archive.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.switchView(1)
			return a, nil
		case key.Matches(msg, keys.ShiftTab):
			a.switchView(-1)
			return a, nil
		}

	case tickMsg:
		// The next render re-reads today from the clock.
		var cmd tea.Cmd
		a.home, cmd = a.home.update(msg)
		return a, tea.Batch(cmd, tickCmd())

	case statusMsg:
		a.status = msg.text
		a.statusError = msg.isError
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusError = false
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a *App) switchView(delta int) {
	n := len(views)
	i := (viewIndex(a.store.View()) + delta + n) % n
	a.store.SetView(views[i])
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.store.View() {
	case state.ViewHome:
		a.home, cmd = a.home.update(msg)
	case state.ViewArchive:
		a.archive, cmd = a.archive.update(msg)
	case state.ViewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.store.View() {
	case state.ViewHome:
		return a.home.formActive
	case state.ViewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.store.View() {
	case state.ViewHome:
		content = a.home.view()
	case state.ViewArchive:
		content = a.archive.view()
	case state.ViewSettings:
		content = a.settings.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	// Show export picker overlay
	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	current := viewIndex(a.store.View())
	var tabs []string
	for i, name := range viewNames {
		if i == current {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorBrand).Render("modus")
	if m, ok := a.store.ActiveMode(); ok {
		title += mutedStyle.Render(" · ") + lipgloss.NewStyle().Foreground(modeColor(m.Color)).Render(m.IconName.Glyph()+" "+m.Name)
	}
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		if a.statusError {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = mutedStyle.Render(" " + a.status)
		}
	}

	left := footerStyle.Render(helpView)

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(status) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, status)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

// doExport snapshots the collections before returning the command, since
// commands run off the update loop.
func (a App) doExport(format int) tea.Cmd {
	snap := a.store.Snapshot()
	dir := a.exportDir

	return func() tea.Msg {
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
			}
			dir = home
		}

		base := filepath.Join(dir, "modus-export-"+snap.Today)
		var path string
		switch format {
		case 0:
			path = base + ".csv"
			if err := export.ToCSV(snap.Tasks, snap.Modes, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		case 1:
			path = base + ".json"
			if err := export.ToJSON(snap.Tasks, snap.Modes, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		default:
			path = base + ".md"
			if err := export.ToMarkdownFile(snap.Tasks, snap.Modes, snap.Today, path); err != nil {
				return statusMsg{text: fmt.Sprintf("Markdown error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
