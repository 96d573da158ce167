package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/sadopc/modus/internal/model"
	"github.com/sadopc/modus/internal/query"
	"github.com/sadopc/modus/internal/state"
)

// chartDays is how many of the most recent archive days the chart shows.
const chartDays = 7

type archiveModel struct {
	store  *state.Store
	width  int
	height int

	offset int // first day group shown
}

func newArchiveModel(s *state.Store) archiveModel {
	return archiveModel{store: s}
}

func (r *archiveModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

func (r archiveModel) update(msg tea.Msg) (archiveModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		groups := r.store.Snapshot().Archive()
		switch {
		case key.Matches(msg, keys.Up):
			if r.offset > 0 {
				r.offset--
			}
		case key.Matches(msg, keys.Down):
			if r.offset < len(groups)-1 {
				r.offset++
			}
		}
	}
	return r, nil
}

// buildChart plots completed and open task counts for the most recent
// archive days, oldest on the left.
func (r archiveModel) buildChart(groups []query.DayGroup) barchart.Model {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 8
	if r.height > 30 {
		chartHeight = 12
	}

	chart := barchart.New(chartWidth, chartHeight)

	n := min(chartDays, len(groups))
	bars := make([]barchart.BarData, 0, n)
	for i := n - 1; i >= 0; i-- {
		g := groups[i]
		label := g.Date
		if t, err := model.ParseDate(g.Date); err == nil {
			label = t.Format("Jan 02")
		}
		bars = append(bars, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{
				{Name: "Done", Value: float64(g.Completed), Style: lipgloss.NewStyle().Foreground(colorDone)},
				{Name: "Open", Value: float64(g.Total() - g.Completed), Style: lipgloss.NewStyle().Foreground(colorBorder)},
			},
		})
	}

	chart.PushAll(bars)
	chart.Draw()
	return chart
}

func (r archiveModel) view() string {
	w := r.width - 4
	snap := r.store.Snapshot()
	groups := snap.Archive()

	title := titleStyle.Render("Archive")
	if len(groups) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No past tasks yet."),
		))
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		title, "  ", mutedStyle.Render(fmt.Sprintf("%d days", len(groups))),
	)
	chartView := r.buildChart(groups).View()
	legend := "  " + successStyle.Render("● done") + "  " + lipgloss.NewStyle().Foreground(colorBorder).Render("● open")

	offset := clamp(r.offset, 0, len(groups)-1)
	list := r.renderGroups(groups[offset:], snap.Today, w)

	nav := mutedStyle.Render("  ↑/↓: scroll")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, legend, "", list, "", nav,
		),
	)
}

func (r archiveModel) renderGroups(groups []query.DayGroup, today string, w int) string {
	titleWidth := w - 24
	if titleWidth < 10 {
		titleWidth = 10
	}

	var rows []string
	for i, g := range groups {
		if i > 0 {
			rows = append(rows, "")
		}
		badge := warningStyle.Render(g.Label() + " DONE")
		if g.FullyComplete() {
			badge = successStyle.Render(g.Label() + " DONE")
		}
		rows = append(rows, fmt.Sprintf("%s  %s", titleStyle.Render(query.FormatDisplayDate(g.Date, today)), badge))

		for _, t := range g.Tasks {
			bullet := mutedStyle.Render("○")
			text := truncate.StringWithTail(t.Title, uint(titleWidth), "…")
			if t.Completed {
				bullet = successStyle.Render("●")
				text = doneTaskStyle.Render(text)
			} else {
				text = normalItemStyle.Render(text)
			}
			row := fmt.Sprintf("  %s %s", bullet, text)
			if t.PostponedFrom != nil {
				row += "  " + accentStyle.Render("Postponed")
			}
			rows = append(rows, row)
		}
	}
	return strings.Join(rows, "\n")
}
