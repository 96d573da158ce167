package export

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/sadopc/modus/internal/model"
	"github.com/sadopc/modus/internal/query"
)

// ToMarkdown renders an agenda document: tasks dated today or later grouped
// by day in ascending order, then the archive newest first.
func ToMarkdown(tasks []model.Task, modes []model.Mode, today string) string {
	names := modeNames(modes)
	var b strings.Builder
	b.WriteString("# Modus\n\n")

	b.WriteString("## Upcoming\n\n")
	upcoming := upcomingDates(tasks, today)
	if len(upcoming) == 0 {
		b.WriteString("_Nothing planned._\n\n")
	}
	for _, date := range upcoming {
		fmt.Fprintf(&b, "### %s (%s)\n\n", query.FormatDisplayDate(date, today), date)
		writeTaskList(&b, query.TasksForDate(tasks, date), names)
	}

	b.WriteString("## Archive\n\n")
	groups := query.Archive(tasks, today)
	if len(groups) == 0 {
		b.WriteString("_No past tasks._\n\n")
	}
	for _, g := range groups {
		badge := g.Label() + " done"
		if g.FullyComplete() {
			badge = "all done"
		}
		fmt.Fprintf(&b, "### %s (%s), %s\n\n", query.FormatDisplayDate(g.Date, today), g.Date, badge)
		writeTaskList(&b, g.Tasks, names)
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func ToMarkdownFile(tasks []model.Task, modes []model.Mode, today, path string) error {
	if err := os.WriteFile(path, []byte(ToMarkdown(tasks, modes, today)), 0o644); err != nil {
		return fmt.Errorf("write markdown file: %w", err)
	}
	return nil
}

func upcomingDates(tasks []model.Task, today string) []string {
	seen := make(map[string]bool)
	var dates []string
	for _, t := range tasks {
		if t.Date < today || seen[t.Date] || !model.ValidDate(t.Date) {
			continue
		}
		seen[t.Date] = true
		dates = append(dates, t.Date)
	}
	sort.Strings(dates)
	return dates
}

func writeTaskList(b *strings.Builder, tasks []model.Task, names modeNameMap) {
	for _, t := range tasks {
		check := " "
		if t.Completed {
			check = "x"
		}
		fmt.Fprintf(b, "- [%s] %s _(%s)_", check, t.Title, names.lookup(t.ModeID))
		if t.PostponedFrom != nil {
			fmt.Fprintf(b, ", postponed from %s", *t.PostponedFrom)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

var (
	rendererMu sync.Mutex
	renderers  = map[rendererKey]*glamour.TermRenderer{}
)

type rendererKey struct {
	width int
	color bool
}

// Render formats markdown for the terminal. Without color the plain ASCII
// style is used. On renderer failure the input is returned unchanged.
func Render(markdown string, width int, color bool) string {
	if width < 20 {
		width = 20
	}
	r := renderer(width, color)
	if r == nil {
		return markdown
	}
	out, err := r.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}

func renderer(width int, color bool) *glamour.TermRenderer {
	rendererMu.Lock()
	defer rendererMu.Unlock()

	k := rendererKey{width: width, color: color}
	if cached, ok := renderers[k]; ok {
		return cached
	}
	var style ansi.StyleConfig
	if color {
		style = styles.DarkStyleConfig
	} else {
		style = styles.ASCIIStyleConfig
		style.Item.BlockPrefix = "- "
	}
	created, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderers[k] = created
	return created
}
