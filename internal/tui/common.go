package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/modus/internal/state"
)

// views lists the screens in tab order.
var views = []state.View{state.ViewHome, state.ViewArchive, state.ViewSettings}

var viewNames = []string{"Home", "Archive", "Settings"}

func viewIndex(v state.View) int {
	for i, candidate := range views {
		if candidate == v {
			return i
		}
	}
	return 0
}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

// tickMsg re-renders periodically so the day rolls over at midnight.
type tickMsg time.Time

type exportDoneMsg struct {
	path string
}

func statusCmd(text string, isError bool) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text, isError: isError} }
}

// --- Helpers ---

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}
