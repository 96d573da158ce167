// Package export writes tasks to CSV, JSON and Markdown.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sadopc/modus/internal/model"
)

const unknownMode = "Unknown"

func ToCSV(tasks []model.Task, modes []model.Mode, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, tasks, modes); err != nil {
		return fmt.Errorf("write csv file: %w", err)
	}
	return f.Close()
}

// WriteCSV writes one row per task, in insertion order, after a header row.
func WriteCSV(out io.Writer, tasks []model.Task, modes []model.Mode) error {
	w := csv.NewWriter(out)

	// Header
	if err := w.Write([]string{"ID", "Date", "Mode", "Title", "Completed", "Postponed From"}); err != nil {
		return err
	}

	names := modeNames(modes)
	for _, t := range tasks {
		postponed := ""
		if t.PostponedFrom != nil {
			postponed = *t.PostponedFrom
		}
		row := []string{
			t.ID,
			t.Date,
			names.lookup(t.ModeID),
			t.Title,
			strconv.FormatBool(t.Completed),
			postponed,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

type modeNameMap map[string]string

func modeNames(modes []model.Mode) modeNameMap {
	m := make(modeNameMap, len(modes))
	for _, mode := range modes {
		m[mode.ID] = mode.Name
	}
	return m
}

// lookup returns the mode name, or "Unknown" for a deleted mode.
func (m modeNameMap) lookup(id string) string {
	if name, ok := m[id]; ok {
		return name
	}
	return unknownMode
}
