package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/modus/internal/model"
)

type jsonExport struct {
	ExportedAt string     `json:"exported_at"`
	Count      int        `json:"count"`
	Modes      []jsonMode `json:"modes"`
	Tasks      []jsonTask `json:"tasks"`
}

type jsonMode struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

type jsonTask struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Date          string `json:"date"`
	Mode          string `json:"mode"`
	ModeID        string `json:"mode_id"`
	Completed     bool   `json:"completed"`
	PostponedFrom string `json:"postponed_from,omitempty"`
}

func ToJSON(tasks []model.Task, modes []model.Mode, path string) error {
	data, err := MarshalJSON(tasks, modes, time.Now())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

// MarshalJSON builds the JSON export document. Empty collections are
// encoded as [] rather than null.
func MarshalJSON(tasks []model.Task, modes []model.Mode, now time.Time) ([]byte, error) {
	export := jsonExport{
		ExportedAt: now.UTC().Format(time.RFC3339),
		Count:      len(tasks),
		Modes:      make([]jsonMode, 0, len(modes)),
		Tasks:      make([]jsonTask, 0, len(tasks)),
	}

	for _, m := range modes {
		export.Modes = append(export.Modes, jsonMode{
			ID:    m.ID,
			Name:  m.Name,
			Icon:  string(m.IconName),
			Color: m.Color,
		})
	}

	names := modeNames(modes)
	for _, t := range tasks {
		jt := jsonTask{
			ID:        t.ID,
			Title:     t.Title,
			Date:      t.Date,
			Mode:      names.lookup(t.ModeID),
			ModeID:    t.ModeID,
			Completed: t.Completed,
		}
		if t.PostponedFrom != nil {
			jt.PostponedFrom = *t.PostponedFrom
		}
		export.Tasks = append(export.Tasks, jt)
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	return data, nil
}
