package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestTaskValidateSuccess(t *testing.T) {
	from := "2024-01-09"
	task := Task{
		ID:            "task-1",
		Title:         "Write report",
		Date:          "2024-01-10",
		ModeID:        "mode-1",
		PostponedFrom: &from,
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateRejectsBlankTitle(t *testing.T) {
	task := Task{ID: "task-1", Title: "   ", Date: "2024-01-10"}
	if err := task.Validate(); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got: %v", err)
	}
}

func TestTaskValidateRejectsBadDates(t *testing.T) {
	task := Task{ID: "task-1", Title: "X", Date: "2024-13-01"}
	if err := task.Validate(); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got: %v", err)
	}

	bad := "yesterday"
	task.Date = "2024-01-10"
	task.PostponedFrom = &bad
	if err := task.Validate(); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate for postponedFrom, got: %v", err)
	}
}

func TestTaskJSONShape(t *testing.T) {
	task := Task{ID: "t1", Title: "X", Date: "2024-01-05", ModeID: "mode-1"}
	data, err := json.Marshal(task)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	if strings.Contains(got, "postponedFrom") {
		t.Fatalf("postponedFrom should be omitted when absent: %s", got)
	}
	if !strings.Contains(got, `"modeId":"mode-1"`) {
		t.Fatalf("expected modeId key: %s", got)
	}

	// Blobs written with an explicit null still decode as "never postponed".
	var decoded Task
	if err := json.Unmarshal([]byte(`{"id":"t1","title":"X","date":"2024-01-05","modeId":"m","completed":true,"postponedFrom":null}`), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Postponed() || !decoded.Completed {
		t.Fatalf("unexpected decoded task: %+v", decoded)
	}
}

func TestModeApplyPreservesUnsetFields(t *testing.T) {
	m := Mode{ID: "mode-1", Name: "Dev", IconName: IconCode, Color: "blue"}

	name := "Work"
	got := m.Apply(ModePatch{Name: &name})
	if got.Name != "Work" || got.IconName != IconCode || got.Color != "blue" || got.ID != "mode-1" {
		t.Fatalf("unexpected patched mode: %+v", got)
	}
	if m.Name != "Dev" {
		t.Fatal("Apply must not mutate the receiver")
	}

	bogus := IconName("Rocket")
	got = m.Apply(ModePatch{IconName: &bogus})
	if got.IconName != DefaultIcon {
		t.Fatalf("expected unknown icon to normalize to %s, got %s", DefaultIcon, got.IconName)
	}
}

func TestModeValidate(t *testing.T) {
	if err := (Mode{ID: "m", IconName: IconMusic}).Validate(); err != nil {
		t.Fatalf("expected valid mode: %v", err)
	}
	if err := (Mode{ID: "m", IconName: "Rocket"}).Validate(); !errors.Is(err, ErrInvalidIcon) {
		t.Fatalf("expected ErrInvalidIcon, got: %v", err)
	}
	if err := (Mode{IconName: IconMusic}).Validate(); err == nil {
		t.Fatal("expected error for missing id")
	}
}

func TestNormalizeIcon(t *testing.T) {
	for _, icon := range AvailableIcons {
		if NormalizeIcon(string(icon)) != icon {
			t.Fatalf("catalog icon %s should normalize to itself", icon)
		}
		if icon.Glyph() == "" {
			t.Fatalf("icon %s has no glyph", icon)
		}
	}
	if NormalizeIcon("") != IconStar || NormalizeIcon("code") != IconStar {
		t.Fatal("unknown names should fall back to Star")
	}
	if IconName("nope").Glyph() != IconStar.Glyph() {
		t.Fatal("unknown glyph should fall back to Star's glyph")
	}
}

func TestAddDays(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		want string
	}{
		{"2024-01-05", 1, "2024-01-06"},
		{"2024-01-31", 1, "2024-02-01"},
		{"2024-02-28", 1, "2024-02-29"},
		{"2023-12-31", 1, "2024-01-01"},
		{"2024-01-01", -1, "2023-12-31"},
	}
	for _, c := range cases {
		got, err := AddDays(c.in, c.n)
		if err != nil {
			t.Fatalf("AddDays(%s, %d): %v", c.in, c.n, err)
		}
		if got != c.want {
			t.Fatalf("AddDays(%s, %d) = %s, want %s", c.in, c.n, got, c.want)
		}
	}
	if _, err := AddDays("not-a-date", 1); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestDateOfUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC-8", -8*3600)
	// 03:00 UTC on the 10th is still the 9th eight hours west.
	instant := time.Date(2024, 1, 10, 3, 0, 0, 0, time.UTC)
	if got := DateOf(instant.In(loc)); got != "2024-01-09" {
		t.Fatalf("expected local date 2024-01-09, got %s", got)
	}
	if got := DateOf(instant); got != "2024-01-10" {
		t.Fatalf("expected utc date 2024-01-10, got %s", got)
	}
}
