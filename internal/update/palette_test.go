package update

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/sandeepkv93/pomo/internal/model"
	"github.com/sandeepkv93/pomo/internal/storage"
	"github.com/sandeepkv93/pomo/internal/timer"
)

func runCommand(t *testing.T, m Model, input string) Model {
	t.Helper()
	m = press(t, m, ":")
	if !m.Palette.Active {
		t.Fatal("expected palette to open")
	}
	m = typeText(t, m, input)
	m = press(t, m, "enter")
	if m.Palette.Active {
		t.Fatal("expected palette to close after enter")
	}
	return m
}

func TestPaletteAddAndNow(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = runCommand(t, m, "add Buy  milk")
	m = runCommand(t, m, "now Write report")
	if got := m.Store().Texts(model.SectionBacklog); !reflect.DeepEqual(got, []string{"Buy  milk"}) {
		t.Fatalf("unexpected backlog: %q", got)
	}
	if got := m.Store().Texts(model.SectionCurrent); !reflect.DeepEqual(got, []string{"Write report"}) {
		t.Fatalf("unexpected current: %q", got)
	}
	if m.Focus.Section != model.SectionCurrent {
		t.Fatalf("expected focus on the new task, got %+v", m.Focus)
	}
	if m.Status.IsError || !strings.Contains(m.Status.Text, "Write report") {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
}

func TestPaletteEditRenamesFocusedTask(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = runCommand(t, m, "edit nothing")
	if !m.Status.IsError {
		t.Fatal("expected error without a focused task")
	}
	m.Store().Add("Old", model.SectionBacklog)
	m = runCommand(t, m, "edit New text")
	if got := m.Store().Texts(model.SectionBacklog); !reflect.DeepEqual(got, []string{"New text"}) {
		t.Fatalf("unexpected backlog: %q", got)
	}
}

func TestPaletteSessionAndErrors(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = runCommand(t, m, "session short")
	if m.Timer().Session() != timer.SessionShortBreak {
		t.Fatalf("expected short break, got %s", m.Timer().Session())
	}
	m = runCommand(t, m, "dance")
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "unknown_command") {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
	m = runCommand(t, m, "stats")
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "journal is disabled") {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
}

func TestPaletteEscClosesWithoutRunning(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = press(t, m, "/")
	m = typeText(t, m, "add x")
	m = press(t, m, "esc")
	if m.Palette.Active || m.Store().Len(model.SectionBacklog) != 0 {
		t.Fatal("esc must close the palette without running the command")
	}
}

func TestPaletteSyncOpensReview(t *testing.T) {
	path := writeChecklist(t, "- [ ] From file\n")
	m, _ := newTestModel(t, Options{Manager: loadManager(t, path)})
	m.Store().Add("Local", model.SectionBacklog)
	m = runCommand(t, m, "sync")
	if m.Overlay != OverlaySync || len(m.Sync.Items) != 1 {
		t.Fatalf("expected review with one item, got %d %+v", m.Overlay, m.Sync.Items)
	}
}

func TestPaletteStats(t *testing.T) {
	journal := openJournal(t)
	m, clock := newTestModel(t, Options{Journal: journal})
	ctx := context.Background()
	started := clock.Now().Add(-time.Hour)
	done := started.Add(25 * time.Minute)
	for i, completed := range []*time.Time{&done, &done, nil} {
		err := journal.RecordSession(ctx, storage.Session{
			ID:             string(rune('a' + i)),
			Kind:           timer.SessionWork.String(),
			PlannedSeconds: 1500,
			StartedAt:      started,
			CompletedAt:    completed,
		})
		if err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	m = runCommand(t, m, "stats")
	if m.Status.IsError {
		t.Fatalf("unexpected error: %+v", m.Status)
	}
	if !strings.Contains(m.Status.Text, "2 pomodoro(s), 50 min focused, 1 abandoned") {
		t.Fatalf("unexpected stats: %q", m.Status.Text)
	}
}
