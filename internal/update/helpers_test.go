package update

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/pomo/internal/config"
	"github.com/sandeepkv93/pomo/internal/storage"
	"github.com/sandeepkv93/pomo/internal/tasks"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type recordingNotifier struct {
	titles []string
	beeps  int
}

func (r *recordingNotifier) Send(title, _ string) error {
	r.titles = append(r.titles, title)
	return nil
}

func (r *recordingNotifier) Beep() error {
	r.beeps++
	return nil
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		updated, _ := m.Update(keyMsg(k))
		next, ok := updated.(Model)
		if !ok {
			t.Fatalf("unexpected model type %T", updated)
		}
		m = next
	}
	return m
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m = press(t, m, string(r))
	}
	return m
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Sync.DefaultFile = filepath.Join(t.TempDir(), "default", "tasks.md")
	cfg.Journal.Path = ""
	return cfg
}

func newTestModel(t *testing.T, opts Options) (Model, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 2, 9, 9, 0, 0, 0, time.UTC)}
	if opts.Config.UI.PageSize == 0 {
		opts.Config = testConfig(t)
	}
	if opts.Now == nil {
		opts.Now = clock.Now
	}
	if opts.Clipboard == nil {
		opts.Clipboard = func(string) error { return nil }
	}
	return NewModel(opts), clock
}

func writeChecklist(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write checklist: %v", err)
	}
	return path
}

func readChecklist(t *testing.T, path string) string {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read checklist: %v", err)
	}
	return string(raw)
}

func loadManager(t *testing.T, path string) *tasks.Manager {
	t.Helper()
	mgr, err := tasks.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return mgr
}

func openJournal(t *testing.T) *storage.SQLiteRepository {
	t.Helper()
	repo, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}
