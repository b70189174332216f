package update

import (
	"errors"
	"reflect"
	"testing"

	"github.com/sandeepkv93/pomo/internal/model"
)

func tasksModel(t *testing.T, backlog ...string) Model {
	t.Helper()
	m, _ := newTestModel(t, Options{})
	for _, text := range backlog {
		m.Store().Add(text, model.SectionBacklog)
	}
	return press(t, m, "t")
}

func TestTasksNavigation(t *testing.T) {
	m := tasksModel(t, "A", "B", "C")
	m = press(t, m, "j", "j", "j")
	if m.Focus.Index != 2 {
		t.Fatalf("expected index 2, got %d", m.Focus.Index)
	}
	m = press(t, m, "k")
	if m.Focus.Index != 1 {
		t.Fatalf("expected index 1, got %d", m.Focus.Index)
	}
	m = press(t, m, "tab")
	if m.Focus.Section != model.SectionCurrent || m.Focus.Index != 0 {
		t.Fatalf("unexpected focus after tab: %+v", m.Focus)
	}
	m = press(t, m, "shift+tab", "shift+tab")
	if m.Focus.Section != model.SectionCompleted {
		t.Fatalf("expected wrap to completed, got %+v", m.Focus)
	}
}

func TestTasksPaging(t *testing.T) {
	m := tasksModel(t, "1", "2", "3", "4", "5", "6", "7", "8")
	m = press(t, m, "ctrl+d")
	if m.Focus.Index != 5 {
		t.Fatalf("expected page size 5, got %d", m.Focus.Index)
	}
	m = press(t, m, "ctrl+d")
	if m.Focus.Index != 7 {
		t.Fatalf("expected clamp to last row, got %d", m.Focus.Index)
	}
	m = press(t, m, "ctrl+u")
	if m.Focus.Index != 2 {
		t.Fatalf("expected 2 after page up, got %d", m.Focus.Index)
	}
}

func TestTasksReorderFollowsTask(t *testing.T) {
	m := tasksModel(t, "A", "B", "C")
	m = press(t, m, "J")
	if got := m.Store().Texts(model.SectionBacklog); !reflect.DeepEqual(got, []string{"B", "A", "C"}) {
		t.Fatalf("unexpected order: %q", got)
	}
	if m.Focus.Index != 1 {
		t.Fatalf("focus should follow the moved task, got %d", m.Focus.Index)
	}
	m = press(t, m, "K", "K")
	if got := m.Store().Texts(model.SectionBacklog); !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
		t.Fatalf("unexpected order: %q", got)
	}
	if m.Focus.Index != 0 {
		t.Fatalf("expected focus on first row, got %d", m.Focus.Index)
	}
}

func TestTasksToggleAndComplete(t *testing.T) {
	m := tasksModel(t, "A", "B")
	m = press(t, m, "enter")
	if got := m.Store().Texts(model.SectionCurrent); !reflect.DeepEqual(got, []string{"A"}) {
		t.Fatalf("expected A in current, got %q", got)
	}
	m = press(t, m, "tab", "x")
	if got := m.Store().Texts(model.SectionCompleted); !reflect.DeepEqual(got, []string{"A"}) {
		t.Fatalf("expected A completed, got %q", got)
	}
	if m.Focus.Index != 0 || m.Store().Len(model.SectionCurrent) != 0 {
		t.Fatalf("unexpected focus or current after completion: %+v", m.Focus)
	}
	m = press(t, m, "tab", "x")
	if got := m.Store().Texts(model.SectionBacklog); !reflect.DeepEqual(got, []string{"B", "A"}) {
		t.Fatalf("expected A back in backlog, got %q", got)
	}
	m = press(t, m, "enter")
	if m.Store().Len(model.SectionCompleted) != 0 || m.Status.Text != "toggled completion: A" {
		t.Fatalf("enter on empty completed must be a no-op, status %q", m.Status.Text)
	}
}

func TestTasksDeleteClampsFocus(t *testing.T) {
	m := tasksModel(t, "A", "B", "C")
	m = press(t, m, "j", "j", "D")
	if m.Focus.Index != 1 {
		t.Fatalf("expected focus clamp to 1, got %d", m.Focus.Index)
	}
	m = press(t, m, "D", "D", "D")
	if m.Store().Len(model.SectionBacklog) != 0 || m.Focus.Index != 0 {
		t.Fatalf("expected empty backlog with index 0, got %d", m.Focus.Index)
	}
}

func TestTaskInputAddsToFocusedSection(t *testing.T) {
	m := tasksModel(t, "A")
	m = press(t, m, "tab", "a")
	if m.Overlay != OverlayTaskInput || m.taskInputTitle() != "Add to Current" {
		t.Fatalf("expected current input overlay, got %d %q", m.Overlay, m.taskInputTitle())
	}
	m = typeText(t, m, "Deep work Q?")
	m = press(t, m, "enter")
	if got := m.Store().Texts(model.SectionCurrent); !reflect.DeepEqual(got, []string{"Deep work Q?"}) {
		t.Fatalf("unexpected current: %q", got)
	}
	if m.Overlay != OverlayNone || m.Quitting {
		t.Fatal("input keys must not reach global bindings")
	}
	if m.Focus.Section != model.SectionCurrent || m.Focus.Index != 0 {
		t.Fatalf("expected focus on new task, got %+v", m.Focus)
	}
}

func TestTaskInputFromCompletedGoesToBacklog(t *testing.T) {
	m := tasksModel(t, "A")
	m = press(t, m, "shift+tab", "a")
	if m.taskInputTitle() != "Add Task" {
		t.Fatalf("unexpected title %q", m.taskInputTitle())
	}
	m = typeText(t, m, "New")
	m = press(t, m, "enter")
	if got := m.Store().Texts(model.SectionBacklog); !reflect.DeepEqual(got, []string{"A", "New"}) {
		t.Fatalf("unexpected backlog: %q", got)
	}
	if m.Focus.Section != model.SectionBacklog || m.Focus.Index != 1 {
		t.Fatalf("expected focus on new backlog row, got %+v", m.Focus)
	}
}

func TestTaskInputEscAndBlank(t *testing.T) {
	m := tasksModel(t)
	m = press(t, m, "a")
	m = typeText(t, m, "discard me")
	m = press(t, m, "esc")
	if m.Overlay != OverlayNone || m.Store().Len(model.SectionBacklog) != 0 {
		t.Fatal("esc must cancel without adding")
	}
	m = press(t, m, "a", " ", " ", "enter")
	if m.Store().Len(model.SectionBacklog) != 0 {
		t.Fatal("blank input must not add a task")
	}
}

func TestTaskInputEditingKeysKeepCursorCommand(t *testing.T) {
	m := tasksModel(t)
	m = press(t, m, "a")
	m = typeText(t, m, "abc")
	updated, cmd := m.Update(keyMsg("backspace"))
	m = updated.(Model)
	if m.taskInput.Value() != "ab" {
		t.Fatalf("unexpected input value %q", m.taskInput.Value())
	}
	if cmd == nil {
		t.Fatal("expected the input's cursor command to be returned")
	}
}

func TestCopyFocusedTask(t *testing.T) {
	var copied string
	m, _ := newTestModel(t, Options{Clipboard: func(s string) error {
		copied = s
		return nil
	}})
	m.Store().Add("Ship it", model.SectionBacklog)
	m = press(t, m, "t", "y")
	if copied != "Ship it" || m.Status.IsError {
		t.Fatalf("expected copy, got %q status %+v", copied, m.Status)
	}

	failing, _ := newTestModel(t, Options{Clipboard: func(string) error { return errors.New("no clipboard") }})
	failing.Store().Add("x", model.SectionBacklog)
	failing = press(t, failing, "t", "y")
	if !failing.Status.IsError {
		t.Fatal("expected clipboard failure in status")
	}
}
