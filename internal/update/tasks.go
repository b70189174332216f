package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/pomo/internal/model"
)

func (m Model) handleTasksKey(msg tea.KeyMsg) Model {
	store := m.Store()
	f := &m.Focus
	switch msg.String() {
	case "j", "down":
		f.Down(store)
	case "k", "up":
		f.Up()
	case "ctrl+d":
		f.PageDown(store, m.cfg.UI.PageSize)
	case "ctrl+u":
		f.PageUp(m.cfg.UI.PageSize)
	case "tab":
		f.NextSection(store)
	case "shift+tab":
		f.PrevSection(store)
	case "J":
		if store.ReorderDown(f.Section, f.Index) {
			f.Down(store)
		}
	case "K":
		if store.ReorderUp(f.Section, f.Index) {
			f.Up()
		}
	case "enter":
		dest := model.SectionCurrent
		if f.Section == model.SectionCurrent {
			dest = model.SectionBacklog
		}
		if task, ok := store.Get(f.Section, f.Index); ok && store.Toggle(f.Section, f.Index) {
			m.Status = StatusBar{Text: fmt.Sprintf("moved to %s: %s", dest, task.Text)}
		}
	case "x":
		if task, ok := store.Get(f.Section, f.Index); ok && store.ToggleCompletion(f.Section, f.Index) {
			m.Status = StatusBar{Text: fmt.Sprintf("toggled completion: %s", task.Text)}
		}
	case "D":
		if task, ok := store.Get(f.Section, f.Index); ok {
			store.Delete(f.Section, f.Index)
			m.Status = StatusBar{Text: fmt.Sprintf("deleted: %s", task.Text)}
		}
	case "a":
		m.openTaskInput()
	case "y":
		task, ok := store.Get(f.Section, f.Index)
		if !ok {
			return m
		}
		if err := m.copyToClip(task.Text); err != nil {
			m.Status = StatusBar{Text: fmt.Sprintf("clipboard: %v", err), IsError: true}
			return m
		}
		m.Status = StatusBar{Text: "copied to clipboard"}
	}
	f.Clamp(store)
	return m
}

// openTaskInput targets the focused section. Tasks added from Completed go
// to the backlog.
func (m *Model) openTaskInput() {
	m.inputSection = m.Focus.Section
	if m.inputSection == model.SectionCompleted {
		m.inputSection = model.SectionBacklog
	}
	m.taskInput.SetValue("")
	m.taskInput.Focus()
	m.Overlay = OverlayTaskInput
}

func (m Model) handleTaskInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeTaskInput()
	case "enter":
		text := strings.TrimSpace(m.taskInput.Value())
		m.closeTaskInput()
		if text == "" {
			return m, nil
		}
		m.Store().Add(text, m.inputSection)
		m.Focus.Set(m.Store(), m.inputSection, m.Store().Len(m.inputSection)-1)
		m.Status = StatusBar{Text: fmt.Sprintf("added to %s: %s", m.inputSection, text)}
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			m.taskInput.SetValue(m.taskInput.Value() + string(msg.Runes))
			m.taskInput.CursorEnd()
			return m, nil
		}
		var cmd tea.Cmd
		m.taskInput, cmd = m.taskInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) closeTaskInput() {
	m.taskInput.Blur()
	m.Overlay = OverlayNone
}

func (m Model) taskInputTitle() string {
	switch m.inputSection {
	case model.SectionCurrent:
		return "Add to Current"
	case model.SectionBacklog:
		if m.Focus.Section == model.SectionCompleted {
			return "Add Task"
		}
		return "Add to Backlog"
	default:
		return "Add Task"
	}
}
