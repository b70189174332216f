package update

import (
	"fmt"

	"github.com/sandeepkv93/pomo/internal/model"
	"github.com/sandeepkv93/pomo/internal/views"
)

// twoColumns reports whether both panels fit side by side. An unknown width
// (before the first resize) counts as wide.
func (m Model) twoColumns() bool {
	return m.Width == 0 || m.Width/2 >= views.TimerMinWidth
}

func (m Model) renderPanels() []string {
	if !m.ShowTasks {
		return []string{m.renderTimerPanel(m.Width)}
	}
	if !m.twoColumns() {
		if m.ActivePanel == PanelTasks {
			return []string{m.renderTasksPanel(m.Width)}
		}
		return []string{m.renderTimerPanel(m.Width)}
	}
	half := m.Width / 2
	return []string{m.renderTimerPanel(half), m.renderTasksPanel(m.Width - half)}
}

func (m Model) renderTimerPanel(width int) string {
	active := ""
	if task, ok := m.Store().ActiveTask(); ok {
		active = task.Text
	}
	return views.RenderTimerPanel(views.TimerPanelData{
		Session:      m.timer.Session().Label(),
		State:        m.timer.State().String(),
		Clock:        m.timer.Clock(),
		Indicator:    m.runSpinner.View(),
		ProgressView: m.timerProgress.ViewAs(m.timer.Progress()),
		Completed:    m.timer.SessionsCompleted(),
		Today:        m.TodayCount,
		TodayKnown:   m.TodayKnown,
		ActiveTask:   active,
		Width:        width,
		Focused:      m.ActivePanel == PanelTimer,
	})
}

func (m Model) renderTasksPanel(width int) string {
	store := m.Store()
	window := m.cfg.UI.PageSize * 2
	sections := make([]views.TaskSectionData, 0, 3)
	for _, section := range model.Sections() {
		all := store.Tasks(section)
		focused := section == m.Focus.Section && m.ActivePanel == PanelTasks
		offset := 0
		if section == m.Focus.Section {
			offset = windowOffset(len(all), m.Focus.Index, window)
		}
		end := min(offset+window, len(all))
		rows := make([]views.TaskRowData, 0, end-offset)
		for i := offset; i < end; i++ {
			rows = append(rows, views.TaskRowData{
				Text:    all[i].Text,
				Focused: focused && i == m.Focus.Index,
			})
		}
		sections = append(sections, views.TaskSectionData{
			Title:  section.String(),
			Rows:   rows,
			Active: section == m.Focus.Section,
			Offset: offset,
			Total:  len(all),
		})
	}
	return views.RenderTasksPanel(views.TasksPanelData{
		Sections: sections,
		FilePath: m.manager.Path(),
		Width:    width,
		Focused:  m.ActivePanel == PanelTasks,
	})
}

// windowOffset keeps index inside a window of size rows.
func windowOffset(total, index, size int) int {
	if size <= 0 || total <= size || index < size {
		return 0
	}
	offset := index - size + 1
	if offset > total-size {
		offset = total - size
	}
	return offset
}

func (m Model) renderSyncOverlay() string {
	rows := make([]views.SyncRowData, 0, len(m.Sync.Items))
	for i, item := range m.Sync.Items {
		rows = append(rows, views.SyncRowData{
			Text:       item.Text,
			Resolution: item.Resolution.Checkbox(),
			Focused:    i == m.Sync.Cursor,
		})
	}
	return views.RenderSyncOverlay(views.SyncOverlayData{
		Path:  m.manager.Path(),
		Items: rows,
		Width: m.overlayWidth(),
	})
}

func (m Model) renderTaskInput() string {
	return views.RenderTaskInput(views.TaskInputData{
		Title:     m.taskInputTitle(),
		InputView: m.taskInput.View(),
		Width:     m.overlayWidth(),
	})
}

func (m Model) headerLine() string {
	file := "no file"
	if m.manager.HasFile() {
		file = m.manager.Path()
	}
	return fmt.Sprintf("POMODORO TIMER | %s %s | %s", m.timer.Session().Label(), m.timer.Clock(), file)
}

func (m Model) footerLine() string {
	if m.Palette.Active {
		return views.Shortcut("Enter", "run", "Esc", "close")
	}
	pairs := make([]string, 0, 16)
	for _, kb := range m.panelBindings()[:3] {
		pairs = append(pairs, kb.Key, kb.Action)
	}
	pairs = append(pairs, "t", "focus", "T", "tasks", "s", "sync", "?", "help", "q", "quit")
	return views.Shortcut(pairs...)
}

func (m Model) overlayWidth() int {
	if m.Width <= 0 {
		return 0
	}
	return min(m.Width, 72)
}

func (m *Model) resizeComponents() {
	width := m.Width / 2
	if !m.ShowTasks || !m.twoColumns() {
		width = m.Width
	}
	m.timerProgress.Width = max(10, min(width-6, 40))
	m.taskInput.Width = max(10, m.overlayWidth()-8)
	m.commandInput.Width = max(10, m.Width-12)
	m.helpModel.Width = m.overlayWidth()
}
