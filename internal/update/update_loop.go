package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/pomo/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.scheduler != nil {
		return waitForAlarmCmd(m.scheduler.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = typed.Width
		m.Height = typed.Height
		m.resizeComponents()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(typed)
	case TimerTickMsg:
		return m.onTimerTick(typed)
	case AlarmDueMsg:
		return m.onAlarm(typed.Alarm)
	case spinner.TickMsg:
		if m.timer.IsRunning() {
			var cmd tea.Cmd
			m.runSpinner, cmd = m.runSpinner.Update(typed)
			return m, cmd
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.showError(typed.Err)
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		return m.quit()
	}

	switch m.Overlay {
	case OverlayError:
		m.Overlay = OverlayNone
		m.ErrorText = ""
		return m, nil
	case OverlayTaskInput:
		return m.handleTaskInputKey(msg)
	case OverlaySync:
		return m.handleSyncKey(msg), nil
	case OverlayHelp:
		switch keyStr {
		case "?", "esc":
			m.Overlay = OverlayNone
		case "Q", "q":
			return m.quit()
		}
		return m, nil
	}

	if m.Palette.Active {
		return m.handlePaletteKey(msg)
	}

	switch keyStr {
	case "Q", "q", "esc":
		return m.quit()
	case "?":
		m.Overlay = OverlayHelp
		return m, nil
	case ":", "/":
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		return m, nil
	case "t":
		if m.ShowTasks {
			if m.ActivePanel == PanelTimer {
				m.ActivePanel = PanelTasks
			} else {
				m.ActivePanel = PanelTimer
			}
		}
		return m, nil
	case "T":
		m.ShowTasks = !m.ShowTasks
		if !m.ShowTasks {
			m.ActivePanel = PanelTimer
		}
		return m, nil
	case "s":
		return m.startSync(), nil
	}

	switch m.ActivePanel {
	case PanelTasks:
		return m.handleTasksKey(msg), nil
	case PanelTimer:
		return m.handleTimerKey(msg)
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.recordAbandoned()
	if m.scheduler != nil {
		m.scheduler.Cancel(sessionAlarmID)
	}
	m.Quitting = true
	return m, tea.Quit
}

func (m *Model) showError(err error) {
	m.LastError = err
	if err == nil {
		return
	}
	m.logger.Error("operation failed", "err", err)
	m.ErrorText = err.Error()
	m.Overlay = OverlayError
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	status := ""
	if m.Status.Text != "" {
		status = fmt.Sprintf("status: %s", m.Status.Text)
	}

	data := views.AppData{
		Header:      m.headerLine(),
		Width:       m.Width,
		Palette:     views.RenderCommandPalette(m.Palette.Active, m.commandInput.View()),
		StatusLine:  status,
		StatusError: m.Status.IsError,
		Footer:      m.footerLine(),
	}
	switch m.Overlay {
	case OverlayHelp:
		data.Overlay = m.renderHelpView()
	case OverlayTaskInput:
		data.Overlay = m.renderTaskInput()
	case OverlaySync:
		data.Overlay = m.renderSyncOverlay()
	case OverlayError:
		data.Overlay = views.RenderErrorOverlay(m.ErrorText, m.overlayWidth())
	default:
		data.Panels = m.renderPanels()
	}
	return views.RenderApp(data)
}
