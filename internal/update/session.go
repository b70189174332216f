package update

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/sandeepkv93/pomo/internal/notify"
	"github.com/sandeepkv93/pomo/internal/scheduler"
	"github.com/sandeepkv93/pomo/internal/storage"
	"github.com/sandeepkv93/pomo/internal/timer"
)

const (
	sessionAlarmID = "session"
	journalTimeout = 2 * time.Second
)

func (m Model) handleTimerKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		if m.timer.IsRunning() {
			m.timer.Pause()
			m.cancelAlarm()
			m.Status = StatusBar{Text: "timer paused"}
			return m, nil
		}
		m.timer.Start()
		m.Status = StatusBar{Text: fmt.Sprintf("%s session running", m.timer.Session().Label())}
		m.logger.Debug("timer started", "session", m.timer.Session(), "remaining", m.timer.Remaining())
		m.scheduleAlarm()
		return m, tea.Batch(timerTickCmd(m.timer.Generation()), m.runSpinner.Tick)
	case "r":
		m.recordAbandoned()
		m.timer.Reset()
		m.cancelAlarm()
		m.Status = StatusBar{Text: "timer reset"}
	case "w":
		m.selectSession(timer.SessionWork)
	case "b":
		m.selectSession(timer.SessionShortBreak)
	case "l":
		m.selectSession(timer.SessionLongBreak)
	case "n":
		if !m.timer.CycleSessionType() {
			m.Status = StatusBar{Text: "reset the timer to change session", IsError: true}
			return m, nil
		}
		m.Status = StatusBar{Text: fmt.Sprintf("session: %s", m.timer.Session().Label())}
	case "+", "=":
		if !m.timer.AddMinute() {
			m.Status = StatusBar{Text: "reset the timer to adjust it", IsError: true}
		}
	case "-":
		if !m.timer.SubtractMinute() && !m.timer.IsIdle() {
			m.Status = StatusBar{Text: "reset the timer to adjust it", IsError: true}
		}
	case "c":
		task, ok := m.Store().CompleteActive()
		if !ok {
			m.Status = StatusBar{Text: "no current task to complete", IsError: true}
			return m, nil
		}
		m.Focus.Clamp(m.Store())
		m.Status = StatusBar{Text: fmt.Sprintf("completed: %s", task.Text)}
	}
	return m, nil
}

func (m *Model) selectSession(s timer.SessionType) {
	if !m.timer.SetSessionType(s) {
		m.Status = StatusBar{Text: "reset the timer to change session", IsError: true}
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("session: %s", s.Label())}
}

func (m Model) onTimerTick(msg TimerTickMsg) (tea.Model, tea.Cmd) {
	if msg.Generation != m.timer.Generation() || !m.timer.IsRunning() {
		return m, nil
	}
	if m.timer.Tick() {
		m.finishSession(m.timer.LastCompletion())
		m.cancelAlarm()
		return m, nil
	}
	return m, timerTickCmd(m.timer.Generation())
}

// onAlarm completes the session when the scheduled end arrives before the
// next tick. Alarms from an earlier start are ignored.
func (m Model) onAlarm(alarm scheduler.Alarm) (tea.Model, tea.Cmd) {
	var next tea.Cmd
	if m.scheduler != nil {
		next = waitForAlarmCmd(m.scheduler.C())
	}
	if alarm.Generation != m.timer.Generation() || !m.timer.IsRunning() {
		m.logger.Debug("stale alarm ignored", "generation", alarm.Generation)
		return m, next
	}
	if m.timer.Tick() {
		m.finishSession(m.timer.LastCompletion())
	}
	return m, next
}

func (m *Model) finishSession(c timer.Completion) {
	taskText := ""
	if c.Session == timer.SessionWork {
		if task, ok := m.Store().ActiveTask(); ok {
			taskText = task.Text
		}
	}
	completedAt := c.CompletedAt
	m.recordSession(storage.Session{
		Kind:           c.Session.String(),
		TaskText:       taskText,
		PlannedSeconds: int(c.Planned / time.Second),
		StartedAt:      c.StartedAt,
		CompletedAt:    &completedAt,
	})
	if c.Session == timer.SessionWork {
		m.refreshTodayCount()
	}

	title := fmt.Sprintf("%s complete", c.Session.Label())
	body := fmt.Sprintf("Up next: %s", m.timer.Session().Label())
	if taskText != "" {
		body = fmt.Sprintf("%s (%s)", body, taskText)
	}
	m.Status = StatusBar{Text: fmt.Sprintf("%s. %s", title, body)}
	m.logger.Info("session complete", "session", c.Session, "task", taskText, "planned", c.Planned)
	if m.cfg.Notifications.Desktop || m.cfg.Notifications.Beep {
		if err := notify.SessionDone(m.notifier, "pomo: "+title, body); err != nil {
			m.logger.Warn("notification failed", "err", err)
		}
	}
}

// recordAbandoned journals a session that is reset or quit before it
// reaches zero.
func (m *Model) recordAbandoned() {
	if m.timer.IsIdle() {
		return
	}
	taskText := ""
	if m.timer.Session() == timer.SessionWork {
		if task, ok := m.Store().ActiveTask(); ok {
			taskText = task.Text
		}
	}
	m.recordSession(storage.Session{
		Kind:           m.timer.Session().String(),
		TaskText:       taskText,
		PlannedSeconds: int(m.timer.Planned() / time.Second),
		StartedAt:      m.timer.StartedAt(),
	})
}

func (m *Model) recordSession(s storage.Session) {
	if m.journal == nil || s.PlannedSeconds <= 0 {
		return
	}
	s.ID = uuid.NewString()
	ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
	defer cancel()
	if err := m.journal.RecordSession(ctx, s); err != nil {
		m.logger.Error("journal write failed", "err", err)
		m.Status = StatusBar{Text: fmt.Sprintf("journal: %v", err), IsError: true}
	}
}

func (m *Model) refreshTodayCount() {
	if m.journal == nil {
		m.TodayKnown = false
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
	defer cancel()
	n, err := m.journal.CountCompletedSince(ctx, timer.SessionWork.String(), startOfDay(m.now()))
	if err != nil {
		m.logger.Error("journal read failed", "err", err)
		m.TodayKnown = false
		return
	}
	m.TodayCount = n
	m.TodayKnown = true
}

func (m Model) scheduleAlarm() {
	if m.scheduler == nil {
		return
	}
	err := m.scheduler.Schedule(scheduler.Alarm{
		ID:         sessionAlarmID,
		Generation: m.timer.Generation(),
		Session:    m.timer.Session().String(),
		TriggerAt:  m.timer.EndsAt(),
	})
	if err != nil {
		m.logger.Warn("alarm schedule failed", "err", err)
	}
}

func (m Model) cancelAlarm() {
	if m.scheduler != nil {
		m.scheduler.Cancel(sessionAlarmID)
	}
}

func timerTickCmd(generation uint64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return TimerTickMsg{Generation: generation} })
}

func waitForAlarmCmd(ch <-chan scheduler.Alarm) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return AlarmDueMsg{Alarm: ev}
	}
}

func startOfDay(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, t.Location())
}
