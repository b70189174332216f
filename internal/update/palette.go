package update

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/pomo/internal/commands"
	"github.com/sandeepkv93/pomo/internal/model"
	"github.com/sandeepkv93/pomo/internal/storage"
	"github.com/sandeepkv93/pomo/internal/timer"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.commandInput.CursorEnd()
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
		return m, cmd
	}
	return m, nil
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.TextArgs) (commands.Result, error) {
			m.addFromPalette(a.Text, model.SectionBacklog)
			return commands.Result{Message: fmt.Sprintf("added to Backlog: %s", a.Text)}, nil
		},
		Now: func(a commands.TextArgs) (commands.Result, error) {
			m.addFromPalette(a.Text, model.SectionCurrent)
			return commands.Result{Message: fmt.Sprintf("added to Current: %s", a.Text)}, nil
		},
		Edit: func(a commands.TextArgs) (commands.Result, error) {
			if !m.Store().Rename(m.Focus.Section, m.Focus.Index, a.Text) {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no focused task to edit"}
			}
			return commands.Result{Message: fmt.Sprintf("renamed to: %s", a.Text)}, nil
		},
		Sync: func() (commands.Result, error) {
			m = m.startSync()
			return commands.Result{}, nil
		},
		Session: func(s commands.SessionArgs) (commands.Result, error) {
			if !m.timer.SetSessionType(s.Session) {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "reset the timer to change session"}
			}
			return commands.Result{Message: fmt.Sprintf("session: %s", s.Session.Label())}, nil
		},
		Stats: func() (commands.Result, error) {
			return m.stats()
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.logger.Warn("command failed", "input", raw, "err", err)
		return m
	}
	if res.Message != "" {
		m.Status = StatusBar{Text: res.Message}
	}
	m.logger.Debug("command executed", "type", cmd.Type)
	return m
}

func (m *Model) addFromPalette(text string, section model.Section) {
	m.Store().Add(text, section)
	m.Focus.Set(m.Store(), section, m.Store().Len(section)-1)
}

// stats summarizes today's journal entries.
func (m Model) stats() (commands.Result, error) {
	if m.journal == nil {
		return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "journal is disabled"}
	}
	ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
	defer cancel()
	since := startOfDay(m.now())
	sessions, err := m.journal.ListSessions(ctx, storage.SessionListFilter{
		Kind:  timer.SessionWork.String(),
		Since: &since,
	})
	if err != nil {
		return commands.Result{}, fmt.Errorf("stats: %w", err)
	}
	done, abandoned, focused := 0, 0, 0
	for _, s := range sessions {
		if s.CompletedAt == nil {
			abandoned++
			continue
		}
		done++
		focused += s.PlannedSeconds
	}
	msg := fmt.Sprintf("today: %d pomodoro(s), %d min focused, %d abandoned", done, focused/60, abandoned)
	syncs, err := m.journal.ListSyncs(ctx, storage.SyncListFilter{Limit: 1})
	if err != nil {
		return commands.Result{}, fmt.Errorf("stats: %w", err)
	}
	if len(syncs) > 0 {
		msg += fmt.Sprintf(", last sync %s", syncs[0].AppliedAt.Local().Format("Jan 2 15:04"))
	}
	return commands.Result{Message: msg}, nil
}
