package update

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/sandeepkv93/pomo/internal/config"
	"github.com/sandeepkv93/pomo/internal/model"
	"github.com/sandeepkv93/pomo/internal/storage"
)

// startSync attaches the default checklist when none is loaded, then opens
// the review overlay with the computed diff.
func (m Model) startSync() Model {
	if !m.manager.HasFile() {
		path, err := config.ExpandHome(m.cfg.Sync.DefaultFile)
		if err != nil {
			m.showError(err)
			return m
		}
		if err := m.manager.CreateDefaultFile(path); err != nil {
			m.showError(err)
			return m
		}
		m.Focus.Clamp(m.Store())
		m.logger.Info("checklist attached", "path", m.manager.Path())
	}

	items, err := m.manager.ComputeSyncItems()
	if err != nil {
		m.showError(err)
		return m
	}
	m.logger.Debug("sync computed", "items", len(items), "path", m.manager.Path())
	m.Sync = SyncReview{Items: items}
	m.Overlay = OverlaySync
	return m
}

func (m Model) handleSyncKey(msg tea.KeyMsg) Model {
	review := &m.Sync
	switch msg.String() {
	case "j", "down":
		if review.Cursor+1 < len(review.Items) {
			review.Cursor++
		}
	case "k", "up":
		if review.Cursor > 0 {
			review.Cursor--
		}
	case " ":
		review.set(model.ResolutionIncomplete)
	case "x":
		review.set(model.ResolutionComplete)
	case "d":
		review.set(model.ResolutionRemove)
	case "esc":
		m.Sync = SyncReview{}
		m.Overlay = OverlayNone
		m.Status = StatusBar{Text: "sync cancelled"}
	case "enter":
		return m.applySync()
	}
	return m
}

func (r *SyncReview) set(res model.Resolution) {
	if r.Cursor < 0 || r.Cursor >= len(r.Items) {
		return
	}
	r.Items[r.Cursor].Resolution = res
}

func (m Model) applySync() Model {
	items := m.Sync.Items
	m.Sync = SyncReview{}
	m.Overlay = OverlayNone
	if len(items) == 0 {
		m.Status = StatusBar{Text: "already in sync"}
		return m
	}

	err := m.manager.ApplySync(items)
	m.Focus.Clamp(m.Store())
	if err != nil {
		m.showError(err)
		return m
	}

	rec := storage.SyncRecord{Path: m.manager.Path(), AppliedAt: m.now()}
	for _, item := range items {
		switch item.Resolution {
		case model.ResolutionIncomplete:
			rec.IncompleteCount++
		case model.ResolutionComplete:
			rec.CompleteCount++
		case model.ResolutionRemove:
			rec.RemovedCount++
		}
	}
	m.Status = StatusBar{Text: fmt.Sprintf("synced %d item(s) with %s", len(items), rec.Path)}
	m.logger.Info("sync applied", "items", len(items), "path", rec.Path,
		"incomplete", rec.IncompleteCount, "complete", rec.CompleteCount, "removed", rec.RemovedCount)
	m.recordSync(rec)
	return m
}

func (m *Model) recordSync(rec storage.SyncRecord) {
	if m.journal == nil {
		return
	}
	rec.ID = uuid.NewString()
	ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
	defer cancel()
	if err := m.journal.RecordSync(ctx, rec); err != nil {
		m.logger.Error("journal write failed", "err", err)
		m.Status = StatusBar{Text: fmt.Sprintf("journal: %v", err), IsError: true}
	}
}
