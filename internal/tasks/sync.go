package tasks

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sandeepkv93/pomo/internal/checklist"
	"github.com/sandeepkv93/pomo/internal/model"
)

// SyncError reports a checklist file operation that failed during sync.
type SyncError struct {
	Op   string
	Path string
	Err  error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("sync %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// Manager ties a Store to an optional checklist file.
type Manager struct {
	store *Store
	file  *checklist.File
}

func NewManager() *Manager {
	return &Manager{store: NewStore()}
}

// Load reads the checklist at path: incomplete lines seed the backlog and
// complete lines seed the completed section.
func Load(path string) (*Manager, error) {
	file := &checklist.File{Path: path}
	doc, err := file.Read()
	if err != nil {
		return nil, &SyncError{Op: "load", Path: path, Err: err}
	}
	parsed := checklist.Parse(doc.Lines)
	m := &Manager{store: NewStore(), file: file}
	for _, text := range parsed.Incomplete {
		m.store.Add(text, model.SectionBacklog)
	}
	for _, text := range parsed.Complete {
		m.store.Add(text, model.SectionCompleted)
	}
	return m, nil
}

func (m *Manager) Store() *Store {
	return m.store
}

func (m *Manager) HasFile() bool {
	return m.file != nil
}

func (m *Manager) Path() string {
	if m.file == nil {
		return ""
	}
	return m.file.Path
}

// DefaultFilePath returns ~/.cache/pomo/tasks.md.
func DefaultFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".cache", "pomo", "tasks.md"), nil
}

// CreateDefaultFile attaches the checklist at path, creating it when
// missing, and merges its tasks into the store. An empty path means
// DefaultFilePath.
func (m *Manager) CreateDefaultFile(path string) error {
	if path == "" {
		resolved, err := DefaultFilePath()
		if err != nil {
			return &SyncError{Op: "create", Path: "", Err: err}
		}
		path = resolved
	}
	file := &checklist.File{Path: path}
	if err := file.Ensure(); err != nil {
		return &SyncError{Op: "create", Path: path, Err: err}
	}
	doc, err := file.Read()
	if err != nil {
		return &SyncError{Op: "read", Path: path, Err: err}
	}
	m.file = file

	parsed := checklist.Parse(doc.Lines)
	for _, text := range parsed.Incomplete {
		if !m.store.ContainsText(model.SectionBacklog, text) && !m.store.ContainsText(model.SectionCurrent, text) {
			m.store.Add(text, model.SectionBacklog)
		}
	}
	for _, text := range parsed.Complete {
		if !m.store.ContainsText(model.SectionCompleted, text) {
			m.store.Add(text, model.SectionCompleted)
		}
	}
	return nil
}

// ComputeSyncItems diffs the checklist file against the store. Nothing is
// mutated. Without a file the diff is empty.
func (m *Manager) ComputeSyncItems() ([]model.SyncItem, error) {
	if m.file == nil {
		return []model.SyncItem{}, nil
	}
	doc, err := m.file.Read()
	if err != nil {
		return nil, &SyncError{Op: "read", Path: m.file.Path, Err: err}
	}
	parsed := checklist.Parse(doc.Lines)

	appIncomplete := append(m.store.Texts(model.SectionBacklog), m.store.Texts(model.SectionCurrent)...)
	appComplete := m.store.Texts(model.SectionCompleted)
	fileIncomplete := textSet(parsed.Incomplete)
	fileComplete := textSet(parsed.Complete)
	inAppIncomplete := textSet(appIncomplete)
	inAppComplete := textSet(appComplete)

	items := make([]model.SyncItem, 0)
	add := func(text string, res model.Resolution) {
		items = append(items, model.SyncItem{Text: text, Resolution: res})
	}

	for _, text := range parsed.Incomplete {
		if !inAppIncomplete[text] && !inAppComplete[text] {
			add(text, model.ResolutionIncomplete)
		}
	}
	for _, text := range parsed.Complete {
		if !inAppIncomplete[text] && !inAppComplete[text] {
			add(text, model.ResolutionComplete)
		}
	}
	for _, text := range appIncomplete {
		if fileComplete[text] {
			add(text, model.ResolutionComplete)
		}
	}
	for _, text := range appComplete {
		if fileIncomplete[text] {
			add(text, model.ResolutionComplete)
		}
	}
	for _, text := range appIncomplete {
		if !fileIncomplete[text] && !fileComplete[text] {
			add(text, model.ResolutionIncomplete)
		}
	}
	for _, text := range appComplete {
		if !fileIncomplete[text] && !fileComplete[text] {
			add(text, model.ResolutionComplete)
		}
	}
	return items, nil
}

// ApplySync updates the store for every item and then rewrites the file.
// A failed write leaves the store already updated.
func (m *Manager) ApplySync(items []model.SyncItem) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	for _, item := range items {
		m.applyItem(item)
	}
	if m.file == nil {
		return nil
	}

	doc, err := m.file.Read()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return &SyncError{Op: "read", Path: m.file.Path, Err: err}
		}
		doc = checklist.ParseDocument("")
	}
	doc.Lines = checklist.Patch(doc.Lines, items)
	if err := m.file.Write(doc); err != nil {
		return &SyncError{Op: "write", Path: m.file.Path, Err: err}
	}
	return nil
}

func (m *Manager) applyItem(item model.SyncItem) {
	s := m.store
	switch item.Resolution {
	case model.ResolutionIncomplete:
		s.RemoveText(model.SectionCompleted, item.Text)
		if !s.ContainsText(model.SectionBacklog, item.Text) && !s.ContainsText(model.SectionCurrent, item.Text) {
			s.Add(item.Text, model.SectionBacklog)
		}
	case model.ResolutionComplete:
		s.RemoveText(model.SectionBacklog, item.Text)
		s.RemoveText(model.SectionCurrent, item.Text)
		if !s.ContainsText(model.SectionCompleted, item.Text) {
			s.Add(item.Text, model.SectionCompleted)
		}
	case model.ResolutionRemove:
		for _, section := range model.Sections() {
			s.RemoveText(section, item.Text)
		}
	}
}

func textSet(texts []string) map[string]bool {
	out := make(map[string]bool, len(texts))
	for _, text := range texts {
		out[text] = true
	}
	return out
}
