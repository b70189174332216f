package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidSection    = errors.New("model: invalid task section")
	ErrInvalidResolution = errors.New("model: invalid sync resolution")
)

type Section int

const (
	SectionBacklog Section = iota
	SectionCurrent
	SectionCompleted
)

var sectionNames = [...]string{"Backlog", "Current", "Completed"}

func Sections() []Section {
	return []Section{SectionBacklog, SectionCurrent, SectionCompleted}
}

func (s Section) IsValid() bool {
	switch s {
	case SectionBacklog, SectionCurrent, SectionCompleted:
		return true
	default:
		return false
	}
}

func (s Section) String() string {
	if !s.IsValid() {
		return fmt.Sprintf("Section(%d)", int(s))
	}
	return sectionNames[s]
}

// Next cycles Backlog -> Current -> Completed -> Backlog.
func (s Section) Next() Section {
	switch s {
	case SectionBacklog:
		return SectionCurrent
	case SectionCurrent:
		return SectionCompleted
	default:
		return SectionBacklog
	}
}

func (s Section) Prev() Section {
	switch s {
	case SectionBacklog:
		return SectionCompleted
	case SectionCurrent:
		return SectionBacklog
	default:
		return SectionCurrent
	}
}

func ParseSection(raw string) (Section, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "backlog":
		return SectionBacklog, nil
	case "current":
		return SectionCurrent, nil
	case "completed", "done":
		return SectionCompleted, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidSection, raw)
	}
}

// Task is identified by its text during sync. ID only tracks a row inside
// the running app and is never written to the checklist file.
type Task struct {
	ID   string
	Text string
}

func NewTask(text string) Task {
	return Task{ID: uuid.NewString(), Text: text}
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Text) == "" {
		return errors.New("model: task text is required")
	}
	return nil
}
