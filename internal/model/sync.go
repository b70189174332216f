package model

import (
	"fmt"
	"strings"
)

type Resolution int

const (
	ResolutionIncomplete Resolution = iota
	ResolutionComplete
	ResolutionRemove
)

func (r Resolution) IsValid() bool {
	switch r {
	case ResolutionIncomplete, ResolutionComplete, ResolutionRemove:
		return true
	default:
		return false
	}
}

func (r Resolution) String() string {
	switch r {
	case ResolutionIncomplete:
		return "incomplete"
	case ResolutionComplete:
		return "complete"
	case ResolutionRemove:
		return "remove"
	default:
		return fmt.Sprintf("Resolution(%d)", int(r))
	}
}

// Checkbox is the marker shown for a resolution in the review list.
func (r Resolution) Checkbox() string {
	switch r {
	case ResolutionComplete:
		return "[x]"
	case ResolutionRemove:
		return "[~]"
	default:
		return "[ ]"
	}
}

// SyncItem is one disagreement between the app and the checklist file
// together with the action that will be applied to both.
type SyncItem struct {
	Text       string
	Resolution Resolution
}

func (i SyncItem) Validate() error {
	if strings.TrimSpace(i.Text) == "" {
		return fmt.Errorf("model: sync item text is required")
	}
	if !i.Resolution.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidResolution, int(i.Resolution))
	}
	return nil
}
