package storage

import "time"

// Session is one timer session. CompletedAt is nil when the session was
// reset before reaching zero.
type Session struct {
	ID             string
	Kind           string
	TaskText       string
	PlannedSeconds int
	StartedAt      time.Time
	CompletedAt    *time.Time
}

type SyncRecord struct {
	ID              string
	Path            string
	IncompleteCount int
	CompleteCount   int
	RemovedCount    int
	AppliedAt       time.Time
}

type SessionListFilter struct {
	Kind          string
	Since         *time.Time
	CompletedOnly bool
	Limit         int
	Offset        int
}

type SyncListFilter struct {
	Path   string
	Limit  int
	Offset int
}
