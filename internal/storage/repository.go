package storage

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("storage: not found")

// Journal records timer sessions and applied syncs.
type Journal interface {
	RecordSession(ctx context.Context, in Session) error
	GetSession(ctx context.Context, id string) (Session, error)
	DeleteSession(ctx context.Context, id string) error
	ListSessions(ctx context.Context, filter SessionListFilter) ([]Session, error)
	CountCompletedSince(ctx context.Context, kind string, since time.Time) (int, error)

	RecordSync(ctx context.Context, in SyncRecord) error
	ListSyncs(ctx context.Context, filter SyncListFilter) ([]SyncRecord, error)

	Close() error
}
