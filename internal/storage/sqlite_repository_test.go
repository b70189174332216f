package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "pomo-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func parseRFC3339(t *testing.T, value string) time.Time {
	t.Helper()
	out, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time: %v", err)
	}
	return out
}

func TestSessionRecordGetDelete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	started := parseRFC3339(t, "2026-02-09T12:00:00Z")
	completed := started.Add(25 * time.Minute)

	in := Session{
		ID:             "session-1",
		Kind:           "work",
		TaskText:       "Write report",
		PlannedSeconds: 1500,
		StartedAt:      started,
		CompletedAt:    &completed,
	}
	if err := repo.RecordSession(ctx, in); err != nil {
		t.Fatalf("record session: %v", err)
	}

	got, err := repo.GetSession(ctx, in.ID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if got.TaskText != in.TaskText || got.Kind != "work" || got.PlannedSeconds != 1500 {
		t.Fatalf("unexpected session: %#v", got)
	}
	if !got.StartedAt.Equal(started) || got.CompletedAt == nil || !got.CompletedAt.Equal(completed) {
		t.Fatalf("unexpected session times: %#v", got)
	}

	if err := repo.DeleteSession(ctx, in.ID); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	if _, err := repo.GetSession(ctx, in.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
	if err := repo.DeleteSession(ctx, in.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got: %v", err)
	}
}

func TestRecordSessionValidates(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	if err := repo.RecordSession(ctx, Session{Kind: "work", PlannedSeconds: 60, StartedAt: time.Now()}); err == nil {
		t.Fatal("expected missing id error")
	}
	if err := repo.RecordSession(ctx, Session{ID: "bad-kind", Kind: "nap", PlannedSeconds: 60, StartedAt: time.Now()}); err == nil {
		t.Fatal("expected check constraint error for unknown kind")
	}
	if err := repo.RecordSession(ctx, Session{ID: "zero", Kind: "work", StartedAt: time.Now()}); err == nil {
		t.Fatal("expected check constraint error for zero planned seconds")
	}
}

func TestListSessionsAndCount(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	day := parseRFC3339(t, "2026-02-09T00:00:00Z")

	record := func(id, kind string, offset time.Duration, done bool) {
		t.Helper()
		started := day.Add(offset)
		in := Session{ID: id, Kind: kind, PlannedSeconds: 1500, StartedAt: started}
		if done {
			end := started.Add(25*time.Minute + 500*time.Millisecond)
			in.CompletedAt = &end
		}
		if err := repo.RecordSession(ctx, in); err != nil {
			t.Fatalf("record %s: %v", id, err)
		}
	}
	record("yesterday", "work", -2*time.Hour, true)
	record("w1", "work", 9*time.Hour, true)
	record("b1", "short_break", 9*time.Hour+30*time.Minute, true)
	record("w2", "work", 10*time.Hour, true)
	record("w3", "work", 11*time.Hour, false)

	n, err := repo.CountCompletedSince(ctx, "work", day)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 completed work sessions today, got %d", n)
	}

	work, err := repo.ListSessions(ctx, SessionListFilter{Kind: "work", Since: &day})
	if err != nil {
		t.Fatalf("list work: %v", err)
	}
	if len(work) != 3 || work[0].ID != "w3" || work[2].ID != "w1" {
		t.Fatalf("unexpected work list: %#v", work)
	}

	done, err := repo.ListSessions(ctx, SessionListFilter{CompletedOnly: true, Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("list completed: %v", err)
	}
	if len(done) != 2 || done[0].ID != "b1" || done[1].ID != "w1" {
		t.Fatalf("unexpected paginated list: %#v", done)
	}

	all, err := repo.ListSessions(ctx, SessionListFilter{Offset: 4})
	if err != nil {
		t.Fatalf("list offset only: %v", err)
	}
	if len(all) != 1 || all[0].ID != "yesterday" {
		t.Fatalf("unexpected offset-only list: %#v", all)
	}
}

func TestSyncLog(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	first := parseRFC3339(t, "2026-02-09T12:00:00Z")

	if err := repo.RecordSync(ctx, SyncRecord{ID: "s1", Path: "/tmp/a.md", IncompleteCount: 2, AppliedAt: first}); err != nil {
		t.Fatalf("record sync: %v", err)
	}
	if err := repo.RecordSync(ctx, SyncRecord{ID: "s2", Path: "/tmp/a.md", CompleteCount: 1, RemovedCount: 3, AppliedAt: first.Add(time.Hour)}); err != nil {
		t.Fatalf("record sync: %v", err)
	}
	if err := repo.RecordSync(ctx, SyncRecord{ID: "s3", Path: "/tmp/b.md", AppliedAt: first}); err != nil {
		t.Fatalf("record sync: %v", err)
	}
	if err := repo.RecordSync(ctx, SyncRecord{Path: "/tmp/b.md", AppliedAt: first}); err == nil {
		t.Fatal("expected missing id error")
	}

	got, err := repo.ListSyncs(ctx, SyncListFilter{Path: "/tmp/a.md"})
	if err != nil {
		t.Fatalf("list syncs: %v", err)
	}
	if len(got) != 2 || got[0].ID != "s2" || got[0].RemovedCount != 3 || got[1].IncompleteCount != 2 {
		t.Fatalf("unexpected sync log: %#v", got)
	}
}

func TestOpenSQLiteCreatesDirAndMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "journal.db")
	repo, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer repo.Close()

	if err := repo.RecordSession(t.Context(), Session{ID: "x", Kind: "long_break", PlannedSeconds: 900, StartedAt: time.Now()}); err != nil {
		t.Fatalf("record after open: %v", err)
	}
}
