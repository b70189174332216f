package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Fixed width so that text comparisons in SQL order the same as time.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type SQLiteRepository struct {
	db *sql.DB
}

var _ Journal = (*SQLiteRepository)(nil)

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	return &SQLiteRepository{db: db}, nil
}

// OpenSQLite opens the journal at path, creating the parent directory and
// applying migrations.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create journal dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) RecordSession(ctx context.Context, in Session) error {
	if strings.TrimSpace(in.ID) == "" {
		return errors.New("storage: session id is required")
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, kind, task_text, planned_seconds, started_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		in.ID, in.Kind, in.TaskText, in.PlannedSeconds, mustTime(in.StartedAt), nullTime(in.CompletedAt),
	)
	if err != nil {
		return fmt.Errorf("record session %s: %w", in.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) GetSession(ctx context.Context, id string) (Session, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, kind, task_text, planned_seconds, started_at, completed_at
		FROM sessions WHERE id = ?`, id)
	item, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, ErrNotFound
		}
		return Session{}, err
	}
	return item, nil
}

func (r *SQLiteRepository) DeleteSession(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListSessions(ctx context.Context, filter SessionListFilter) ([]Session, error) {
	query := `SELECT id, kind, task_text, planned_seconds, started_at, completed_at FROM sessions`
	clauses := make([]string, 0, 3)
	args := make([]any, 0, 5)
	if filter.Kind != "" {
		clauses = append(clauses, "kind = ?")
		args = append(args, filter.Kind)
	}
	if filter.Since != nil {
		clauses = append(clauses, "started_at >= ?")
		args = append(args, mustTime(*filter.Since))
	}
	if filter.CompletedOnly {
		clauses = append(clauses, "completed_at IS NOT NULL")
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY started_at DESC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	return queryAll(ctx, r.db, scanSession, query, args...)
}

// CountCompletedSince counts sessions of kind that finished at or after since.
func (r *SQLiteRepository) CountCompletedSince(ctx context.Context, kind string, since time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM sessions
		WHERE kind = ? AND completed_at IS NOT NULL AND completed_at >= ?`,
		kind, mustTime(since),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s sessions: %w", kind, err)
	}
	return n, nil
}

func (r *SQLiteRepository) RecordSync(ctx context.Context, in SyncRecord) error {
	if strings.TrimSpace(in.ID) == "" {
		return errors.New("storage: sync record id is required")
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sync_log (id, path, incomplete_count, complete_count, removed_count, applied_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		in.ID, in.Path, in.IncompleteCount, in.CompleteCount, in.RemovedCount, mustTime(in.AppliedAt),
	)
	if err != nil {
		return fmt.Errorf("record sync %s: %w", in.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) ListSyncs(ctx context.Context, filter SyncListFilter) ([]SyncRecord, error) {
	query := `SELECT id, path, incomplete_count, complete_count, removed_count, applied_at FROM sync_log`
	args := make([]any, 0, 3)
	if filter.Path != "" {
		query += ` WHERE path = ?`
		args = append(args, filter.Path)
	}
	query += ` ORDER BY applied_at DESC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	return queryAll(ctx, r.db, scanSyncRecord, query, args...)
}

func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UTC().Format(sqliteTimeLayout)
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseNullableTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	tm, err := time.Parse(sqliteTimeLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

// applyPagination appends LIMIT/OFFSET; sqlite needs a LIMIT before OFFSET.
func applyPagination(args *[]any, limit, offset int) string {
	switch {
	case limit <= 0 && offset <= 0:
		return ""
	case offset <= 0:
		*args = append(*args, limit)
		return " LIMIT ?"
	default:
		if limit <= 0 {
			limit = -1
		}
		*args = append(*args, limit, offset)
		return " LIMIT ? OFFSET ?"
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func queryAll[T any](ctx context.Context, db *sql.DB, scan func(scanner) (T, error), query string, args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func scanSession(s scanner) (Session, error) {
	var out Session
	var started string
	var completed sql.NullString
	if err := s.Scan(&out.ID, &out.Kind, &out.TaskText, &out.PlannedSeconds, &started, &completed); err != nil {
		return Session{}, err
	}
	startedAt, err := parseRequiredTime(started)
	if err != nil {
		return Session{}, err
	}
	completedAt, err := parseNullableTime(completed)
	if err != nil {
		return Session{}, err
	}
	out.StartedAt = startedAt
	out.CompletedAt = completedAt
	return out, nil
}

func scanSyncRecord(s scanner) (SyncRecord, error) {
	var out SyncRecord
	var applied string
	if err := s.Scan(&out.ID, &out.Path, &out.IncompleteCount, &out.CompleteCount, &out.RemovedCount, &applied); err != nil {
		return SyncRecord{}, err
	}
	appliedAt, err := parseRequiredTime(applied)
	if err != nil {
		return SyncRecord{}, err
	}
	out.AppliedAt = appliedAt
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
