// Package store persists reconciliation job records in SQLite. Each
// record tracks the uploaded file paths, the job status, and the three
// JSON result sections. The store owns the status transitions: a job
// leaves PROCESSING exactly once.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/jayjaychukwu/reconcilation/pkg/errors"
	"github.com/jayjaychukwu/reconcilation/pkg/reconcile"
)

// Record is one reconciliation job.
type Record struct {
	TaskID          string
	SourceFile      string
	TargetFile      string
	Status          reconcile.Status
	MissingInTarget json.RawMessage
	MissingInSource json.RawMessage
	Discrepancies   json.RawMessage
	ErrorMessage    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Store wraps the SQLite connection holding job records.
type Store struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database at dbPath and runs
// migrations.
func Open(dbPath string) (*Store, error) {
	conn, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, errors.WrapStore("open", "", err)
	}
	// SQLite supports one writer; a single connection avoids SQLITE_BUSY.
	conn.SetMaxOpenConns(1)

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	const schema = `CREATE TABLE IF NOT EXISTS reconciliation_records (
		task_id TEXT PRIMARY KEY,
		source_file TEXT NOT NULL,
		target_file TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'PROCESSING',
		missing_in_target TEXT,
		missing_in_source TEXT,
		discrepancies TEXT,
		error_message TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`
	if _, err := s.conn.Exec(schema); err != nil {
		return errors.WrapStore("migrate", "", err)
	}
	const index = `CREATE INDEX IF NOT EXISTS idx_records_created_at
		ON reconciliation_records (created_at)`
	if _, err := s.conn.Exec(index); err != nil {
		return errors.WrapStore("migrate", "", err)
	}
	return nil
}

// Create inserts a new PROCESSING record for the two uploaded files and
// returns it with a fresh task ID.
func (s *Store) Create(ctx context.Context, sourceFile, targetFile string) (*Record, error) {
	now := time.Now().UTC()
	rec := &Record{
		TaskID:     uuid.NewString(),
		SourceFile: sourceFile,
		TargetFile: targetFile,
		Status:     reconcile.StatusProcessing,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	const q = `INSERT INTO reconciliation_records
		(task_id, source_file, target_file, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := s.conn.ExecContext(ctx, q,
		rec.TaskID, rec.SourceFile, rec.TargetFile, rec.Status, rec.CreatedAt, rec.UpdatedAt); err != nil {
		return nil, errors.WrapStore("create", rec.TaskID, err)
	}
	return rec, nil
}

// Get returns the record for a task ID, or a NotFoundError.
func (s *Store) Get(ctx context.Context, taskID string) (*Record, error) {
	const q = `SELECT task_id, source_file, target_file, status,
		missing_in_target, missing_in_source, discrepancies,
		error_message, created_at, updated_at
		FROM reconciliation_records WHERE task_id = ?`

	var (
		rec                      Record
		status                   string
		missingT, missingS, disc sql.NullString
	)
	err := s.conn.QueryRowContext(ctx, q, taskID).Scan(
		&rec.TaskID, &rec.SourceFile, &rec.TargetFile, &status,
		&missingT, &missingS, &disc,
		&rec.ErrorMessage, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("job", taskID)
	}
	if err != nil {
		return nil, errors.WrapStore("get", taskID, err)
	}

	rec.Status = reconcile.Status(status)
	if missingT.Valid {
		rec.MissingInTarget = json.RawMessage(missingT.String)
	}
	if missingS.Valid {
		rec.MissingInSource = json.RawMessage(missingS.String)
	}
	if disc.Valid {
		rec.Discrepancies = json.RawMessage(disc.String)
	}
	return &rec, nil
}

// MarkSuccess stores the result sections and flips the record from
// PROCESSING to SUCCESS. It fails with ErrAlreadyProcessed when the
// record has already left PROCESSING.
func (s *Store) MarkSuccess(ctx context.Context, taskID string, result *reconcile.Result) error {
	missingT, err := json.Marshal(result.MissingInTarget)
	if err != nil {
		return errors.WrapStore("update", taskID, err)
	}
	missingS, err := json.Marshal(result.MissingInSource)
	if err != nil {
		return errors.WrapStore("update", taskID, err)
	}
	disc, err := json.Marshal(result.Discrepancies)
	if err != nil {
		return errors.WrapStore("update", taskID, err)
	}

	const q = `UPDATE reconciliation_records
		SET status = ?, missing_in_target = ?, missing_in_source = ?,
		    discrepancies = ?, updated_at = ?
		WHERE task_id = ? AND status = ?`
	return s.transition(ctx, taskID, q,
		reconcile.StatusSuccess, string(missingT), string(missingS), string(disc),
		time.Now().UTC(), taskID, reconcile.StatusProcessing)
}

// MarkFailed records the failure message and flips the record from
// PROCESSING to FAILED.
func (s *Store) MarkFailed(ctx context.Context, taskID, message string) error {
	const q = `UPDATE reconciliation_records
		SET status = ?, error_message = ?, updated_at = ?
		WHERE task_id = ? AND status = ?`
	return s.transition(ctx, taskID, q,
		reconcile.StatusFailed, message, time.Now().UTC(), taskID, reconcile.StatusProcessing)
}

// transition performs a guarded terminal status update. The WHERE clause
// only matches PROCESSING rows, so a second completion attempt affects
// zero rows and reports ErrAlreadyProcessed.
func (s *Store) transition(ctx context.Context, taskID, query string, args ...any) error {
	res, err := s.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.WrapStore("update", taskID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.WrapStore("update", taskID, err)
	}
	if affected == 0 {
		if _, getErr := s.Get(ctx, taskID); getErr != nil {
			return getErr
		}
		return errors.WrapStore("update", taskID, errors.ErrAlreadyProcessed)
	}
	return nil
}

// DeleteOlderThan removes records created before the cutoff and returns
// them so the caller can remove the uploaded files.
func (s *Store) DeleteOlderThan(ctx context.Context, cutoff time.Time) ([]Record, error) {
	const sel = `SELECT task_id, source_file, target_file
		FROM reconciliation_records WHERE created_at < ?`
	rows, err := s.conn.QueryContext(ctx, sel, cutoff.UTC())
	if err != nil {
		return nil, errors.WrapStore("delete", "", err)
	}
	defer rows.Close()

	var old []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.TaskID, &rec.SourceFile, &rec.TargetFile); err != nil {
			return nil, errors.WrapStore("delete", "", err)
		}
		old = append(old, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapStore("delete", "", err)
	}

	const del = `DELETE FROM reconciliation_records WHERE created_at < ?`
	if _, err := s.conn.ExecContext(ctx, del, cutoff.UTC()); err != nil {
		return nil, errors.WrapStore("delete", "", err)
	}
	return old, nil
}
