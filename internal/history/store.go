package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"pgnlens/internal/classify"
)

// Run describes one analyze invocation.
type Run struct {
	ID          string
	Username    string
	InputDir    string
	OutputFile  string
	StartedAt   time.Time
	FinishedAt  time.Time
	RecordCount int
}

// Finished reports whether FinishRun was recorded for the run.
func (r Run) Finished() bool {
	return !r.FinishedAt.IsZero()
}

// Store manages run history persistence backed by SQLite.
type Store struct {
	db *sql.DB
}

// Open initializes or connects to the history database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// BeginRun records the start of a run.
func (s *Store) BeginRun(ctx context.Context, run Run) error {
	if run.ID == "" {
		return errors.New("run id is required")
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, username, input_dir, output_file, started_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID,
		run.Username,
		nullableString(run.InputDir),
		nullableString(run.OutputFile),
		run.StartedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// SaveRecords stores records for runID in one transaction, preserving order.
func (s *Store) SaveRecords(ctx context.Context, runID string, records []classify.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin records tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO games (
            run_id, position, source, bucket, color, rating_diff, move_count,
            game_length, opening, loss_quality, termination, tags_json
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare game insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		tagsJSON, err := json.Marshal(rec.Tags)
		if err != nil {
			return fmt.Errorf("marshal tags for %s: %w", rec.Source, err)
		}
		if _, err := stmt.ExecContext(ctx,
			runID,
			i,
			rec.Source,
			rec.Bucket,
			string(rec.Color),
			rec.RatingDiff,
			rec.MoveCount,
			string(rec.Length),
			rec.Opening,
			string(rec.LossQuality),
			string(rec.Termination),
			string(tagsJSON),
		); err != nil {
			return fmt.Errorf("insert game %s: %w", rec.Source, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit records: %w", err)
	}
	return nil
}

// FinishRun stamps the run's completion time and record count.
func (s *Store) FinishRun(ctx context.Context, runID string, count int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, record_count = ? WHERE id = ?`,
		time.Now().UTC().Format(timeLayout), count, runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("finish run: %w: %s", ErrRunNotFound, runID)
	}
	return nil
}

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const runColumns = "id, username, input_dir, output_file, started_at, finished_at, record_count"

// Runs returns the most recent runs, newest first. A limit <= 0 returns all.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun fetches a run by ID; it returns nil when the run does not exist.
func (s *Store) GetRun(ctx context.Context, runID string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, runID)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return &run, nil
}

// LatestRun returns the newest finished run, or nil when none exist.
func (s *Store) LatestRun(ctx context.Context) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE finished_at IS NOT NULL ORDER BY started_at DESC, rowid DESC LIMIT 1`)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest run: %w", err)
	}
	return &run, nil
}

// Records returns the stored records of a run in their original order.
func (s *Store) Records(ctx context.Context, runID string) ([]classify.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT source, bucket, color, rating_diff, move_count,
            game_length, opening, loss_quality, termination, tags_json
        FROM games WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	defer rows.Close()

	var records []classify.Record
	for rows.Next() {
		var (
			rec                                     classify.Record
			color, length, lossQuality, termination string
			tagsJSON                                string
		)
		if err := rows.Scan(&rec.Source, &rec.Bucket, &color, &rec.RatingDiff, &rec.MoveCount,
			&length, &rec.Opening, &lossQuality, &termination, &tagsJSON); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		rec.Color = classify.Color(color)
		rec.Length = classify.LengthBucket(length)
		rec.LossQuality = classify.LossQuality(lossQuality)
		rec.Termination = classify.Termination(termination)
		if err := json.Unmarshal([]byte(tagsJSON), &rec.Tags); err != nil {
			return nil, fmt.Errorf("decode tags for %s: %w", rec.Source, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// DeleteRun removes a run and its games.
func (s *Store) DeleteRun(ctx context.Context, runID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Pooled connections may not carry the foreign_keys pragma, so games are
	// removed explicitly rather than through the cascade.
	if _, err := tx.ExecContext(ctx, `DELETE FROM games WHERE run_id = ?`, runID); err != nil {
		return fmt.Errorf("delete games: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, runID)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return tx.Commit()
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (Run, error) {
	var (
		run         Run
		inputDir    sql.NullString
		outputFile  sql.NullString
		startedRaw  string
		finishedRaw sql.NullString
	)
	if err := scanner.Scan(&run.ID, &run.Username, &inputDir, &outputFile, &startedRaw, &finishedRaw, &run.RecordCount); err != nil {
		return Run{}, err
	}
	run.InputDir = inputDir.String
	run.OutputFile = outputFile.String
	run.StartedAt = parseTime(startedRaw)
	if finishedRaw.Valid {
		run.FinishedAt = parseTime(finishedRaw.String)
	}
	return run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTime(raw string) time.Time {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}
