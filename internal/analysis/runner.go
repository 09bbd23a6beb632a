package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"pgnlens/internal/classify"
	"pgnlens/internal/config"
	"pgnlens/internal/export"
	"pgnlens/internal/history"
	"pgnlens/internal/logging"
	"pgnlens/internal/pgn"
	"pgnlens/internal/scan"
)

// Result summarises a completed run.
type Result struct {
	RunID      string
	OutputFile string
	Records    []classify.Record
	// Skipped counts files that could not be read, or whose player could not
	// be matched when strict colour resolution is on.
	Skipped int
	// Unreadable counts entries under the input directory the scan could
	// not read.
	Unreadable int
	Duration   time.Duration
}

// Runner executes analyze batches for one configuration.
type Runner struct {
	cfg    *config.Config
	store  *history.Store
	logger *slog.Logger
	newID  func() string
	now    func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithRunIDs overrides run ID generation.
func WithRunIDs(fn func() string) Option {
	return func(r *Runner) {
		if fn != nil {
			r.newID = fn
		}
	}
}

// NewRunner builds a Runner. store may be nil to skip history recording.
func NewRunner(cfg *config.Config, store *history.Store, logger *slog.Logger, opts ...Option) *Runner {
	r := &Runner{
		cfg:    cfg,
		store:  store,
		logger: logging.NewComponentLogger(logger, "analysis"),
		newID:  uuid.NewString,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run analyses every game under the configured input directory on behalf of
// username and writes the report to the configured output file.
func (r *Runner) Run(ctx context.Context, username string) (*Result, error) {
	if username == "" {
		return nil, ErrNoUsername
	}
	start := r.now()

	listing, err := scan.Games(r.cfg.Paths.InputDir, scan.ExtensionMatcher(r.cfg.Analysis.Extensions...))
	if err != nil {
		return nil, err
	}
	sources := listing.Sources
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoGames, r.cfg.Paths.InputDir)
	}

	output := r.cfg.Paths.OutputFile
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	lock := flock.New(output + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire output lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrLocked, output)
	}
	defer func() { _ = lock.Unlock() }()

	result := &Result{RunID: r.newID(), OutputFile: output, Unreadable: len(listing.Unreadable)}
	ctx = logging.WithRunID(ctx, result.RunID)
	logger := logging.WithContext(ctx, r.logger)
	for _, entry := range listing.Unreadable {
		logging.WarnWithContext(logger, "input entry unreadable", "input_unreadable",
			logging.String(logging.FieldSource, entry.RelPath),
			logging.Error(entry.Err),
			logging.String(logging.FieldErrorHint, "check permissions under the input directory"),
			logging.String(logging.FieldImpact, "games inside are left out of the report"))
	}
	logger.Info("analysis started",
		logging.String(logging.FieldEventType, "analysis_started"),
		logging.String("username", username),
		logging.String("input_dir", r.cfg.Paths.InputDir),
		logging.Int("files", len(sources)))

	result.Records = make([]classify.Record, 0, len(sources))
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, ok := r.classifySource(ctx, src, username)
		if !ok {
			result.Skipped++
			continue
		}
		result.Records = append(result.Records, rec)
	}

	if err := export.WriteFile(output, result.Records); err != nil {
		logging.ErrorWithContext(logger, "report write failed", "report_write_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check that the output directory is writable"))
		return nil, err
	}

	r.recordHistory(ctx, logger, username, start, result.Records)

	result.Duration = r.now().Sub(start)
	logger.Info("analysis completed",
		logging.String(logging.FieldEventType, "analysis_completed"),
		logging.Int("records", len(result.Records)),
		logging.Int("skipped", result.Skipped),
		logging.Int("unreadable", result.Unreadable),
		logging.String("output", output),
		logging.Duration("duration", result.Duration))
	return result, nil
}

func (r *Runner) classifySource(ctx context.Context, src scan.Source, username string) (classify.Record, bool) {
	logger := logging.WithContext(logging.WithGame(ctx, src.Bucket, src.Name), r.logger)

	game, err := readGame(src)
	if err != nil {
		logging.WarnWithContext(logger, "game file unreadable", "game_unreadable",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check file permissions and encoding"))
		return classify.Record{}, false
	}

	cctx := classify.Context{
		Username:   username,
		Bucket:     src.Bucket,
		Source:     src.Name,
		LossBucket: r.cfg.Analysis.LossBucket,
	}
	if !r.cfg.Analysis.StrictColor {
		rec := classify.Enrich(game, cctx)
		logger.Debug("game classified", logging.Int("move_count", rec.MoveCount), logging.String("color", string(rec.Color)))
		return rec, true
	}
	rec, err := classify.EnrichStrict(game, cctx)
	if err != nil {
		logging.WarnWithContext(logger, "player not in game", "game_player_mismatch",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the username or disable analysis.strict_color"))
		return classify.Record{}, false
	}
	return rec, true
}

func (r *Runner) recordHistory(ctx context.Context, logger *slog.Logger, username string, start time.Time, records []classify.Record) {
	if r.store == nil {
		return
	}
	runID, _ := logging.RunIDFromContext(ctx)
	err := r.store.BeginRun(ctx, history.Run{
		ID:         runID,
		Username:   username,
		InputDir:   r.cfg.Paths.InputDir,
		OutputFile: r.cfg.Paths.OutputFile,
		StartedAt:  start,
	})
	if err == nil {
		err = r.store.SaveRecords(ctx, runID, records)
	}
	if err == nil {
		err = r.store.FinishRun(ctx, runID, len(records))
	}
	if err != nil {
		logging.WarnWithContext(logger, "history not recorded", "history_write_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "delete the history database if the schema changed"),
			logging.String(logging.FieldImpact, "the CSV report was written but `pgnlens summary` will not include this run"))
	}
}

func readGame(src scan.Source) (pgn.Game, error) {
	f, err := src.Open()
	if err != nil {
		return pgn.Game{}, err
	}
	defer f.Close()
	return pgn.ParseReader(f)
}
