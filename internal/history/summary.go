package history

import (
	"context"
	"database/sql"
	"fmt"
)

// Count is one row of a grouped tally.
type Count struct {
	Label string
	Games int
}

// Summary aggregates the games of one run.
type Summary struct {
	Run           Run
	Total         int
	AvgRatingDiff float64
	AvgMoveCount  float64
	ByBucket      []Count
	ByColor       []Count
	ByLength      []Count
	ByLossQuality []Count
	ByTermination []Count
	TopOpenings   []Count
}

// groupable maps the summary dimensions to their games columns.
var groupable = map[string]string{
	"bucket":       "bucket",
	"color":        "color",
	"game_length":  "game_length",
	"loss_quality": "loss_quality",
	"termination":  "termination",
	"opening":      "opening",
}

// Summarize tallies the games stored for runID. topOpenings bounds the
// opening list; values <= 0 keep every opening.
func (s *Store) Summarize(ctx context.Context, runID string, topOpenings int) (*Summary, error) {
	run, err := s.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, fmt.Errorf("summarize: %w: %s", ErrRunNotFound, runID)
	}

	summary := &Summary{Run: *run}
	var avgDiff, avgMoves sql.NullFloat64
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1), AVG(rating_diff), AVG(move_count) FROM games WHERE run_id = ?`, runID,
	).Scan(&summary.Total, &avgDiff, &avgMoves); err != nil {
		return nil, fmt.Errorf("summarize totals: %w", err)
	}
	summary.AvgRatingDiff = avgDiff.Float64
	summary.AvgMoveCount = avgMoves.Float64

	groups := []struct {
		dimension string
		limit     int
		dst       *[]Count
	}{
		{"bucket", 0, &summary.ByBucket},
		{"color", 0, &summary.ByColor},
		{"game_length", 0, &summary.ByLength},
		{"loss_quality", 0, &summary.ByLossQuality},
		{"termination", 0, &summary.ByTermination},
		{"opening", topOpenings, &summary.TopOpenings},
	}
	for _, g := range groups {
		counts, err := s.countBy(ctx, runID, g.dimension, g.limit)
		if err != nil {
			return nil, err
		}
		*g.dst = counts
	}
	return summary, nil
}

func (s *Store) countBy(ctx context.Context, runID, dimension string, limit int) ([]Count, error) {
	column, ok := groupable[dimension]
	if !ok {
		return nil, fmt.Errorf("summarize: unknown dimension %q", dimension)
	}
	query := `SELECT ` + column + `, COUNT(1) AS n FROM games WHERE run_id = ? GROUP BY ` + column + ` ORDER BY n DESC, ` + column
	args := []any{runID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("summarize by %s: %w", dimension, err)
	}
	defer rows.Close()

	var counts []Count
	for rows.Next() {
		var c Count
		if err := rows.Scan(&c.Label, &c.Games); err != nil {
			return nil, fmt.Errorf("scan %s count: %w", dimension, err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
