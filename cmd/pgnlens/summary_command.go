package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"pgnlens/internal/history"
)

func newSummaryCommand(ctx *commandContext) *cobra.Command {
	var topOpenings int

	cmd := &cobra.Command{
		Use:   "summary [run-id]",
		Short: "Summarize a recorded run (latest by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withHistory(cmd.Context(), func(store *history.Store) error {
				runID := ""
				if len(args) == 1 {
					runID = strings.TrimSpace(args[0])
				}
				return printSummary(cmd.Context(), cmd.OutOrStdout(), store, runID, topOpenings)
			})
		},
	}
	cmd.Flags().IntVar(&topOpenings, "openings", 10, "Number of openings to list (0 for all)")
	return cmd
}

func printSummary(ctx context.Context, out io.Writer, store *history.Store, runID string, topOpenings int) error {
	if runID == "" {
		latest, err := store.LatestRun(ctx)
		if err != nil {
			return err
		}
		if latest == nil {
			fmt.Fprintln(out, "No completed runs recorded.")
			return nil
		}
		runID = latest.ID
	}

	summary, err := store.Summarize(ctx, runID, topOpenings)
	if err != nil {
		return err
	}

	colorize := shouldColorize(out)
	for _, line := range renderSectionHeader("Run "+summary.Run.ID, colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, renderStatusLine("Player", statusInfo, summary.Run.Username, colorize))
	fmt.Fprintln(out, renderStatusLine("Games", statusInfo, strconv.Itoa(summary.Total), colorize))
	fmt.Fprintln(out, renderStatusLine("Avg rating diff", statusInfo, fmt.Sprintf("%+.1f", summary.AvgRatingDiff), colorize))
	fmt.Fprintln(out, renderStatusLine("Avg moves", statusInfo, fmt.Sprintf("%.1f", summary.AvgMoveCount), colorize))

	sections := []struct {
		title  string
		counts []history.Count
	}{
		{"Result bucket", summary.ByBucket},
		{"Color", summary.ByColor},
		{"Game length", summary.ByLength},
		{"Loss quality", summary.ByLossQuality},
		{"Termination", summary.ByTermination},
		{"Opening", summary.TopOpenings},
	}
	for _, s := range sections {
		if len(s.counts) == 0 {
			continue
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderCountTable(s.title, s.counts, summary.Total))
	}
	return nil
}

func renderCountTable(title string, counts []history.Count, total int) string {
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		share := 0.0
		if total > 0 {
			share = float64(c.Games) * 100 / float64(total)
		}
		rows = append(rows, []string{c.Label, strconv.Itoa(c.Games), fmt.Sprintf("%.1f%%", share)})
	}
	return renderTable([]string{title, "Games", "Share"}, rows, []columnAlignment{alignLeft, alignRight, alignRight})
}
