package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"pgnlens/internal/config"
	"pgnlens/internal/export"
	"pgnlens/internal/history"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded analyze runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withHistory(cmd.Context(), func(store *history.Store) error {
				return listRuns(cmd.Context(), cmd, store, limit)
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")

	cmd.AddCommand(newRunsExportCommand(ctx))
	cmd.AddCommand(newRunsDeleteCommand(ctx))
	return cmd
}

func newRunsExportCommand(ctx *commandContext) *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "export <run-id>",
		Short: "Write the stored records of a run to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := config.ExpandPath(strings.TrimSpace(outputFile))
			if err != nil {
				return fmt.Errorf("resolve output file: %w", err)
			}
			runID := strings.TrimSpace(args[0])
			return ctx.withHistory(cmd.Context(), func(store *history.Store) error {
				run, err := store.GetRun(cmd.Context(), runID)
				if err != nil {
					return err
				}
				if run == nil {
					return fmt.Errorf("%w: %s", history.ErrRunNotFound, runID)
				}
				records, err := store.Records(cmd.Context(), runID)
				if err != nil {
					return err
				}
				if err := export.WriteFile(target, records); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d records from run %s to '%s'.\n", len(records), runID, target)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Destination CSV file")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func newRunsDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <run-id>",
		Short: "Remove a run and its records from the history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runID := strings.TrimSpace(args[0])
			return ctx.withHistory(cmd.Context(), func(store *history.Store) error {
				if err := store.DeleteRun(cmd.Context(), runID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted run %s\n", runID)
				return nil
			})
		},
	}
}

func listRuns(ctx context.Context, cmd *cobra.Command, store *history.Store, limit int) error {
	runs, err := store.Runs(ctx, limit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded.")
		return nil
	}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		status := "incomplete"
		if run.Finished() {
			status = "done"
		}
		rows = append(rows, []string{
			run.ID,
			run.StartedAt.Local().Format(time.DateTime),
			run.Username,
			strconv.Itoa(run.RecordCount),
			status,
			run.OutputFile,
		})
	}
	headers := []string{"Run", "Started", "Player", "Games", "Status", "Output"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft}
	fmt.Fprintln(out, renderTable(headers, rows, aligns))
	return nil
}
