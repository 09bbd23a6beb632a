package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pgnlens/internal/analysis"
	"pgnlens/internal/config"
	"pgnlens/internal/history"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var inputDir string
	var outputFile string
	var noHistory bool
	var strictColor bool

	cmd := &cobra.Command{
		Use:   "analyze [username]",
		Short: "Classify downloaded games and write a CSV report",
		Long: "Scan the input directory for PGN files filed under win/, loss/ and draw/,\n" +
			"classify each game from the given player's point of view and write one CSV row per game.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				cfg.Player.Username = strings.TrimSpace(args[0])
			}
			if err := applyAnalyzeFlags(cfg, inputDir, outputFile, noHistory, strictColor); err != nil {
				return err
			}
			if err := cfg.RequireUsername(); err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}

			logger, err := ctx.logger(cfg)
			if err != nil {
				return err
			}

			var store *history.Store
			if cfg.History.Enabled {
				store, err = history.Open(cmd.Context(), cfg.Paths.Database)
				if err != nil {
					return fmt.Errorf("open history: %w", err)
				}
				defer store.Close()
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			fmt.Fprintf(out, "Scanning '%s' for PGN files...\n", cfg.Paths.InputDir)

			result, err := analysis.NewRunner(cfg, store, logger).Run(cmd.Context(), cfg.Player.Username)
			if errors.Is(err, analysis.ErrNoGames) {
				fmt.Fprintln(out, "No PGN files found.")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Found %d games. Generating CSV...\n", len(result.Records)+result.Skipped)
			fmt.Fprintf(out, "\nSuccessfully generated '%s' with %d records.\n", result.OutputFile, len(result.Records))
			if result.Skipped > 0 {
				fmt.Fprintln(out, renderStatusLine("Skipped files", statusWarn, fmt.Sprintf("%d (see log)", result.Skipped), colorize))
			}
			if result.Unreadable > 0 {
				fmt.Fprintln(out, renderStatusLine("Unreadable entries", statusWarn, fmt.Sprintf("%d under the input dir (see log)", result.Unreadable), colorize))
			}
			if store != nil {
				fmt.Fprintln(out, renderStatusLine("History run", statusOK, result.RunID, colorize))
			}
			fmt.Fprintln(out, "\nColumns included:")
			fmt.Fprintln(out, "  - ColorPlayed, RatingDiff, MoveCount, GameLength")
			fmt.Fprintln(out, "  - OpeningName, LossQuality, TerminationType")
			fmt.Fprintln(out, "  - Plus standard PGN headers (Event, Date, Result, etc.)")
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputDir, "input", "i", "", "Input directory with PGN files (default from config: chess_games)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output CSV file (default from config: chess_analytics.csv)")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record this run in the history database")
	cmd.Flags().BoolVar(&strictColor, "strict-color", false, "Skip games where the username plays neither side")
	return cmd
}

func applyAnalyzeFlags(cfg *config.Config, inputDir, outputFile string, noHistory, strictColor bool) error {
	if value := strings.TrimSpace(inputDir); value != "" {
		expanded, err := config.ExpandPath(value)
		if err != nil {
			return fmt.Errorf("resolve input dir: %w", err)
		}
		cfg.Paths.InputDir = expanded
	}
	if value := strings.TrimSpace(outputFile); value != "" {
		expanded, err := config.ExpandPath(value)
		if err != nil {
			return fmt.Errorf("resolve output file: %w", err)
		}
		cfg.Paths.OutputFile = expanded
	}
	if noHistory {
		cfg.History.Enabled = false
	}
	if strictColor {
		cfg.Analysis.StrictColor = true
	}
	return nil
}
