package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hansol-kim/building-ledger/internal/common"
	"github.com/hansol-kim/building-ledger/internal/extract"
	"github.com/hansol-kim/building-ledger/internal/llm/anthropic"
	"github.com/hansol-kim/building-ledger/internal/pipeline"
	"github.com/hansol-kim/building-ledger/internal/scoring"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "brochurectl",
		Short: "Building brochure extraction tool",
	}

	rootCmd.AddCommand(parseCmd(), scoreCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "parse <brochure.pdf>",
		Short: "Extract a structured listing from a brochure PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			doc, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read brochure: %w", err)
			}

			cfg := common.LoadConfig()
			fallback := anthropic.NewClient(anthropic.Config{
				APIKey:    cfg.LLM.APIKey,
				Model:     cfg.LLM.Model,
				MaxTokens: cfg.LLM.MaxTokens,
				Timeout:   cfg.LLM.Timeout,
			}, logger)
			proc := pipeline.NewProcessor(logger, extract.NewPDFExtractor(logger), fallback)

			res, err := proc.Process(cmd.Context(), doc)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(res.Listing, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			fmt.Fprintf(cmd.ErrOrStderr(), "method: %s, pages: %d, elapsed: %s\n",
				res.Method, res.Pages, res.Duration.Round(time.Millisecond))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	return cmd
}

func scoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score <ratings.json>",
		Short: "Compute the weighted total from a ratings JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read ratings: %w", err)
			}
			var ratings map[string]*int
			if err := json.Unmarshal(data, &ratings); err != nil {
				return fmt.Errorf("decode ratings: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.2f\n", scoring.ComputeTotalScore(ratings))
			return nil
		},
	}
}
