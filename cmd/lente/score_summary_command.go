package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"lente/internal/matching"
	"lente/internal/standardize"
)

const summaryBins = 10

type scoreBucket struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

func newScoreSummaryCommand(ctx *commandContext) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "score-summary <source.csv>",
		Short: "Run a comparison and print the aggregate score distribution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()

			raw, _, err := loadPersonCSV(args[0])
			if err != nil {
				return err
			}
			table, err := standardize.Table(raw)
			if err != nil {
				return err
			}
			rules, err := buildRules(cfg)
			if err != nil {
				return err
			}
			runner, err := matching.NewDeduple(table, rules, logger)
			if err != nil {
				return err
			}

			window := flags.window
			if window == 0 {
				window = cfg.Matching.Window
			}
			if err := runner.DefinePairs(flags.blockKey, window); err != nil {
				return err
			}
			matrix, err := runner.Run(runOptions(cfg, flags))
			if err != nil {
				return err
			}

			buckets := bucketScores(aggregateScores(matrix, rules.Labels()))
			if useJSON(flags.jsonOut) {
				return writeJSON(cmd, map[string]any{
					"pairs":   matrix.Len(),
					"buckets": buckets,
				})
			}

			rows := make([][]string, 0, len(buckets))
			for _, bucket := range buckets {
				rows = append(rows, []string{
					fmt.Sprintf("[%.1f, %.1f)", bucket.Low, bucket.High),
					strconv.Itoa(bucket.Count),
					bar(bucket.Count, matrix.Len()),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Score", "Pairs", ""}, rows, 1))
			return nil
		},
	}

	cmd.Flags().IntVarP(&flags.window, "window", "w", 0, "Sorted-neighbourhood window (default from config)")
	cmd.Flags().IntVarP(&flags.batches, "batches", "b", 0, "Comparison batches (default from config)")
	cmd.Flags().Float64VarP(&flags.threshold, "threshold", "t", -1, "Censor scores below this value (default from config)")
	cmd.Flags().StringVar(&flags.blockKey, "block-key", standardize.FieldBlockKey, "Blocking key field")
	cmd.Flags().BoolVar(&flags.jsonOut, "json", false, "Emit JSON output")
	return cmd
}

// bucketScores counts aggregate scores into ten equal [0,1] bins; a score of
// exactly 1.0 lands in the last bin.
func bucketScores(scores []float64) []scoreBucket {
	buckets := make([]scoreBucket, summaryBins)
	for i := range buckets {
		buckets[i].Low = float64(i) / summaryBins
		buckets[i].High = float64(i+1) / summaryBins
	}
	for _, score := range scores {
		i := int(score * summaryBins)
		if i >= summaryBins {
			i = summaryBins - 1
		}
		if i < 0 {
			i = 0
		}
		buckets[i].Count++
	}
	return buckets
}

func bar(count, total int) string {
	if total == 0 || count == 0 {
		return ""
	}
	width := count * 40 / total
	if width == 0 {
		width = 1
	}
	return strings.Repeat("#", width)
}
