package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"lente/internal/annotation"
	"lente/internal/config"
	"lente/internal/matching"
	"lente/internal/standardize"
	"lente/internal/warehouse"
)

type runSummary struct {
	Records        int    `json:"records"`
	RightRecords   int    `json:"right_records,omitempty"`
	CandidatePairs int    `json:"candidate_pairs"`
	Window         int    `json:"window"`
	Batches        int    `json:"batches"`
	MatrixColumns  int    `json:"matrix_columns"`
	Stored         int    `json:"stored,omitempty"`
	Positive       int    `json:"positive,omitempty"`
	Potential      int    `json:"potential,omitempty"`
	Negative       int    `json:"negative,omitempty"`
	AnnotationDir  string `json:"annotation_dir,omitempty"`
	RunID          string `json:"run_id"`
}

type runFlags struct {
	window    int
	batches   int
	threshold float64
	blockKey  string

	export    bool
	positive  float64
	potential float64
	overwrite bool
	noStore   bool
	jsonOut   bool
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.window, "window", "w", 0, "Sorted-neighbourhood window (odd, default from config)")
	cmd.Flags().IntVarP(&f.batches, "batches", "b", 0, "Comparison batches (default from config)")
	cmd.Flags().Float64VarP(&f.threshold, "threshold", "t", -1, "Censor scores below this value (default from config)")
	cmd.Flags().StringVar(&f.blockKey, "block-key", standardize.FieldBlockKey, "Blocking key field")
	cmd.Flags().BoolVar(&f.export, "export", false, "Write annotation pages to the annotation directory")
	cmd.Flags().Float64Var(&f.positive, "positive", 0, "Aggregate score cutoff for positive pairs (with --export)")
	cmd.Flags().Float64Var(&f.potential, "potential", 0, "Aggregate score cutoff for potential pairs (with --export)")
	cmd.Flags().BoolVar(&f.overwrite, "overwrite", false, "Replace existing annotation files")
	cmd.Flags().BoolVar(&f.noStore, "no-store", false, "Skip storing source records in the warehouse")
	cmd.Flags().BoolVar(&f.jsonOut, "json", false, "Emit JSON output")
}

func newDedupCommand(ctx *commandContext) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "dedup <source.csv>",
		Short: "Find duplicate person records within one source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()

			raw, persons, err := loadPersonCSV(args[0])
			if err != nil {
				return err
			}
			table, err := standardize.Table(raw)
			if err != nil {
				return err
			}

			summary := runSummary{Records: table.Len()}
			if !flags.noStore {
				store, err := warehouse.Open(cfg.Paths.WarehousePath, logger)
				if err != nil {
					return err
				}
				defer store.Close()
				stored, err := store.InsertPersons(context.Background(), persons, 0)
				if err != nil {
					return err
				}
				summary.Stored = stored
			}

			rules, err := buildRules(cfg)
			if err != nil {
				return err
			}
			runner, err := matching.NewDeduple(table, rules, logger)
			if err != nil {
				return err
			}
			summary.RunID = runner.RunID()

			window := flags.window
			if window == 0 {
				window = cfg.Matching.Window
			}
			if err := runner.DefinePairs(flags.blockKey, window); err != nil {
				return err
			}
			summary.Window = window
			summary.CandidatePairs = len(runner.Pairs())

			opts := runOptions(cfg, flags)
			summary.Batches = opts.Batches
			matrix, err := runner.Run(opts)
			if err != nil {
				return err
			}
			summary.MatrixColumns = len(matrix.Labels())

			if flags.export {
				exporter := &annotation.Exporter{
					Dir:           cfg.Paths.AnnotationDir,
					Left:          table,
					Matrix:        matrix,
					PageSize:      cfg.Annotation.PageSize,
					BulkBatchSize: cfg.Annotation.BulkBatchSize,
					NegativeMax:   cfg.Annotation.NegativeMax,
					Overwrite:     flags.overwrite,
				}
				summary.AnnotationDir = cfg.Paths.AnnotationDir
				if flags.positive > 0 || flags.potential > 0 {
					pos, pot, neg := splitByScore(matrix, rules.Labels(), flags.positive, flags.potential)
					if err := exporter.ExportClassified(pos, pot, neg); err != nil {
						return err
					}
					summary.Positive, summary.Potential, summary.Negative = len(pos), len(pot), len(neg)
				} else if err := exporter.ExportForReview(matrix.Pairs()); err != nil {
					return err
				}
			}

			return printRunSummary(cmd, summary, flags.jsonOut)
		},
	}

	flags.register(cmd)
	return cmd
}

func runOptions(cfg *config.Config, flags *runFlags) matching.Options {
	batches := flags.batches
	if batches == 0 {
		batches = cfg.Matching.Batches
	}
	threshold := flags.threshold
	if threshold < 0 {
		threshold = cfg.Matching.ScoreThreshold
	}
	return matching.Options{
		Batches:      batches,
		Threshold:    threshold,
		HasThreshold: threshold > 0,
		RankLabels:   cfg.Matching.RankLabels,
	}
}

func printRunSummary(cmd *cobra.Command, summary runSummary, jsonFlag bool) error {
	if useJSON(jsonFlag) {
		return writeJSON(cmd, summary)
	}

	rows := [][]string{{"Records", strconv.Itoa(summary.Records)}}
	if summary.RightRecords > 0 {
		rows = append(rows, []string{"Right records", strconv.Itoa(summary.RightRecords)})
	}
	rows = append(rows,
		[]string{"Candidate pairs", strconv.Itoa(summary.CandidatePairs)},
		[]string{"Window", strconv.Itoa(summary.Window)},
		[]string{"Batches", strconv.Itoa(summary.Batches)},
		[]string{"Matrix columns", strconv.Itoa(summary.MatrixColumns)},
	)
	if summary.Stored > 0 {
		rows = append(rows, []string{"Stored", strconv.Itoa(summary.Stored)})
	}
	if summary.AnnotationDir != "" {
		rows = append(rows,
			[]string{"Positive", strconv.Itoa(summary.Positive)},
			[]string{"Potential", strconv.Itoa(summary.Potential)},
			[]string{"Negative", strconv.Itoa(summary.Negative)},
			[]string{"Annotation dir", summary.AnnotationDir},
		)
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Metric", "Value"}, rows, 1))
	fmt.Fprintf(cmd.OutOrStdout(), "Run %s complete\n", summary.RunID)
	return nil
}
