package main

import (
	"context"

	"github.com/spf13/cobra"

	"lente/internal/annotation"
	"lente/internal/matching"
	"lente/internal/standardize"
	"lente/internal/warehouse"
)

func newLinkCommand(ctx *commandContext) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "link <left.csv> <right.csv>",
		Short: "Link person records across two sources",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()

			leftRaw, leftPersons, err := loadPersonCSV(args[0])
			if err != nil {
				return err
			}
			rightRaw, rightPersons, err := loadPersonCSV(args[1])
			if err != nil {
				return err
			}
			left, err := standardize.Table(leftRaw)
			if err != nil {
				return err
			}
			right, err := standardize.Table(rightRaw)
			if err != nil {
				return err
			}

			summary := runSummary{Records: left.Len(), RightRecords: right.Len()}
			if !flags.noStore {
				store, err := warehouse.Open(cfg.Paths.WarehousePath, logger)
				if err != nil {
					return err
				}
				defer store.Close()
				stored, err := store.InsertPersons(context.Background(), leftPersons, 0)
				if err != nil {
					return err
				}
				more, err := store.InsertPersons(context.Background(), rightPersons, 0)
				if err != nil {
					return err
				}
				summary.Stored = stored + more
			}

			rules, err := buildRules(cfg)
			if err != nil {
				return err
			}
			runner, err := matching.NewLinkage(left, right, rules, logger)
			if err != nil {
				return err
			}
			summary.RunID = runner.RunID()

			window := flags.window
			if window == 0 {
				window = cfg.Matching.Window
			}
			if err := runner.DefinePairs(flags.blockKey, flags.blockKey, window); err != nil {
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
					Left:          left,
					Right:         right,
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
