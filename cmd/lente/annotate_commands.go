package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"lente/internal/annotation"
	"lente/internal/cluster"
	"lente/internal/records"
	"lente/internal/warehouse"
)

func newAnnotateCommand(ctx *commandContext) *cobra.Command {
	annotateCmd := &cobra.Command{
		Use:   "annotate",
		Short: "Annotation file utilities",
	}
	annotateCmd.AddCommand(newAnnotateImportCommand(ctx))
	return annotateCmd
}

type importSummary struct {
	Positive  int                 `json:"positive"`
	Potential int                 `json:"potential"`
	Saved     int                 `json:"saved"`
	Groups    map[string][]string `json:"groups"`
}

func newAnnotateImportCommand(ctx *commandContext) *cobra.Command {
	var dir string
	var linkage bool
	var noStore bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import reviewed annotation pages and group confirmed matches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.Paths.AnnotationDir
			}

			classified, err := annotation.Import(dir)
			if err != nil {
				return err
			}

			summary := importSummary{}
			var positives []records.Pair
			labels := make([]warehouse.PairLabel, 0, len(classified))
			for _, pair := range classified {
				switch pair.Classification {
				case annotation.ClassificationPositive:
					summary.Positive++
					positives = append(positives, records.Pair{Left: pair.Left, Right: pair.Right})
				case annotation.ClassificationPotential:
					summary.Potential++
				}
				labels = append(labels, warehouse.PairLabel{
					LeftID:         pair.Left,
					RightID:        pair.Right,
					Classification: string(pair.Classification),
				})
			}
			if linkage {
				summary.Groups = cluster.Linkage(positives)
			} else {
				summary.Groups = cluster.Dedup(positives)
			}

			if !noStore {
				store, err := warehouse.Open(cfg.Paths.WarehousePath, ctx.ensureLogger())
				if err != nil {
					return err
				}
				defer store.Close()
				if err := store.SavePairLabels(context.Background(), labels); err != nil {
					return err
				}
				summary.Saved = len(labels)
			}

			return printImportSummary(cmd, summary, linkage, jsonOut)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Annotation directory (default from config)")
	cmd.Flags().BoolVar(&linkage, "linkage", false, "Group positives as cross-source links instead of duplicate clusters")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "Skip saving pair labels to the warehouse")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}

func printImportSummary(cmd *cobra.Command, summary importSummary, linkage, jsonFlag bool) error {
	if useJSON(jsonFlag) {
		return writeJSON(cmd, summary)
	}

	groupsLabel := "Duplicate groups"
	if linkage {
		groupsLabel = "Linked groups"
	}
	out := cmd.OutOrStdout()
	rows := [][]string{
		{"Positive pairs", strconv.Itoa(summary.Positive)},
		{"Potential pairs", strconv.Itoa(summary.Potential)},
		{"Labels saved", strconv.Itoa(summary.Saved)},
		{groupsLabel, strconv.Itoa(len(summary.Groups))},
	}
	fmt.Fprintln(out, renderTable([]string{"Metric", "Value"}, rows, 1))

	if len(summary.Groups) > 0 {
		groupRows := make([][]string, 0, len(summary.Groups))
		for root, members := range summary.Groups {
			groupRows = append(groupRows, []string{root, strconv.Itoa(len(members) + 1)})
		}
		sortRows(groupRows)
		fmt.Fprintln(out, renderTable([]string{"Group", "Members"}, groupRows, 1))
	}
	return nil
}
