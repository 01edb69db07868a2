package cmd

import (
	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-mfcc/algorithms/stats"
	"github.com/RyanBlaney/sonido-mfcc/mfcc"
)

func newCompareCmd(a *app) *cobra.Command {
	var metricName string

	cmd := &cobra.Command{
		Use:   "compare [file...]",
		Short: "Print pairwise distances between the feature vectors of WAV files",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			metric, err := stats.ParseDistanceMetric(metricName)
			if err != nil {
				return err
			}
			return a.runCompare(cmd, args, metric)
		},
	}

	cmd.Flags().StringVarP(&metricName, "metric", "m", string(stats.CosineDistance),
		"distance metric (euclidean, manhattan, cosine, pearson)")

	return cmd
}

type compareRow struct {
	A        string  `json:"a" yaml:"a"`
	B        string  `json:"b" yaml:"b"`
	Metric   string  `json:"metric" yaml:"metric"`
	Distance float64 `json:"distance" yaml:"distance"`
}

type compareTable []compareRow

func (t compareTable) header() []string {
	return []string{"a", "b", "metric", "distance"}
}

func (t compareTable) records() [][]string {
	records := make([][]string, 0, len(t))
	for _, row := range t {
		records = append(records, []string{row.A, row.B, row.Metric, formatFloat(row.Distance)})
	}
	return records
}

func (a *app) runCompare(cmd *cobra.Command, args []string, metric stats.DistanceMetric) error {
	signals, err := decodeSignals(args)
	if err != nil {
		return err
	}

	results, err := mfcc.ExtractBatch(cmd.Context(), signals, a.cfg.Extraction, mfcc.BatchOptions{
		Workers: a.cfg.Workers,
	})
	if err != nil {
		return err
	}

	vectors := make([][]float64, len(results))
	for i, result := range results {
		vectors[i] = result.Features
	}

	matrix, err := stats.DistanceMatrix(vectors, metric)
	if err != nil {
		return err
	}

	rows := make(compareTable, 0, len(args)*(len(args)-1)/2)
	for i := range args {
		for j := i + 1; j < len(args); j++ {
			rows = append(rows, compareRow{
				A:        args[i],
				B:        args[j],
				Metric:   string(metric),
				Distance: matrix[i][j],
			})
		}
	}

	return writeOutput(cmd.OutOrStdout(), a.cfg.OutputFormat, rows)
}
