package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-mfcc/transcode"
)

func newProbeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "probe [file...]",
		Short: "Print WAV header properties",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runProbe(cmd, args)
		},
	}
}

type probeTable []*transcode.FileProperties

func (t probeTable) header() []string {
	return []string{"path", "channels", "sample_rate", "bit_depth", "num_samples", "duration_seconds"}
}

func (t probeTable) records() [][]string {
	records := make([][]string, 0, len(t))
	for _, p := range t {
		records = append(records, []string{
			p.Path,
			strconv.Itoa(p.Channels),
			strconv.Itoa(p.SampleRate),
			strconv.Itoa(p.BitDepth),
			strconv.Itoa(p.NumSamples),
			formatFloat(p.Duration.Seconds()),
		})
	}
	return records
}

func (a *app) runProbe(cmd *cobra.Command, args []string) error {
	table := make(probeTable, 0, len(args))
	for _, path := range args {
		props, err := transcode.Probe(path)
		if err != nil {
			return err
		}
		table = append(table, props)
	}

	return writeOutput(cmd.OutOrStdout(), a.cfg.OutputFormat, table)
}
