package cmd

import (
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/RyanBlaney/sonido-mfcc/logging"
	"github.com/RyanBlaney/sonido-mfcc/mfcc"
	"github.com/RyanBlaney/sonido-mfcc/transcode"
)

func newExtractCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "extract [file...]",
		Short: "Extract an MFCC feature vector from each WAV file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExtract(cmd, args)
		},
	}
}

// addExtractionFlags mirrors the extraction configuration on the command
// line
func (a *app) addExtractionFlags(flags *pflag.FlagSet) {
	d := mfcc.DefaultConfig()
	flags.Int("n-mfcc", d.NumCoefficients, "number of cepstral coefficients")
	flags.Float64("frame-duration", d.FrameDuration, "frame duration in seconds")
	flags.Float64("overlap", d.OverlapPercent, "frame overlap in percent")
	flags.Int("n-filters", d.NumFilters, "number of mel filters")
	flags.Float64("f-min", d.MinFrequency, "lowest filter bank frequency in Hz")
	flags.Float64("f-max", d.MaxFrequency, "highest filter bank frequency in Hz (0 uses Nyquist)")
	flags.String("window", string(d.Window), "analysis window (box, hamming, hann)")
	flags.Float64("preemphasis", d.PreEmphasis, "pre-emphasis coefficient (0 disables)")
	flags.Bool("rasta", d.Rasta, "apply RASTA filtering to the filter energies")
	flags.Bool("normalize", d.Normalize, "z-score the coefficient matrix before pooling")
	flags.Float64("gate-threshold", d.Gate.Threshold, "silence gate autocorrelation threshold")
	flags.Bool("keep-frames", d.KeepFrames, "include per-frame values in json/yaml output")

	a.bindFlags(flags, map[string]string{
		"n-mfcc":         "extraction.n_mfcc",
		"frame-duration": "extraction.frame_duration",
		"overlap":        "extraction.overlap",
		"n-filters":      "extraction.n_filters",
		"f-min":          "extraction.f_min",
		"f-max":          "extraction.f_max",
		"window":         "extraction.window",
		"preemphasis":    "extraction.preemphasis",
		"rasta":          "extraction.rasta",
		"normalize":      "extraction.normalize",
		"gate-threshold": "extraction.gate.threshold",
		"keep-frames":    "extraction.keep_frames",
	})
}

// decodeSignals decodes every path into a mono signal
func decodeSignals(paths []string) ([]mfcc.AudioSignal, error) {
	decoder := transcode.NewDecoder()
	signals := make([]mfcc.AudioSignal, 0, len(paths))
	for _, path := range paths {
		data, err := decoder.DecodeFile(path)
		if err != nil {
			return nil, err
		}

		signal, err := mfcc.FromAudioData(data)
		if err != nil {
			return nil, &transcode.DecodeError{Source: path, Err: err}
		}
		signals = append(signals, signal)
	}
	return signals, nil
}

// extractRow is one file's output
type extractRow struct {
	File            string  `json:"file" yaml:"file"`
	SampleRate      int     `json:"sample_rate" yaml:"sample_rate"`
	DurationSeconds float64 `json:"duration_seconds" yaml:"duration_seconds"`
	mfcc.Result     `yaml:",inline"`
}

type extractTable []extractRow

func (t extractTable) header() []string {
	header := []string{"file", "sample_rate", "duration_seconds", "nominal_frames", "retained_frames", "degenerate"}
	if len(t) > 0 {
		for i := range t[0].Features {
			header = append(header, "c"+strconv.Itoa(i))
		}
	}
	return header
}

func (t extractTable) records() [][]string {
	records := make([][]string, 0, len(t))
	for _, row := range t {
		record := []string{
			row.File,
			strconv.Itoa(row.SampleRate),
			formatFloat(row.DurationSeconds),
			strconv.Itoa(row.NominalFrames),
			strconv.Itoa(row.RetainedFrames),
			strconv.FormatBool(row.Degenerate),
		}
		for _, v := range row.Features {
			record = append(record, formatFloat(v))
		}
		records = append(records, record)
	}
	return records
}

func (a *app) runExtract(cmd *cobra.Command, args []string) error {
	logger := logging.WithFields(logging.Fields{
		"component": "cli",
		"command":   "extract",
	})

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

	rows := make(extractTable, len(results))
	for i, result := range results {
		if result.Degenerate {
			logger.Warn("No frame passed the silence gate", logging.Fields{"file": args[i]})
		}
		rows[i] = extractRow{
			File:            args[i],
			SampleRate:      signals[i].SampleRate(),
			DurationSeconds: signals[i].Duration().Seconds(),
			Result:          *result,
		}
	}

	return writeOutput(cmd.OutOrStdout(), a.cfg.OutputFormat, rows)
}
