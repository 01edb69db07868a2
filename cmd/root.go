package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/RyanBlaney/sonido-mfcc/config"
	"github.com/RyanBlaney/sonido-mfcc/logging"
)

// app carries the state shared by every subcommand
type app struct {
	v      *viper.Viper
	cfg    *config.Config
	logger *logging.DefaultLogger

	configFile string
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	a := &app{v: config.NewViper()}

	root := &cobra.Command{
		Use:   "sonido-mfcc",
		Short: "MFCC feature extraction for WAV audio",
		Long: `Extract fixed-length Mel-Frequency Cepstral Coefficient vectors from
PCM WAV files.

Frames that fail the autocorrelation silence gate are dropped, the
remaining coefficient matrix is normalised and averaged over time, so
every file produces a vector of the same length regardless of duration.

Configuration is read from --config, SONIDO_MFCC_* environment variables
and flags, in increasing order of precedence.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (yaml or json)")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.StringP("output", "o", config.OutputJSON, "output format (json, yaml, csv)")
	flags.IntP("workers", "w", 0, "concurrent extractions (0 uses all CPUs)")

	a.bindFlags(flags, map[string]string{
		"log-level": "log_level",
		"output":    "output_format",
		"workers":   "workers",
	})

	a.addExtractionFlags(flags)

	root.AddCommand(newExtractCmd(a))
	root.AddCommand(newCompareCmd(a))
	root.AddCommand(newProbeCmd(a))

	return root
}

// Execute runs the root command, cancelling on interrupt
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// bindFlags maps flag names to configuration keys. Flags only override
// the file and environment when set explicitly.
func (a *app) bindFlags(flags *pflag.FlagSet, keys map[string]string) {
	for name, key := range keys {
		if err := a.v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", name, err))
		}
	}
}

// initialize loads the configuration and installs the logger
func (a *app) initialize() error {
	if a.configFile != "" {
		if err := config.ReadFile(a.v, a.configFile); err != nil {
			return err
		}
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	a.logger = logging.NewStderrLogger()
	a.logger.SetLevel(level)
	logging.SetGlobalLogger(a.logger)

	if a.configFile != "" {
		a.logger.Debug("Using config file", logging.Fields{"path": a.configFile})
	}

	return nil
}
