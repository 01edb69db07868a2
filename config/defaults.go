package config

import (
	"github.com/spf13/viper"

	"github.com/RyanBlaney/sonido-mfcc/mfcc"
)

// SetDefaults registers a default for every key so that environment
// variables are picked up by Unmarshal
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "warn")
	v.SetDefault("output_format", OutputJSON)
	v.SetDefault("workers", 0)

	d := mfcc.DefaultConfig()
	v.SetDefault("extraction.n_mfcc", d.NumCoefficients)
	v.SetDefault("extraction.frame_duration", d.FrameDuration)
	v.SetDefault("extraction.overlap", d.OverlapPercent)
	v.SetDefault("extraction.window", string(d.Window))
	v.SetDefault("extraction.n_filters", d.NumFilters)
	v.SetDefault("extraction.f_min", d.MinFrequency)
	v.SetDefault("extraction.f_max", d.MaxFrequency)
	v.SetDefault("extraction.preemphasis", d.PreEmphasis)
	v.SetDefault("extraction.rasta", d.Rasta)
	v.SetDefault("extraction.normalize", d.Normalize)
	v.SetDefault("extraction.energy_floor", d.EnergyFloor)
	v.SetDefault("extraction.keep_frames", d.KeepFrames)

	v.SetDefault("extraction.gate.threshold", d.Gate.Threshold)
	v.SetDefault("extraction.gate.exclude_lags", d.Gate.ExcludeLags)
	v.SetDefault("extraction.gate.scaling", string(d.Gate.Scaling))
}
