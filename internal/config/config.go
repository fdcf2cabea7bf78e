// Package config loads pipeline tuning knobs from a YAML file and the
// environment, the same layered style the address-parser service loads
// app.yaml plus env overrides at startup.
package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds the tunables spec.md §6 calls out as "environment-driven;
// caller-owned": threshold, ngram_n, min_block, max_block, the parallel
// flag, and the external-table base path.
type Config struct {
	// DataPath is the base directory that may contain ca.csv, ny.csv,
	// npi.csv (spec.md §6 DATA_PATH).
	DataPath string `mapstructure:"data_path" yaml:"data_path"`

	// OutputPath is where cmd/providerdedup writes dup_pairs.csv,
	// merged.csv and summary.yaml. Not part of the library surface.
	OutputPath string `mapstructure:"output_path" yaml:"output_path"`

	// Threshold is the pair-score acceptance cutoff (spec.md §4.4).
	Threshold float64 `mapstructure:"threshold" yaml:"threshold"`

	// NgramN is the configured character n-gram size (default 2). It is
	// loaded but not passed to pipeline.Options, so feature extraction in a
	// pipeline run always uses n=2 regardless of this value.
	NgramN int `mapstructure:"ngram_n" yaml:"ngram_n"`

	MinBlock int `mapstructure:"min_block" yaml:"min_block"`
	MaxBlock int `mapstructure:"max_block" yaml:"max_block"`

	// Parallel opts into worker-pool scoring once candidate pairs exceed
	// the 200-pair floor (spec.md §5).
	Parallel bool `mapstructure:"parallel" yaml:"parallel"`

	// RemoveOutliers toggles the outlier-filter stage (spec.md §4.8,
	// default on).
	RemoveOutliers bool `mapstructure:"remove_outliers" yaml:"remove_outliers"`

	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	Env      string `mapstructure:"env" yaml:"env"`
}

// Defaults mirrors spec.md's stated defaults: threshold 0.72 (detector
// default is 0.7, the pipeline driver overrides to 0.72 per §4.10), ngram_n
// 2, min_block 1, max_block 500, parallel off, outlier removal on.
func Defaults() Config {
	return Config{
		DataPath:       "",
		OutputPath:     "./out",
		Threshold:      0.72,
		NgramN:         2,
		MinBlock:       1,
		MaxBlock:       500,
		Parallel:       false,
		RemoveOutliers: true,
		RequestTimeout: 30 * time.Second,
		LogLevel:       "info",
		Env:            "development",
	}
}

// Load reads config/pipeline.yaml (if present) and layers PROVIDERDEDUP_*
// environment variables over it, the same pattern as the teacher's
// loadConfig(): set defaults first, read the file tolerantly, then let env
// vars win. A missing file is not an error — spec.md §7 never treats
// configuration absence as MalformedInput, only missing roster columns are.
func Load(configDir string) (Config, error) {
	v := viper.New()
	v.SetConfigName("pipeline")
	v.SetConfigType("yaml")
	if configDir != "" {
		v.AddConfigPath(configDir)
	}
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	d := Defaults()
	v.SetDefault("data_path", d.DataPath)
	v.SetDefault("output_path", d.OutputPath)
	v.SetDefault("threshold", d.Threshold)
	v.SetDefault("ngram_n", d.NgramN)
	v.SetDefault("min_block", d.MinBlock)
	v.SetDefault("max_block", d.MaxBlock)
	v.SetDefault("parallel", d.Parallel)
	v.SetDefault("remove_outliers", d.RemoveOutliers)
	v.SetDefault("request_timeout", d.RequestTimeout)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("env", d.Env)

	v.SetEnvPrefix("providerdedup")
	v.AutomaticEnv()
	// DATA_PATH is named directly in spec.md §6 without the prefix, so it
	// gets an explicit bind alongside the prefixed automatic env lookup.
	_ = v.BindEnv("data_path", "DATA_PATH")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return d, err
		}
		log.Printf("providerdedup: no pipeline.yaml found, using defaults and env overrides")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return d, err
	}
	return cfg, nil
}
