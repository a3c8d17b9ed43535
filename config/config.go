// Package config holds run settings: built-in defaults, an optional YAML file,
// and command-line flags, applied in that order.
package config

import (
	"errors"
	"fmt"
	"os"

	"dupsweep/imageprocessor"
	"dupsweep/matcher"
	"dupsweep/signalhandler"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidThreshold     = errors.New("threshold must be between 0 and 64")
	ErrInvalidWorkers       = errors.New("workers must be at least 1")
	ErrUnknownHashAlgorithm = errors.New("unknown hash algorithm")
)

// DefaultLogFile is used when debug mode is on and no log file is given
const DefaultLogFile = "dupsweep.log"

// Config is the full set of run settings
type Config struct {
	Threshold     int    `yaml:"threshold"`
	Workers       int    `yaml:"workers"`
	Delete        bool   `yaml:"delete"`
	HashAlgorithm string `yaml:"hash_algorithm"`
	Database      string `yaml:"database"`
	LogFile       string `yaml:"log_file"`
	Debug         bool   `yaml:"debug"`
	ProgressBar   bool   `yaml:"progress_bar"`
	NoColor       bool   `yaml:"no_color"`
	AutoOrient    bool   `yaml:"auto_orient"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Threshold:     matcher.DefaultThreshold,
		Workers:       signalhandler.GetOptimalProcs(),
		HashAlgorithm: string(imageprocessor.HashDifference),
		LogFile:       DefaultLogFile,
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("cannot read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("cannot parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyFlags overrides settings with the flags the user actually set
func (c *Config) ApplyFlags(flags *pflag.FlagSet) error {
	var err error
	set := func(name string, apply func() error) {
		if err == nil && flags.Changed(name) {
			err = apply()
		}
	}

	set("threshold", func() (e error) { c.Threshold, e = flags.GetInt("threshold"); return })
	set("workers", func() (e error) { c.Workers, e = flags.GetInt("workers"); return })
	set("delete", func() (e error) { c.Delete, e = flags.GetBool("delete"); return })
	set("hash", func() (e error) { c.HashAlgorithm, e = flags.GetString("hash"); return })
	set("database", func() (e error) { c.Database, e = flags.GetString("database"); return })
	set("logfile", func() (e error) { c.LogFile, e = flags.GetString("logfile"); return })
	set("debug", func() (e error) { c.Debug, e = flags.GetBool("debug"); return })
	set("bar", func() (e error) { c.ProgressBar, e = flags.GetBool("bar"); return })
	set("no-color", func() (e error) { c.NoColor, e = flags.GetBool("no-color"); return })
	set("auto-orient", func() (e error) { c.AutoOrient, e = flags.GetBool("auto-orient"); return })

	return err
}

// Validate checks the settings for values the engine cannot run with
func (c Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > imageprocessor.HashSize*8 {
		return fmt.Errorf("%w (got %d)", ErrInvalidThreshold, c.Threshold)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w (got %d)", ErrInvalidWorkers, c.Workers)
	}
	if _, err := imageprocessor.ParseHashAlgorithm(c.HashAlgorithm); err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownHashAlgorithm, c.HashAlgorithm)
	}
	return nil
}

// Algorithm returns the validated hash algorithm
func (c Config) Algorithm() imageprocessor.HashAlgorithm {
	algorithm, err := imageprocessor.ParseHashAlgorithm(c.HashAlgorithm)
	if err != nil {
		return imageprocessor.HashDifference
	}
	return algorithm
}
