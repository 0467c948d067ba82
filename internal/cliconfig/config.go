package cliconfig

import (
	"fmt"
	"time"

	"github.com/bft-labs/qiimemanifest/internal/manifest"
)

// Defaults for the command line flags.
const (
	DefaultDir        = "./"
	DefaultOutput     = "./QIIME2_manifest.txt"
	DefaultForwardTag = "*R1.fastq"
	DefaultReverseTag = "*R2.fastq"

	// StdoutOutput as the output path writes the manifest to standard output.
	StdoutOutput = "-"
)

// Config holds CLI configuration for qiimemanifest.
type Config struct {
	Dir        string
	Output     string
	ForwardTag string
	ReverseTag string

	AllowEmpty bool
	Absolute   bool

	Watch    bool
	Debounce time.Duration

	Verbose bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Dir:        DefaultDir,
		Output:     DefaultOutput,
		ForwardTag: DefaultForwardTag,
		ReverseTag: DefaultReverseTag,
		Debounce:   500 * time.Millisecond,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Dir == "" {
		return fmt.Errorf("dir is required")
	}
	if c.Output == "" {
		return fmt.Errorf("output is required")
	}
	if _, _, err := c.Tags(); err != nil {
		return err
	}
	if c.ForwardTag == c.ReverseTag {
		return fmt.Errorf("frtag and rrtag must differ (both %q)", c.ForwardTag)
	}

	if c.Watch {
		if c.Output == StdoutOutput {
			return fmt.Errorf("watch mode needs an output file")
		}
		if c.Debounce <= 0 {
			return fmt.Errorf("debounce must be positive")
		}
	}
	return nil
}

// Tags parses the forward and reverse tag patterns.
func (c *Config) Tags() (fwd, rev manifest.Tag, err error) {
	if fwd, err = manifest.ParseTag(c.ForwardTag); err != nil {
		return fwd, rev, fmt.Errorf("frtag: %w", err)
	}
	if rev, err = manifest.ParseTag(c.ReverseTag); err != nil {
		return fwd, rev, fmt.Errorf("rrtag: %w", err)
	}
	return fwd, rev, nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString accepts "true" and "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
