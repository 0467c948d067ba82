package cliconfig

import "os"

// EnvPrefix prefixes every environment variable read by ApplyEnvConfig.
const EnvPrefix = "QIIMEMANIFEST_"

// ApplyEnvConfig applies configuration from environment variables (QIIMEMANIFEST_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("dir", os.Getenv(EnvPrefix+"DIR"), &cfg.Dir)
	s.setString("output", os.Getenv(EnvPrefix+"OUTPUT"), &cfg.Output)
	s.setString("frtag", os.Getenv(EnvPrefix+"FRTAG"), &cfg.ForwardTag)
	s.setString("rrtag", os.Getenv(EnvPrefix+"RRTAG"), &cfg.ReverseTag)

	if err := s.setDuration("debounce", os.Getenv(EnvPrefix+"DEBOUNCE"), &cfg.Debounce); err != nil {
		return err
	}

	s.setBoolFromString("allow-empty", os.Getenv(EnvPrefix+"ALLOW_EMPTY"), &cfg.AllowEmpty)
	s.setBoolFromString("absolute", os.Getenv(EnvPrefix+"ABSOLUTE"), &cfg.Absolute)
	s.setBoolFromString("watch", os.Getenv(EnvPrefix+"WATCH"), &cfg.Watch)
	s.setBoolFromString("verbose", os.Getenv(EnvPrefix+"VERBOSE"), &cfg.Verbose)

	return nil
}
