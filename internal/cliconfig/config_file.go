package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	Dir        string `toml:"dir"`
	Output     string `toml:"output"`
	ForwardTag string `toml:"forward_tag"`
	ReverseTag string `toml:"reverse_tag"`
	AllowEmpty *bool  `toml:"allow_empty"`
	Absolute   *bool  `toml:"absolute"`
	Watch      *bool  `toml:"watch"`
	Debounce   string `toml:"debounce"`
	Verbose    *bool  `toml:"verbose"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.qiimemanifest/config.toml, or "" if the home
// directory is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".qiimemanifest", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("dir", fc.Dir, &cfg.Dir)
	s.setString("output", fc.Output, &cfg.Output)
	s.setString("frtag", fc.ForwardTag, &cfg.ForwardTag)
	s.setString("rrtag", fc.ReverseTag, &cfg.ReverseTag)

	if err := s.setDuration("debounce", fc.Debounce, &cfg.Debounce); err != nil {
		return err
	}

	s.setBool("allow-empty", fc.AllowEmpty, &cfg.AllowEmpty)
	s.setBool("absolute", fc.Absolute, &cfg.Absolute)
	s.setBool("watch", fc.Watch, &cfg.Watch)
	s.setBool("verbose", fc.Verbose, &cfg.Verbose)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
