package config

import (
	"fmt"
	"strings"

	"github.com/pverhoeven/insorter/internal/domain"
)

// Config holds the tunable behavior of the organizer. Every field has a
// default reproducing the stock Insta360 conventions; a config file is
// optional.
type Config struct {
	// Extensions is the managed file set, matched case-insensitively.
	Extensions []string `mapstructure:"extensions"`

	// ManagedNames are exact filenames managed regardless of extension,
	// matched case-insensitively. Covers camera sidecar files that belong
	// to the recording set.
	ManagedNames []string `mapstructure:"managed_names"`

	// ExcludeDirs are folder names marking auxiliary metadata; files
	// under them are ignored wherever they appear in the source tree.
	ExcludeDirs []string `mapstructure:"exclude_dirs"`

	// Subfolder is the fixed managed-subfolder name inside date folders.
	Subfolder string `mapstructure:"subfolder"`

	// HaltOnDuplicate stops before producing any plan when cross-source
	// duplicate names are found, instead of proceeding with unaffected
	// files.
	HaltOnDuplicate bool `mapstructure:"halt_on_duplicate"`

	Log LogConfig `mapstructure:"log"`
}

// LogConfig configures the diagnostic logger.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		Extensions:   []string{".insv", ".insp", ".lrv"},
		ManagedNames: []string{"fileinfo_list.list"},
		ExcludeDirs:  []string{"MISC", ".Trashes"},
		Subfolder:    "insta360",
		Log: LogConfig{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  10,
			MaxAgeDays: 30,
			MaxBackups: 5,
		},
	}
}

// Validate checks the configuration for values the pipeline cannot work
// with.
func (c *Config) Validate() error {
	if len(c.Extensions) == 0 {
		return fmt.Errorf("%w: extensions cannot be empty", domain.ErrConfigInvalid)
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("%w: extension %q must start with a dot", domain.ErrConfigInvalid, ext)
		}
	}
	for _, name := range c.ManagedNames {
		if name == "" || strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("%w: managed name %q must be a plain filename", domain.ErrConfigInvalid, name)
		}
	}
	if c.Subfolder == "" {
		return fmt.Errorf("%w: subfolder cannot be empty", domain.ErrConfigInvalid)
	}
	if strings.ContainsAny(c.Subfolder, `/\`) {
		return fmt.Errorf("%w: subfolder %q must be a plain name", domain.ErrConfigInvalid, c.Subfolder)
	}
	for _, dir := range c.ExcludeDirs {
		if dir == "" || strings.ContainsAny(dir, `/\`) {
			return fmt.Errorf("%w: exclude dir %q must be a plain name", domain.ErrConfigInvalid, dir)
		}
	}
	return nil
}
