// Package cli wires the cobra commands to the scan/plan/execute
// pipeline.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pverhoeven/insorter/internal/config"
	"github.com/pverhoeven/insorter/internal/logger"
)

// GlobalFlags are shared by all subcommands.
type GlobalFlags struct {
	Config    string
	LogLevel  string
	LogFormat string
	LogFile   string
}

var global GlobalFlags

// NewRootCommand builds the insorter root command.
func NewRootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "insorter",
		Short: "Organize Insta360 files into a date-partitioned archive",
		Long: `insorter ingests Insta360 files (.insv, .insp, .lrv) from a removable
source into destination folders organized by date:

    {destination}/YYYY-MM-DD[-suffix]/insta360/{filename}

By default it only previews; --approve performs the transfer. The repair
subcommand prints a script that retrofits legacy archives to the layout.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&global.Config, "config", "", "config file (default: search ./insorter.yaml)")
	root.PersistentFlags().StringVar(&global.LogLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&global.LogFormat, "log-format", "", "log format: text, json")
	root.PersistentFlags().StringVar(&global.LogFile, "log-file", "", "also write logs to this file")

	root.AddCommand(NewOrganizeCommand())
	root.AddCommand(NewRepairCommand())

	return root
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(global.Config)
	if err != nil {
		return nil, err
	}
	if global.LogLevel != "" {
		cfg.Log.Level = global.LogLevel
	}
	if global.LogFormat != "" {
		cfg.Log.Format = global.LogFormat
	}
	if global.LogFile != "" {
		cfg.Log.File = global.LogFile
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (logger.Logger, error) {
	return logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File: logger.FileConfig{
			Path:       cfg.Log.File,
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxAgeDays: cfg.Log.MaxAgeDays,
			MaxBackups: cfg.Log.MaxBackups,
		},
	})
}

// ensureDir validates a startup directory argument. Both organize
// directories and the repair root must pre-exist; a missing one is a
// startup error, never a partial run.
func ensureDir(path, role string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s directory does not exist: %s", role, path)
		}
		return fmt.Errorf("cannot access %s directory %s: %w", role, path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s path is not a directory: %s", role, path)
	}
	return nil
}
