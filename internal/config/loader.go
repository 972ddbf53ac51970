package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/pverhoeven/insorter/internal/domain"
)

// defaultConfigPaths are searched for insorter.yaml when no explicit
// config path is given.
func defaultConfigPaths() []string {
	paths := []string{"."}
	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, "insorter"))
	}
	return paths
}

// Load reads the configuration. With an empty path the default locations
// are searched and a missing file simply yields the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrConfigInvalid, err)
		}
	} else {
		v.SetConfigName("insorter")
		v.SetConfigType("yaml")
		for _, p := range defaultConfigPaths() {
			v.AddConfigPath(p)
		}
		if err := v.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return nil, fmt.Errorf("%w: %v", domain.ErrConfigInvalid, err)
			}
		}
	}

	return unmarshal(v)
}

// LoadFromString parses configuration from a YAML string.
func LoadFromString(yamlContent string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	if err := v.ReadConfig(strings.NewReader(yamlContent)); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConfigInvalid, err)
	}
	return unmarshal(v)
}

func setDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("extensions", def.Extensions)
	v.SetDefault("managed_names", def.ManagedNames)
	v.SetDefault("exclude_dirs", def.ExcludeDirs)
	v.SetDefault("subfolder", def.Subfolder)
	v.SetDefault("halt_on_duplicate", def.HaltOnDuplicate)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("log.file", def.Log.File)
	v.SetDefault("log.max_size_mb", def.Log.MaxSizeMB)
	v.SetDefault("log.max_age_days", def.Log.MaxAgeDays)
	v.SetDefault("log.max_backups", def.Log.MaxBackups)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConfigInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
