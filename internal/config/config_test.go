package config

import (
	"errors"
	"testing"

	"github.com/pverhoeven/insorter/internal/domain"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
	if cfg.Subfolder != "insta360" {
		t.Errorf("unexpected subfolder: %s", cfg.Subfolder)
	}
	if len(cfg.Extensions) != 3 {
		t.Errorf("unexpected extensions: %v", cfg.Extensions)
	}
	if len(cfg.ManagedNames) != 1 || cfg.ManagedNames[0] != "fileinfo_list.list" {
		t.Errorf("unexpected managed names: %v", cfg.ManagedNames)
	}
	if cfg.HaltOnDuplicate {
		t.Error("default must report duplicates and proceed with unaffected files")
	}
}

func TestLoadFromString(t *testing.T) {
	cfg, err := LoadFromString(`
subfolder: cam360
halt_on_duplicate: true
log:
  level: debug
`)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Subfolder != "cam360" {
		t.Errorf("unexpected subfolder: %s", cfg.Subfolder)
	}
	if !cfg.HaltOnDuplicate {
		t.Error("halt_on_duplicate not honored")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("unexpected log level: %s", cfg.Log.Level)
	}
	// Unset keys keep their defaults.
	if len(cfg.Extensions) != 3 {
		t.Errorf("defaults must survive partial config: %v", cfg.Extensions)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Subfolder != "insta360" {
		t.Errorf("unexpected subfolder: %s", cfg.Subfolder)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []*Config{
		func() *Config { c := Default(); c.Extensions = nil; return c }(),
		func() *Config { c := Default(); c.Extensions = []string{"insv"}; return c }(),
		func() *Config { c := Default(); c.Subfolder = ""; return c }(),
		func() *Config { c := Default(); c.Subfolder = "a/b"; return c }(),
		func() *Config { c := Default(); c.ExcludeDirs = []string{""}; return c }(),
		func() *Config { c := Default(); c.ManagedNames = []string{"a/b.list"}; return c }(),
	}

	for i, cfg := range cases {
		if err := cfg.Validate(); !errors.Is(err, domain.ErrConfigInvalid) {
			t.Errorf("case %d: expected ErrConfigInvalid, got %v", i, err)
		}
	}
}
