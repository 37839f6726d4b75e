// Package config loads sdkgen configuration from an INI file with
// optional named profiles. Unset values fall back to defaults relative to
// the output directory.
package config

import (
	"fmt"
	"path/filepath"

	"gopkg.in/ini.v1"
)

// Config holds all sdkgen configuration
type Config struct {
	// Paths
	SnapshotPath string
	OutputPath   string
	DBPath       string
	LogsPath     string

	// Behavior
	Force     bool
	Debug     bool
	DisableUI bool

	// Profile is the name of the profile section the values came from,
	// empty for the base [paths]/[generate] sections.
	Profile string
}

// DefaultConfigFile is the file name looked up when no --config flag is
// given.
const DefaultConfigFile = "sdkgen.ini"

// Load reads configuration from file. A missing file is not an error:
// defaults are returned. profile selects a [profile:<name>] section whose
// keys override the base sections.
func Load(file string, profile string) (*Config, error) {
	cfg := &Config{
		OutputPath: "sdk",
		Profile:    profile,
	}

	f, err := ini.LooseLoad(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", file, err)
	}

	paths := f.Section("paths")
	cfg.SnapshotPath = paths.Key("snapshot").String()
	if out := paths.Key("output").String(); out != "" {
		cfg.OutputPath = out
	}
	cfg.DBPath = paths.Key("database").String()
	cfg.LogsPath = paths.Key("logs").String()

	gen := f.Section("generate")
	cfg.Force = gen.Key("force").MustBool(false)
	cfg.Debug = gen.Key("debug").MustBool(false)
	cfg.DisableUI = gen.Key("disable_ui").MustBool(false)

	if profile != "" {
		section := f.Section("profile:" + profile)
		if len(section.Keys()) == 0 {
			return nil, fmt.Errorf("profile %q not found in %s", profile, file)
		}
		applyProfile(cfg, section)
	}

	cfg.applyDefaults()

	return cfg, nil
}

func applyProfile(cfg *Config, section *ini.Section) {
	if v := section.Key("snapshot").String(); v != "" {
		cfg.SnapshotPath = v
	}
	if v := section.Key("output").String(); v != "" {
		cfg.OutputPath = v
	}
	if v := section.Key("database").String(); v != "" {
		cfg.DBPath = v
	}
	if v := section.Key("logs").String(); v != "" {
		cfg.LogsPath = v
	}
	if section.HasKey("force") {
		cfg.Force = section.Key("force").MustBool(false)
	}
	if section.HasKey("debug") {
		cfg.Debug = section.Key("debug").MustBool(false)
	}
	if section.HasKey("disable_ui") {
		cfg.DisableUI = section.Key("disable_ui").MustBool(false)
	}
}

// applyDefaults fills paths that depend on the output directory.
func (c *Config) applyDefaults() {
	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.OutputPath, "gen.db")
	}
	if c.LogsPath == "" {
		c.LogsPath = filepath.Join(c.OutputPath, "logs")
	}
}
