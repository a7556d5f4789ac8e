// Package config implements the Config Resolver: loading, merging, and
// freezing the two-layer (global + project) configuration that shapes
// commit grammar validation and memory routing.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
)

const (
	projectConfigRelPath = ".synaptic/config.yaml"
	globalConfigRelPath  = "synaptic/config.toml"
)

// LocateProjectConfig walks up from dir looking for .synaptic/config.yaml,
// the same parent-directory walk the teacher project performs for
// .beads/config.yaml so commands work from any subdirectory. Returns ""
// if none is found.
func LocateProjectConfig(dir string) string {
	for d := dir; ; {
		candidate := filepath.Join(d, projectConfigRelPath)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(d)
		if parent == d {
			return ""
		}
		d = parent
	}
}

// LocateGlobalConfig returns the per-user global config path
// (~/.config/synaptic/config.toml), or "" if it doesn't exist.
func LocateGlobalConfig() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	candidate := filepath.Join(configDir, globalConfigRelPath)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return ""
}

// Load discovers and reads both configuration sources relative to dir,
// resolves them, and applies SYNAPTIC_-prefixed environment variable
// overrides for the scalar fields (default_depth, per_file_entry_cap).
// Either file may be absent; absence is not an error.
func Load(dir string) (*EffectiveConfig, []string, error) {
	var globalSrc, projectSrc string

	if p := LocateGlobalConfig(); p != "" {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, nil, err
		}
		globalSrc = string(b)
	}

	if p := LocateProjectConfig(dir); p != "" {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, nil, err
		}
		projectSrc = string(b)
	}

	cfg, warnings, err := Resolve(globalSrc, projectSrc)
	if err != nil {
		return nil, nil, err
	}

	applyEnvOverrides(cfg)
	return cfg, warnings, nil
}

// applyEnvOverrides layers SYNAPTIC_DEFAULT_DEPTH / SYNAPTIC_PER_FILE_ENTRY_CAP
// environment variables on top of the resolved config, mirroring the
// teacher's SetEnvPrefix("BD")/AutomaticEnv env-var precedence above the
// config file.
func applyEnvOverrides(cfg *EffectiveConfig) {
	v := viper.New()
	v.SetEnvPrefix("SYNAPTIC")
	v.AutomaticEnv()
	_ = v.BindEnv("default_depth")
	_ = v.BindEnv("per_file_entry_cap")

	if raw := v.GetString("default_depth"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			cfg.DefaultDepth = n
		}
	}
	if raw := v.GetString("per_file_entry_cap"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			cfg.PerFileEntryCap = &n
		}
	}
}
