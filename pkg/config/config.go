// Package config resolves importer settings from defaults, an optional
// .vuegen.yaml file and VUEGEN_* environment variables.
package config

import (
	"errors"

	figmavuegen "github.com/hellenic-development/figma-vuegen"
)

// Config carries every setting the command line tool reads. Zero values
// never survive loading; Default fills them in.
type Config struct {
	// Input is the interchange text file produced by an export.
	Input  string       `mapstructure:"input"`
	Target TargetConfig `mapstructure:"target"`
	Backup BackupConfig `mapstructure:"backup"`
	Export ExportConfig `mapstructure:"export"`
}

// TargetConfig locates the Vue application that receives the synthesized
// components. ComponentsDir and RootFile are relative to Dir.
type TargetConfig struct {
	Dir           string `mapstructure:"dir"`
	ComponentsDir string `mapstructure:"components_dir"`
	RootFile      string `mapstructure:"root_file"`
}

// BackupConfig controls the pre-import copy of the target directory.
// Backups are on unless explicitly disabled.
type BackupConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// ExportConfig carries export-side settings. An empty Output means the
// filename is derived from the exported frame's name.
type ExportConfig struct {
	Output string `mapstructure:"output"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	return &Config{
		Input: figmavuegen.DefaultInputFile,
		Target: TargetConfig{
			Dir:           figmavuegen.DefaultTargetDir,
			ComponentsDir: figmavuegen.DefaultComponentsDir,
			RootFile:      figmavuegen.DefaultRootFile,
		},
		Backup: BackupConfig{Enabled: true},
	}
}

// Validate reports every invalid field at once.
func Validate(cfg *Config) error {
	var errs []error
	if cfg.Input == "" {
		errs = append(errs, errors.New("input must not be empty"))
	}
	if cfg.Target.Dir == "" {
		errs = append(errs, errors.New("target.dir must not be empty"))
	}
	if cfg.Target.ComponentsDir == "" {
		errs = append(errs, errors.New("target.components_dir must not be empty"))
	}
	if cfg.Target.RootFile == "" {
		errs = append(errs, errors.New("target.root_file must not be empty"))
	}
	return errors.Join(errs...)
}
