package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Loader resolves the effective configuration.
type Loader interface {
	// Load merges defaults, the optional .vuegen.yaml file and VUEGEN_*
	// environment variables, in rising priority, then validates the result.
	Load() (*Config, error)
}

type loader struct {
	dir string
}

// NewLoader returns a Loader that looks for .vuegen.yaml and .env in dir.
func NewLoader(dir string) Loader {
	return &loader{dir: dir}
}

func (l *loader) Load() (*Config, error) {
	// A .env file may carry FIGMA_TOKEN and VUEGEN_* overrides. Variables
	// already present in the environment win over the file.
	_ = godotenv.Load(filepath.Join(l.dir, ".env"))

	v := viper.New()
	v.SetConfigName(".vuegen")
	v.SetConfigType("yaml")
	v.AddConfigPath(l.dir)

	v.SetEnvPrefix("VUEGEN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// AutomaticEnv alone does not reach keys that only exist in the
	// defaults; bind each one explicitly.
	for _, key := range []string{
		"input",
		"target.dir",
		"target.components_dir",
		"target.root_file",
		"backup.enabled",
		"export.output",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// The file is optional; anything else is a real failure.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("input", def.Input)
	v.SetDefault("target.dir", def.Target.Dir)
	v.SetDefault("target.components_dir", def.Target.ComponentsDir)
	v.SetDefault("target.root_file", def.Target.RootFile)
	v.SetDefault("backup.enabled", def.Backup.Enabled)
	v.SetDefault("export.output", def.Export.Output)
}

// Load resolves configuration from the current directory.
func Load() (*Config, error) {
	return NewLoader(".").Load()
}
