package cli

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read from the working directory when --config is not
// given. A missing default file is not an error.
const DefaultConfigFile = ".rpgscan.yaml"

// Config holds defaults for command flags. Explicit flags win.
type Config struct {
	DataDir string `yaml:"data_dir"`
	Format  string `yaml:"format"`
	Color   string `yaml:"color"`
	Out     string `yaml:"out"`
	DB      string `yaml:"db"`
}

// LoadConfig reads a YAML config file. Unknown keys are rejected.
//
// With explicit false, a missing file yields an empty Config.
func LoadConfig(path string, explicit bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, &ConfigError{Path: path, Err: err}
	}

	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, &ConfigError{Path: path, Err: err}
	}
	return cfg, nil
}

// applyString sets *dst from the config value when the flag was not given on
// the command line.
func applyString(cmd *cobra.Command, flag string, dst *string, value string) {
	if value == "" {
		return
	}
	f := cmd.Flags().Lookup(flag)
	if f == nil || f.Changed {
		return
	}
	*dst = value
}
