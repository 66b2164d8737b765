// Package config loads littlec settings from a YAML file. Command line flags
// are applied on top of the loaded values by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/raymyers/littlec/pkg/irgen"
	"github.com/raymyers/littlec/pkg/logger"
)

// Config is the file form of the compiler settings.
type Config struct {
	// Builtins are the functions callable without a definition.
	Builtins []string `yaml:"builtins"`
	Log      Log      `yaml:"log"`
	Dump     Dump     `yaml:"dump"`
	// Renumber makes L<n> labels dense before output.
	Renumber bool `yaml:"renumber"`
}

// Log selects the diagnostic logger.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
	// Source adds the Go source position to each record.
	Source bool `yaml:"source"`
}

// Dump lists the representations written next to the input file.
type Dump struct {
	AST bool `yaml:"ast"`
	IR  bool `yaml:"ir"`
	CFG bool `yaml:"cfg"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		Builtins: append([]string(nil), irgen.DefaultBuiltins...),
		Log:      Log{Level: "warn", Format: "text"},
	}
}

// Load reads the file at path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads YAML settings over the defaults. Unknown keys are rejected.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that have a fixed vocabulary.
func (c *Config) Validate() error {
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	for _, b := range c.Builtins {
		if b == "" {
			return errors.New("empty builtin name")
		}
	}
	return nil
}

// Logger converts the log settings for logger.New.
func (c *Config) Logger(out io.Writer) (logger.Config, error) {
	level, err := logger.ParseLevel(c.Log.Level)
	if err != nil {
		return logger.Config{}, err
	}
	lc := logger.DefaultConfig()
	lc.Level = level
	if c.Log.Format != "" {
		lc.Format = c.Log.Format
	}
	lc.LogFile = c.Log.File
	lc.AddSource = c.Log.Source
	if out != nil {
		lc.Output = out
	}
	return lc, nil
}
