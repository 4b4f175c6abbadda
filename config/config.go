// Package config holds the run configuration shared by the intcode commands.
package config

import (
	"fmt"
	"os"

	"github.com/colorfulnotion/intcode/intcode"
	"gopkg.in/yaml.v2"
)

type Config struct {
	MinMemory int    `yaml:"min_memory"`
	MaxMemory int64  `yaml:"max_memory"`
	Trace     bool   `yaml:"trace"`
	LogLevel  string `yaml:"log_level"`
	Debug     string `yaml:"debug"`
}

// Default leaves memory growth unbounded.
func Default() *Config {
	return &Config{
		MinMemory: intcode.DefaultMinMemory,
		LogLevel:  "info",
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.UnmarshalStrict(data, c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.MinMemory < 0 {
		return fmt.Errorf("min_memory must not be negative, got %d", c.MinMemory)
	}
	if c.MaxMemory < 0 {
		return fmt.Errorf("max_memory must not be negative, got %d", c.MaxMemory)
	}
	return nil
}

// VMConfig maps the run configuration onto a VM configuration.
func (c *Config) VMConfig() intcode.Config {
	return intcode.Config{
		MinMemory: c.MinMemory,
		MaxMemory: c.MaxMemory,
		Trace:     c.Trace,
	}
}

// String method returns the Config as a YAML document
func (c *Config) String() string {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("Error marshaling YAML: %v", err)
	}
	return string(data)
}
