package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// convertConfig mirrors the convert flags for YAML configuration files.
type convertConfig struct {
	Format    string `yaml:"format"`
	Output    string `yaml:"output"`
	Engine    string `yaml:"engine"`
	Endpoint  string `yaml:"endpoint"`
	Model     string `yaml:"model"`
	Languages string `yaml:"languages"`
	Prompt    string `yaml:"prompt"`
	DPI       int    `yaml:"dpi"`
	MaxSide   int    `yaml:"max_side"`
	Jobs      int    `yaml:"jobs"`
}

// loadConfig reads and parses a YAML configuration file.
func loadConfig(path string) (convertConfig, error) {
	var cfg convertConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// apply copies file values into options whose flags were not set on the
// command line. Explicit flags always win over the file.
func (c convertConfig) apply(cmd *cobra.Command, o *convertOptions) {
	flags := cmd.Flags()
	if c.Format != "" && !flags.Changed("format") {
		o.format = c.Format
	}
	if c.Output != "" && !flags.Changed("output") {
		o.output = c.Output
	}
	if c.Engine != "" && !flags.Changed("engine") {
		o.engine = c.Engine
	}
	if c.Endpoint != "" && !flags.Changed("endpoint") {
		o.endpoint = c.Endpoint
	}
	if c.Model != "" && !flags.Changed("model") {
		o.model = c.Model
	}
	if c.Languages != "" && !flags.Changed("languages") {
		o.languages = c.Languages
	}
	if c.Prompt != "" && !flags.Changed("prompt") {
		o.prompt = c.Prompt
	}
	if c.DPI > 0 && !flags.Changed("dpi") {
		o.dpi = c.DPI
	}
	if c.MaxSide > 0 && !flags.Changed("max-side") {
		o.maxSide = c.MaxSide
	}
	if c.Jobs > 0 && !flags.Changed("jobs") {
		o.jobs = c.Jobs
	}
}
