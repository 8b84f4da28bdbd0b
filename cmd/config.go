package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultConfigFile = ".dafsa.yaml"

type config struct {
	// Delimiter splits input lines into multi-character elements when it
	// occurs in the lexicon; empty means one element per character.
	Delimiter string `yaml:"delimiter"`
	Minimize  *bool  `yaml:"minimize"`
	Weights   *bool  `yaml:"weights"`
	// JoinDelimiter, when set, enables joining single-transition chains
	// into compound labels for display output.
	JoinDelimiter string `yaml:"join-delimiter"`
}

func (c config) minimize() bool { return c.Minimize == nil || *c.Minimize }
func (c config) weights() bool  { return c.Weights == nil || *c.Weights }

func loadConfig(path string) (config, error) {
	var cfg config

	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err != nil {
			return cfg, nil
		}
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
