package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type rcFile struct {
	MaxNumberOfProblems *int  `yaml:"maxNumberOfProblems"`
	ShowWarnings        *bool `yaml:"showWarnings"`
	EnableStrictMode    *bool `yaml:"enableStrictMode"`
}

// LoadFile reads a YAML settings file over base. Keys absent from the file
// keep their base value.
func LoadFile(path string, base Settings) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, err
	}
	return ParseRC(data, base)
}

// ParseRC decodes settings file contents over base.
func ParseRC(data []byte, base Settings) (Settings, error) {
	var rc rcFile
	if err := yaml.Unmarshal(data, &rc); err != nil {
		return base, fmt.Errorf("parse settings: %w", err)
	}
	out := base
	if rc.MaxNumberOfProblems != nil {
		if *rc.MaxNumberOfProblems < 0 {
			return base, fmt.Errorf("maxNumberOfProblems must not be negative, got %d", *rc.MaxNumberOfProblems)
		}
		out.MaxNumberOfProblems = *rc.MaxNumberOfProblems
	}
	if rc.ShowWarnings != nil {
		out.ShowWarnings = *rc.ShowWarnings
	}
	if rc.EnableStrictMode != nil {
		out.EnableStrictMode = *rc.EnableStrictMode
	}
	return out, nil
}
