package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML configuration read with --config. Command-line
// flags take precedence over it.
type fileConfig struct {
	Title    string         `yaml:"title"`
	AttrList *bool          `yaml:"attr_list"`
	HTML     *bool          `yaml:"html"`
	LogLevel string         `yaml:"log_level"`
	Defaults map[string]any `yaml:"defaults"`
}

func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// stringOptions flattens decoded YAML values into directive options. Scalars
// keep their textual form; a null value becomes a bare key.
func stringOptions(values map[string]any) map[string]string {
	if len(values) == 0 {
		return nil
	}
	options := make(map[string]string, len(values))
	for key, value := range values {
		switch v := value.(type) {
		case nil:
			options[key] = ""
		case string:
			options[key] = v
		default:
			options[key] = fmt.Sprint(v)
		}
	}
	return options
}

// mergeOptions overlays each map onto the previous ones.
func mergeOptions(layers ...map[string]string) map[string]string {
	merged := make(map[string]string)
	for _, layer := range layers {
		for key, value := range layer {
			merged[key] = value
		}
	}
	return merged
}
