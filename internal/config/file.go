package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the YAML profile location, CINERATE_CONFIG or config.yaml in the
// user config directory.
func File() string {
	if path := os.Getenv("CINERATE_CONFIG"); path != "" {
		return path
	}
	return filepath.Join(configDir(), "config.yaml")
}

// loadFile flattens the profile into the environment variable names it
// stands in for: the api section's base_url becomes API_BASE_URL. A missing
// file is not an error.
func loadFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var sections map[string]map[string]any
	if err := yaml.Unmarshal(data, &sections); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	values := make(map[string]string)
	for section, fields := range sections {
		for field, v := range fields {
			if v == nil {
				continue
			}
			values[strings.ToUpper(section+"_"+field)] = fmt.Sprint(v)
		}
	}
	return values, nil
}
