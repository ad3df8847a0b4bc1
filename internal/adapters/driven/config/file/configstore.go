// Package file loads coralsearch configuration from a YAML file.
// A missing config file is not an error: every setting has a usable
// zero-value default.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/coral-tools/coralsearch/internal/logger"
)

// Config is the parsed coral.yaml.
type Config struct {
	Search struct {
		// Excluded are glob patterns pruned from every scan,
		// matched against full paths.
		Excluded []string `yaml:"excluded"`

		// Included are glob patterns gating content search.
		// Empty means no content-search filtering.
		Included []string `yaml:"included"`
	} `yaml:"search"`

	Tools struct {
		// Pdftotext overrides the PDF extraction tool path.
		Pdftotext string `yaml:"pdftotext"`
	} `yaml:"tools"`

	Editor struct {
		// Command opens result files. Defaults to "code".
		Command string `yaml:"command"`
	} `yaml:"editor"`
}

// DefaultEditor is used when no editor command is configured.
const DefaultEditor = "code"

// DefaultPath returns ~/.coral/coral.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".coral", "coral.yaml"), nil
}

// Load reads and parses the config file at path. A missing file yields
// defaults; a malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.Editor.Command = DefaultEditor

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("Config file not found: %s, using defaults", path)
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Editor.Command == "" {
		cfg.Editor.Command = DefaultEditor
	}
	logger.Debug("Loaded config: %d exclude, %d include patterns", len(cfg.Search.Excluded), len(cfg.Search.Included))
	return cfg, nil
}
