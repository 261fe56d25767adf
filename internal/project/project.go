// Package project reads and writes per-project state under .docforge/:
// the recorded placeholder answers, the applied kit version, and the
// content hashes used to detect user customization on upgrade.
package project

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"
)

const (
	// StateDir is the per-project state directory name.
	StateDir = ".docforge"
	// ConfigFile is the project state file name inside StateDir.
	ConfigFile = "project.yaml"
	// BackupsDir holds cleanup snapshots inside StateDir.
	BackupsDir = "backups"
)

// Options records setup choices that later commands need to honor.
type Options struct {
	SkipAgents bool `yaml:"skip_agents,omitempty"`
	SkipGit    bool `yaml:"skip_git,omitempty"`
}

// Config represents the .docforge/project.yaml structure.
type Config struct {
	KitName     string            `yaml:"kit_name"`
	KitVersion  string            `yaml:"kit_version"`
	InstalledAt string            `yaml:"installed_at"`
	Answers     map[string]string `yaml:"answers"`
	// Rendered maps managed file paths to the sha256 of their content as
	// rendered at setup time. A differing hash on disk means the user has
	// customized the file.
	Rendered map[string]string `yaml:"rendered,omitempty"`
	Options  Options           `yaml:"options,omitempty"`
}

// ConfigPath returns the full path to .docforge/project.yaml for a project.
func ConfigPath(projectRoot string) string {
	return filepath.Join(projectRoot, StateDir, ConfigFile)
}

// BackupsPath returns the full path to .docforge/backups for a project.
func BackupsPath(projectRoot string) string {
	return filepath.Join(projectRoot, StateDir, BackupsDir)
}

// Exists reports whether the project has been set up (project.yaml present).
func Exists(projectRoot string) bool {
	_, err := os.Stat(ConfigPath(projectRoot))
	return err == nil
}

// Load reads and parses .docforge/project.yaml from the project directory.
func Load(projectRoot string) (*Config, error) {
	path := ConfigPath(projectRoot)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project state: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing project state: %w", err)
	}

	// A hand-edited project.yaml may drop the rendered block entirely;
	// callers write into this map, so it must never be nil.
	if config.Rendered == nil {
		config.Rendered = make(map[string]string)
	}

	return &config, nil
}

// Save writes the project state to .docforge/project.yaml, creating the
// state directory if needed.
func Save(projectRoot string, config *Config) error {
	dir := filepath.Join(projectRoot, StateDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s directory: %w", StateDir, err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshaling project state: %w", err)
	}

	if err := os.WriteFile(ConfigPath(projectRoot), data, 0644); err != nil {
		return fmt.Errorf("writing project state: %w", err)
	}

	return nil
}

// New returns a Config for a fresh setup with the install timestamp set.
func New(kitName, kitVersion string, answers map[string]string, opts Options) *Config {
	return &Config{
		KitName:     kitName,
		KitVersion:  kitVersion,
		InstalledAt: time.Now().Format(time.RFC3339),
		Answers:     answers,
		Rendered:    make(map[string]string),
		Options:     opts,
	}
}

// ContentHash returns the hex sha256 of rendered file content, as stored in
// the Rendered map.
func ContentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// IsCustomized reports whether the managed file at relPath differs from the
// content recorded at render time. Unknown paths and unreadable files count
// as customized so upgrade never clobbers them silently.
func (c *Config) IsCustomized(projectRoot, relPath string) bool {
	recorded, ok := c.Rendered[relPath]
	if !ok {
		return true
	}
	data, err := os.ReadFile(filepath.Join(projectRoot, relPath))
	if err != nil {
		return true
	}
	return ContentHash(data) != recorded
}
