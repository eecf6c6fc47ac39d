// internal/config/config.go
//
// This package handles configuration and the .tweakboard directory
// structure. Every project that uses tweakboard gets a .tweakboard/
// folder created in its root.

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

const (
	// TweakboardDir is the name of the directory we create in each project
	TweakboardDir = ".tweakboard"

	defaultSceneFile = "scene.yaml"
)

const defaultProjectConfigYAML = `# tweakboard project configuration
version: 1

# Scene document the inspector attaches to, relative to .tweakboard/.
scene: scene.yaml

# Tweakable type definitions are discovered under .tweakboard/types/
# (*.yaml descriptors and interpreted *.go scripts).

inspector:
  # Show a badge on objects whose active flag is off. The instance
  # registry always includes them; this only controls the heading.
  mark_inactive: true
`

// InspectorConfig captures presentation preferences for the tool window.
type InspectorConfig struct {
	MarkInactive bool `yaml:"mark_inactive"`
}

// ProjectConfig models .tweakboard/config.yaml.
type ProjectConfig struct {
	Version   int             `yaml:"version"`
	Scene     string          `yaml:"scene"`
	Inspector InspectorConfig `yaml:"inspector"`
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version:   1,
		Scene:     defaultSceneFile,
		Inspector: InspectorConfig{MarkInactive: true},
	}
}

// Config holds the runtime configuration for tweakboard.
type Config struct {
	// ProjectDir is the directory where the user ran `tweakboard` from
	ProjectDir string

	// TweakboardProjectDir is ProjectDir/.tweakboard
	TweakboardProjectDir string

	Project ProjectConfig
}

// InitTweakboardDir creates the .tweakboard directory structure in the
// given project directory. This is called when the TUI starts up.
//
// Structure created:
// .tweakboard/
// ├── types/    <- Tweakable type definitions (*.yaml, *.go)
// └── logs/     <- Warning and fault log
func InitTweakboardDir(projectDir string) error {
	boardDir := filepath.Join(projectDir, TweakboardDir)
	dirs := []string{
		filepath.Join(boardDir, "types"),
		filepath.Join(boardDir, "logs"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return ensureProjectConfig(filepath.Join(boardDir, "config.yaml"))
}

// NewConfig creates a new Config instance populated with project settings.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:           projectDir,
		TweakboardProjectDir: filepath.Join(projectDir, TweakboardDir),
		Project:              defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// TypesDir returns the directory scanned for tweakable type definitions.
func (c *Config) TypesDir() string {
	return filepath.Join(c.TweakboardProjectDir, "types")
}

// LogsDir returns the path to the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.TweakboardProjectDir, "logs")
}

// ScenePath returns the on-disk location of the scene document.
func (c *Config) ScenePath() string {
	scene := strings.TrimSpace(c.Project.Scene)
	if scene == "" {
		scene = defaultSceneFile
	}
	if filepath.IsAbs(scene) {
		return filepath.Clean(scene)
	}
	return filepath.Join(c.TweakboardProjectDir, scene)
}

// MarkInactive reports whether inactive instances get a heading badge.
func (c *Config) MarkInactive() bool {
	return c.Project.Inspector.MarkInactive
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.TweakboardProjectDir, "config.yaml")
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	parsed := defaultProjectConfig()
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	if parsed.Version == 0 {
		parsed.Version = 1
	}
	c.Project = parsed
	return nil
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(defaultProjectConfigYAML), 0644); err != nil {
		return fmt.Errorf("config: write default %s: %w", path, err)
	}
	return nil
}
