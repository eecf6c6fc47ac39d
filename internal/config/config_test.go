package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadProjectConfigDefaultsWhenMissing(t *testing.T) {
	projectDir := t.TempDir()
	boardDir := filepath.Join(projectDir, TweakboardDir)
	if err := os.MkdirAll(boardDir, 0755); err != nil {
		t.Fatal(err)
	}
	c := &Config{ProjectDir: projectDir, TweakboardProjectDir: boardDir, Project: defaultProjectConfig()}
	if err := c.loadProjectConfig(); err != nil {
		t.Fatalf("loadProjectConfig returned error: %v", err)
	}
	if c.Project.Version != 1 {
		t.Fatalf("expected default version == 1, got %d", c.Project.Version)
	}
	if got := c.ScenePath(); got != filepath.Join(boardDir, "scene.yaml") {
		t.Fatalf("expected default scene path, got %q", got)
	}
	if !c.MarkInactive() {
		t.Fatalf("expected mark_inactive default true")
	}
}

func TestLoadProjectConfigParsesYaml(t *testing.T) {
	projectDir := t.TempDir()
	boardDir := filepath.Join(projectDir, TweakboardDir)
	if err := os.MkdirAll(boardDir, 0755); err != nil {
		t.Fatal(err)
	}
	configYAML := strings.TrimSpace(`
version: 1
scene: fixtures/demo.yaml
inspector:
  mark_inactive: false
`)
	if err := os.WriteFile(filepath.Join(boardDir, "config.yaml"), []byte(configYAML), 0644); err != nil {
		t.Fatal(err)
	}
	c := &Config{ProjectDir: projectDir, TweakboardProjectDir: boardDir, Project: defaultProjectConfig()}
	if err := c.loadProjectConfig(); err != nil {
		t.Fatalf("loadProjectConfig returned error: %v", err)
	}
	if got := c.ScenePath(); got != filepath.Join(boardDir, "fixtures", "demo.yaml") {
		t.Fatalf("expected configured scene path, got %q", got)
	}
	if c.MarkInactive() {
		t.Fatalf("expected mark_inactive false from config")
	}
}

func TestInitTweakboardDirSeedsLayout(t *testing.T) {
	projectDir := t.TempDir()
	if err := InitTweakboardDir(projectDir); err != nil {
		t.Fatalf("InitTweakboardDir: %v", err)
	}
	for _, rel := range []string{"types", "logs"} {
		info, err := os.Stat(filepath.Join(projectDir, TweakboardDir, rel))
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s: %v", rel, err)
		}
	}
	data, err := os.ReadFile(filepath.Join(projectDir, TweakboardDir, "config.yaml"))
	if err != nil {
		t.Fatalf("expected seeded config.yaml: %v", err)
	}
	if !strings.Contains(string(data), "scene:") {
		t.Fatalf("seeded config missing scene entry")
	}
	// Re-running must not clobber an existing config.
	if err := os.WriteFile(filepath.Join(projectDir, TweakboardDir, "config.yaml"), []byte("version: 1\nscene: kept.yaml\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := InitTweakboardDir(projectDir); err != nil {
		t.Fatalf("re-init: %v", err)
	}
	data, _ = os.ReadFile(filepath.Join(projectDir, TweakboardDir, "config.yaml"))
	if !strings.Contains(string(data), "kept.yaml") {
		t.Fatalf("re-init must keep existing config")
	}
}
