package plugins

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kingrea/tweakboard/internal/tweak"
)

const sampleDefinition = `id: guard
name: Guard
fields:
  - name: Speed
    scope: shared
    kind: float
  - name: Waypoints
    scope: instanced
    kind: array
    elem:
      kind: string
`

func TestParseDefinitionYAML(t *testing.T) {
	spec, err := ParseDefinitionYAML([]byte(sampleDefinition))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if spec.ID != "guard" || len(spec.Fields) != 2 {
		t.Fatalf("unexpected spec: %+v", spec)
	}
	if spec.Fields[0].Scope != tweak.ScopeShared || spec.Fields[1].Kind != tweak.KindArray {
		t.Fatalf("field details lost in parse: %+v", spec.Fields)
	}
}

func TestParseDefinitionYAMLErrors(t *testing.T) {
	if _, err := ParseDefinitionYAML([]byte("")); err == nil {
		t.Fatalf("expected empty payload to fail validation")
	}
	if _, err := ParseDefinitionYAML([]byte("id: broken\nfields: []\n")); err == nil {
		t.Fatalf("expected field-less descriptor to fail validation")
	}
}

func TestLoadDefinitionDir(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "guard.yaml")
	if err := os.WriteFile(path, []byte(sampleDefinition), 0644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	defs, err := LoadDefinitionDir(root)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(defs) != 1 {
		t.Fatalf("expected 1 definition, got %d", len(defs))
	}
	if defs[0].Path != path {
		t.Fatalf("expected path %s, got %s", path, defs[0].Path)
	}
	if defs[0].Spec.ID != "guard" {
		t.Fatalf("unexpected id: %+v", defs[0].Spec)
	}
}

func TestLoadDefinitionDirMissing(t *testing.T) {
	defs, err := LoadDefinitionDir(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("missing dir should not error: %v", err)
	}
	if defs != nil {
		t.Fatalf("expected nil slice for missing dir, got %v", defs)
	}
}
