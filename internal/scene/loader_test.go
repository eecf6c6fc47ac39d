package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kingrea/tweakboard/internal/host"
)

const sampleScene = `objects:
  - name: GuardPrefab
    type: guard
    fields:
      Speed: 3.5
      Waypoints: [gate, tower]
  - name: GuardA
    type: guard
    prefab: GuardPrefab
    fields:
      Speed: 3.5
      Waypoints: [gate]
  - name: GuardB
    type: guard
    active: false
    prefab: GuardPrefab
    fields:
      Speed: 4
      Waypoints: []
  - name: Board
    type: board
    fields:
      Grid:
        - [1, 2]
        - [3, 4]
`

func TestParseScene(t *testing.T) {
	sc, err := Parse([]byte(sampleScene))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	guards := sc.ObjectsOfType("guard")
	if len(guards) != 3 {
		t.Fatalf("expected 3 guards, got %d", len(guards))
	}
	if guards[0].Name() != "GuardPrefab" || guards[2].Name() != "GuardB" {
		t.Fatalf("document order must be preserved: %s, %s", guards[0].Name(), guards[2].Name())
	}
	if guards[2].(*Object).Active() {
		t.Fatalf("GuardB must be inactive")
	}
	src, ok := sc.CanonicalSource(guards[1])
	if !ok || src.Name() != "GuardPrefab" {
		t.Fatalf("prefab link not resolved: %v %v", src, ok)
	}
	// YAML integers land as int64, nested sequences as []host.Value.
	board := sc.ObjectsOfType("board")[0].(*Object)
	grid, _ := board.Field("Grid")
	rows, ok := grid.([]host.Value)
	if !ok || len(rows) != 2 {
		t.Fatalf("expected 2 grid rows, got %v", grid)
	}
	row0, ok := rows[0].([]host.Value)
	if !ok || row0[1] != int64(2) {
		t.Fatalf("nested array conversion broken: %v", rows[0])
	}
}

func TestParseSceneRejectsBadDocuments(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{"empty", "   ", "empty"},
		{"missing name", "objects:\n  - type: guard\n    fields: {Speed: 1}\n", "name is required"},
		{"missing type", "objects:\n  - name: A\n    fields: {Speed: 1}\n", "type is required"},
		{"duplicate name", "objects:\n  - name: A\n    type: g\n    fields: {S: 1}\n  - name: A\n    type: g\n    fields: {S: 1}\n", "duplicate object name"},
		{"unknown prefab", "objects:\n  - name: A\n    type: g\n    prefab: Ghost\n    fields: {S: 1}\n", "unknown prefab"},
		{"prefab type mismatch", "objects:\n  - name: P\n    type: other\n    fields: {S: 1}\n  - name: A\n    type: g\n    prefab: P\n    fields: {S: 1}\n", "has type other"},
	}
	for _, tc := range cases {
		_, err := Parse([]byte(tc.doc))
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: error %q does not mention %q", tc.name, err, tc.want)
		}
	}
}

func TestLoadFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(path, []byte(sampleScene), 0644); err != nil {
		t.Fatal(err)
	}
	sc, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(sc.ObjectsOfType("guard")) != 3 {
		t.Fatalf("loaded scene incomplete")
	}
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("missing file must error")
	}
}
