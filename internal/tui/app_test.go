package tui

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/tweakboard/internal/host"
	"github.com/kingrea/tweakboard/internal/logging"
	"github.com/kingrea/tweakboard/internal/scene"
	"github.com/kingrea/tweakboard/internal/tweak"
)

func testCatalog(t *testing.T) *tweak.Catalog {
	t.Helper()
	cat := tweak.NewCatalog()
	cat.MustRegister(tweak.TypeSpec{
		ID:   "guard",
		Name: "Guard",
		Fields: []tweak.FieldSpec{
			{Name: "Speed", Scope: tweak.ScopeShared, Kind: tweak.KindFloat},
			{Name: "Hp", Scope: tweak.ScopeInstanced, Kind: tweak.KindInt},
			{Name: "Waypoints", Scope: tweak.ScopeInstanced, Kind: tweak.KindArray,
				Elem: &tweak.ElemSpec{Kind: tweak.KindFloat}},
		},
	})
	return cat
}

func guardFields() map[string]host.Value {
	return map[string]host.Value{
		"Speed":     2.5,
		"Hp":        int64(10),
		"Waypoints": []host.Value{1.0, 2.0},
	}
}

func newTestApp(t *testing.T, sc *scene.Scene) *App {
	t.Helper()
	app, err := NewApp(t.TempDir(),
		WithScene(sc),
		WithCatalog(testCatalog(t)),
		WithLogger(logging.NewWithWriter(&bytes.Buffer{})))
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	return app
}

func findRows(a *App, kind rowKind, label string) []row {
	var out []row
	for _, r := range a.rows {
		if r.kind == kind && r.label == label {
			out = append(out, r)
		}
	}
	return out
}

func findRow(t *testing.T, a *App, kind rowKind, label string) row {
	t.Helper()
	rows := findRows(a, kind, label)
	if len(rows) == 0 {
		t.Fatalf("no row with kind %d label %q; have %d rows", kind, label, len(a.rows))
	}
	return rows[0]
}

func TestNewAppBuildsInspectorRows(t *testing.T) {
	sc := scene.New()
	sc.Add("GuardA", "guard", true, guardFields())
	sc.Add("GuardB", "guard", true, guardFields())
	app := newTestApp(t, sc)

	findRow(t, app, rowTypeHeading, "Guard")
	findRow(t, app, rowInstanceHeading, "GuardA")
	findRow(t, app, rowInstanceHeading, "GuardB")
	if got := len(findRows(app, rowField, "Speed")); got != 1 {
		t.Fatalf("shared field drawn %d times, want once", got)
	}
	if got := len(findRows(app, rowField, "Hp")); got != 2 {
		t.Fatalf("instanced field drawn %d times, want twice", got)
	}
	if app.selectedKey == "" {
		t.Fatal("selection did not land on a row")
	}
}

func TestSharedEditFansOutToAllInstances(t *testing.T) {
	sc := scene.New()
	a := sc.Add("GuardA", "guard", true, guardFields())
	b := sc.Add("GuardB", "guard", true, guardFields())
	app := newTestApp(t, sc)

	speed := findRow(t, app, rowField, "Speed")
	app.pending = &pendingEdit{key: speed.key, input: "9.5"}
	app.renderPass()

	for _, obj := range []*scene.Object{a, b} {
		v, ok := obj.Field("Speed")
		if !ok || v != 9.5 {
			t.Fatalf("%s Speed = %v, want 9.5", obj.Name(), v)
		}
	}
	if sc.UndoLen() != 1 {
		t.Fatalf("UndoLen() = %d, want 1 (fan-out must not journal)", sc.UndoLen())
	}
	if app.statusMsg != "value applied" {
		t.Fatalf("statusMsg = %q", app.statusMsg)
	}
	if findRow(t, app, rowField, "Speed").value != "9.5" {
		t.Fatal("redrawn row does not show the new value")
	}
}

func TestInstancedEditSetsOverride(t *testing.T) {
	sc := scene.New()
	src := sc.Add("GuardPrefab", "guard", true, guardFields())
	inst := sc.Instantiate(src, "GuardA")
	app := newTestApp(t, sc)

	key := "Guard/" + inst.ID() + "/Hp"
	app.pending = &pendingEdit{key: key, input: "42"}
	app.renderPass()

	if v, _ := inst.Field("Hp"); v != int64(42) {
		t.Fatalf("instance Hp = %v, want 42", v)
	}
	if v, _ := src.Field("Hp"); v != int64(10) {
		t.Fatalf("source Hp = %v, want untouched 10", v)
	}
	if !sc.Overridden(inst, "Hp") {
		t.Fatal("override flag not set after divergence")
	}

	// The marker lands on the frame after the edit: rows are emitted
	// before the pass reconciles the override for the changed field.
	app.renderPass()
	for _, r := range findRows(app, rowField, "Hp") {
		if strings.HasPrefix(r.key, "Guard/"+inst.ID()+"/") && !r.overridden {
			t.Fatal("instance row does not carry the override marker")
		}
	}
}

func TestRejectedEditKeepsValue(t *testing.T) {
	sc := scene.New()
	obj := sc.Add("GuardA", "guard", true, guardFields())
	app := newTestApp(t, sc)

	speed := findRow(t, app, rowField, "Speed")
	app.pending = &pendingEdit{key: speed.key, input: "fast"}
	app.renderPass()

	if v, _ := obj.Field("Speed"); v != 2.5 {
		t.Fatalf("Speed = %v, want unchanged 2.5", v)
	}
	if sc.UndoLen() != 0 {
		t.Fatalf("UndoLen() = %d, want 0", sc.UndoLen())
	}
	if !strings.Contains(app.statusMsg, "want a number") {
		t.Fatalf("statusMsg = %q, want parse complaint", app.statusMsg)
	}
}

func TestArrayExpansionShowsSizeAndElements(t *testing.T) {
	sc := scene.New()
	sc.Add("GuardA", "guard", true, guardFields())
	app := newTestApp(t, sc)

	header := findRow(t, app, rowArrayHeader, "Waypoints")
	if len(findRows(app, rowArraySize, "size")) != 0 {
		t.Fatal("collapsed array already shows a size control")
	}

	app.expanded[header.key] = true
	app.renderPass()

	if len(findRows(app, rowArraySize, "size")) != 1 {
		t.Fatal("expanded array is missing its size control")
	}
	if got := len(findRows(app, rowField, "element 0")); got != 1 {
		t.Fatalf("element 0 drawn %d times, want once", got)
	}
	if !findRow(t, app, rowArrayHeader, "Waypoints").expanded {
		t.Fatal("redrawn header lost its expansion state")
	}
}

func TestFocusRefreshDiscoversNewInstance(t *testing.T) {
	sc := scene.New()
	sc.Add("GuardA", "guard", true, guardFields())
	app := newTestApp(t, sc)
	sc.Add("GuardB", "guard", true, guardFields())

	if len(findRows(app, rowInstanceHeading, "GuardB")) != 0 {
		t.Fatal("new instance visible before any refresh")
	}
	app.Update(tea.FocusMsg{})
	findRow(t, app, rowInstanceHeading, "GuardB")
}

func TestSceneWatchRefreshesOnVersionChange(t *testing.T) {
	sc := scene.New()
	sc.Add("GuardA", "guard", true, guardFields())
	app := newTestApp(t, sc)
	sc.Add("GuardB", "guard", true, guardFields())

	_, cmd := app.Update(sceneWatchMsg{})
	if cmd == nil {
		t.Fatal("watch tick did not reschedule itself")
	}
	findRow(t, app, rowInstanceHeading, "GuardB")
	if app.sceneVersion != sc.Version() {
		t.Fatal("version snapshot not advanced after refresh")
	}
}

func TestDestroyedInstanceFaultTriggersSingleRefresh(t *testing.T) {
	sc := scene.New()
	sc.Add("GuardA", "guard", true, guardFields())
	doomed := sc.Add("GuardB", "guard", true, guardFields())
	app := newTestApp(t, sc)

	sc.Destroy(doomed)
	app.renderPass()

	if !strings.Contains(app.statusMsg, "refreshed") {
		t.Fatalf("statusMsg = %q, want refresh notice", app.statusMsg)
	}
	if len(findRows(app, rowInstanceHeading, "GuardB")) != 0 {
		t.Fatal("destroyed instance still drawn after refresh")
	}
	findRow(t, app, rowInstanceHeading, "GuardA")
}
