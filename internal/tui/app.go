// internal/tui/app.go
//
// This is the tweakboard tool window. It uses bubbletea, which follows
// The Elm Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// Every frame the whole inspector pipeline runs synchronously on this
// goroutine: classify -> resolve instances -> synchronized render pass.
// Focus changes and scene mutations trigger a full refresh; nothing is
// diffed or kept between refreshes.

package tui

import (
	"errors"
	"io/fs"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/tweakboard/internal/config"
	"github.com/kingrea/tweakboard/internal/inspect"
	"github.com/kingrea/tweakboard/internal/logging"
	"github.com/kingrea/tweakboard/internal/scene"
	"github.com/kingrea/tweakboard/internal/tweak"
	"github.com/kingrea/tweakboard/plugins"
)

// AppOption customizes App construction for tests and alternate hosts.
type AppOption func(*App)

// WithScene attaches the app to an existing scene instead of loading the
// configured scene document.
func WithScene(sc *scene.Scene) AppOption {
	return func(a *App) {
		if sc != nil {
			a.scene = sc
		}
	}
}

// WithCatalog seeds the catalog directly, bypassing type-definition
// discovery under .tweakboard/types.
func WithCatalog(cat *tweak.Catalog) AppOption {
	return func(a *App) {
		if cat != nil {
			a.catalog = cat
		}
	}
}

// WithLogger overrides the log sink.
func WithLogger(log *logging.Logger) AppOption {
	return func(a *App) {
		if log != nil {
			a.logger = log
		}
	}
}

// App is the tool window model. It owns the per-refresh classified model
// and the per-frame row list; everything else is rebuilt on demand.
type App struct {
	config  *config.Config
	logger  *logging.Logger
	catalog *tweak.Catalog
	scene   *scene.Scene

	types        []inspect.ClassifiedType
	sceneVersion uint64

	rows        []row
	selectedKey string
	expanded    map[string]bool
	pending     *pendingEdit
	lastResult  inspect.PassResult

	editing bool
	input   textinput.Model

	viewport  viewport.Model
	ready     bool
	width     int
	height    int
	statusMsg string
}

// NewApp builds the tool window for a project directory.
func NewApp(projectDir string, opts ...AppOption) (*App, error) {
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		return nil, err
	}
	app := &App{
		config:   cfg,
		expanded: map[string]bool{},
		input:    textinput.New(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	if app.logger == nil {
		log, err := logging.New(projectDir)
		if err != nil {
			return nil, err
		}
		app.logger = log
	}
	if app.catalog == nil {
		app.catalog = tweak.NewCatalog()
		if err := plugins.RegisterTweakableTypes(app.catalog, cfg); err != nil {
			return nil, err
		}
	}
	if app.scene == nil {
		sc, err := scene.Load(cfg.ScenePath())
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
			// No scene document yet: open over an empty graph.
			sc = scene.New()
		}
		app.scene = sc
	}
	app.input.Prompt = "= "
	app.input.CharLimit = 256
	app.refresh()
	app.renderPass()
	return app, nil
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return watchScene()
}

// refresh rebuilds the classified model from scratch: every catalog type
// re-partitioned, every instance set re-resolved. Nothing from the
// previous refresh survives.
func (a *App) refresh() {
	a.types = inspect.Refresh(a.catalog, a.scene, a.logger)
	a.sceneVersion = a.scene.Version()
}

// renderPass runs the synchronized render over all classified types and
// materializes the frame's rows. On an environment fault the frame is
// abandoned, the model refreshed, and one clean pass drawn in its place.
func (a *App) renderPass() {
	if a.drawFrame() {
		return
	}
	a.statusMsg = "live objects changed mid-frame; refreshed"
	a.pending = nil
	a.refresh()
	a.drawFrame()
}

// drawFrame runs one render pass. Reports false on an environment fault.
func (a *App) drawFrame() bool {
	surface := newRowSurface(a.scene, a.config.MarkInactive(), a.expanded, a.pending)
	renderer := inspect.NewRenderer(a.scene, surface, a.logger)
	for _, ct := range a.types {
		result, err := renderer.Render(ct)
		if err != nil {
			a.logger.Printf("tui: render %s: %v", ct.Type.ID, err)
			return false
		}
		if result.LastChanged != "" {
			a.lastResult = result
		}
	}
	if surface.editErr != nil {
		a.statusMsg = surface.editErr.Error()
	} else if surface.consumed {
		a.statusMsg = "value applied"
	}
	a.pending = nil
	a.rows = surface.rows
	a.clampSelection()
	a.syncViewport()
	return true
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		bodyHeight := max(1, msg.Height-4)
		if !a.ready {
			a.viewport = viewport.New(msg.Width, bodyHeight)
			a.ready = true
		} else {
			a.viewport.Width = msg.Width
			a.viewport.Height = bodyHeight
		}
		a.syncViewport()
		return a, nil

	case tea.FocusMsg, tea.BlurMsg:
		// Gaining or losing the window both re-scan the object graph.
		a.refresh()
		a.renderPass()
		return a, nil

	case sceneWatchMsg:
		if a.scene.Version() != a.sceneVersion {
			a.statusMsg = "hierarchy changed; refreshed"
			a.refresh()
		}
		a.renderPass()
		return a, watchScene()

	case tea.KeyMsg:
		if a.editing {
			return a.updateEditing(msg)
		}
		return a.updateBrowsing(msg)
	}
	return a, nil
}

func (a *App) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return a, tea.Quit
	case "up", "k":
		a.moveSelection(-1)
	case "down", "j":
		a.moveSelection(1)
	case "enter":
		r, ok := a.selectedRow()
		if !ok {
			break
		}
		if r.kind == rowArrayHeader {
			a.expanded[r.key] = !a.expanded[r.key]
			a.renderPass()
			break
		}
		if r.editable {
			a.editing = true
			a.input.SetValue(r.value)
			a.input.CursorEnd()
			a.input.Focus()
		}
	case " ", "tab":
		if r, ok := a.selectedRow(); ok && r.kind == rowArrayHeader {
			a.expanded[r.key] = !a.expanded[r.key]
			a.renderPass()
		}
	case "u":
		if rec, ok := a.scene.Undo(); ok {
			a.statusMsg = "undid edit of " + rec.Field
			a.renderPass()
		} else {
			a.statusMsg = "nothing to undo"
		}
	case "r":
		a.statusMsg = "refreshed"
		a.refresh()
		a.renderPass()
	default:
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		r, ok := a.selectedRow()
		a.editing = false
		a.input.Blur()
		if !ok {
			return a, nil
		}
		a.pending = &pendingEdit{key: r.key, input: a.input.Value()}
		a.renderPass()
		return a, nil
	case "esc":
		a.editing = false
		a.input.Blur()
		return a, nil
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// selectable reports whether the cursor may land on a row.
func selectable(r row) bool {
	return r.editable || r.kind == rowArrayHeader
}

func (a *App) selectedIndex() int {
	for i, r := range a.rows {
		if selectable(r) && r.key == a.selectedKey {
			return i
		}
	}
	return -1
}

func (a *App) selectedRow() (row, bool) {
	idx := a.selectedIndex()
	if idx < 0 {
		return row{}, false
	}
	return a.rows[idx], true
}

func (a *App) moveSelection(delta int) {
	idx := a.selectedIndex()
	for i := idx + delta; i >= 0 && i < len(a.rows); i += delta {
		if selectable(a.rows[i]) {
			a.selectedKey = a.rows[i].key
			a.syncViewport()
			return
		}
	}
}

// clampSelection keeps the cursor on a live row after a rebuild: same key
// when it survived, first selectable row otherwise.
func (a *App) clampSelection() {
	if a.selectedIndex() >= 0 {
		return
	}
	a.selectedKey = ""
	for _, r := range a.rows {
		if selectable(r) {
			a.selectedKey = r.key
			return
		}
	}
}
