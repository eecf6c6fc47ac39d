package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kingrea/tweakboard/internal/host"
	"github.com/kingrea/tweakboard/internal/scene"
)

// rowKind says what one rendered line of the inspector represents.
type rowKind int

const (
	rowTypeHeading rowKind = iota
	rowInstanceHeading
	rowField
	rowArrayHeader
	rowArraySize
	rowSeparator
)

// row is one line of the inspector body. Rows are rebuilt every frame by
// the render pass; the selection cursor addresses them by key.
type row struct {
	kind       rowKind
	key        string
	depth      int
	label      string
	value      string
	editable   bool
	expanded   bool
	overridden bool
	inactive   bool
}

// pendingEdit carries one committed text edit from the input line into
// the next render pass. It is consumed by the control whose key matches.
type pendingEdit struct {
	key   string
	input string
}

// rowSurface implements inspect.Surface by materializing rows. The
// surface holds the UI-owned state the engine asks about (which array
// headers are expanded) and applies at most one pending edit per pass.
type rowSurface struct {
	sc           *scene.Scene
	markInactive bool
	expanded     map[string]bool
	pending      *pendingEdit

	rows     []row
	depth    int
	typeName string
	section  string
	obj      host.Object
	consumed bool
	editErr  error
}

func newRowSurface(sc *scene.Scene, markInactive bool, expanded map[string]bool, pending *pendingEdit) *rowSurface {
	return &rowSurface{
		sc:           sc,
		markInactive: markInactive,
		expanded:     expanded,
		pending:      pending,
	}
}

func (s *rowSurface) key(p host.Property) string {
	return s.typeName + "/" + s.section + "/" + p.Path()
}

// TypeHeading implements inspect.Surface.
func (s *rowSurface) TypeHeading(name string) {
	s.typeName = name
	s.section = ""
	s.obj = nil
	s.rows = append(s.rows, row{kind: rowTypeHeading, key: name, depth: s.depth, label: name})
}

// InstanceHeading implements inspect.Surface.
func (s *rowSurface) InstanceHeading(obj host.Object) {
	s.section = obj.ID()
	s.obj = obj
	inactive := false
	if s.markInactive {
		if so, ok := obj.(*scene.Object); ok {
			inactive = !so.Active()
		}
	}
	s.rows = append(s.rows, row{
		kind:     rowInstanceHeading,
		key:      s.typeName + "/" + obj.ID(),
		depth:    s.depth,
		label:    obj.Name(),
		inactive: inactive,
	})
}

// Indent implements inspect.Surface.
func (s *rowSurface) Indent() { s.depth++ }

// Outdent implements inspect.Surface.
func (s *rowSurface) Outdent() { s.depth-- }

// Separator implements inspect.Surface.
func (s *rowSurface) Separator() {
	s.rows = append(s.rows, row{kind: rowSeparator, depth: s.depth})
}

// Field implements inspect.Surface.
func (s *rowSurface) Field(p host.Property) bool {
	key := s.key(p)
	changed := false
	if s.pending != nil && !s.consumed && s.pending.key == key {
		s.consumed = true
		if v, err := parseScalar(p.Value(), s.pending.input); err != nil {
			s.editErr = fmt.Errorf("%s: %w", p.Path(), err)
		} else {
			p.SetValue(v)
			changed = true
		}
	}
	s.rows = append(s.rows, row{
		kind:       rowField,
		key:        key,
		depth:      s.depth,
		label:      leafName(p.Path()),
		value:      formatValue(p.Value()),
		editable:   true,
		overridden: s.fieldOverridden(p),
	})
	return changed
}

// ArrayHeader implements inspect.Surface.
func (s *rowSurface) ArrayHeader(p host.Property) bool {
	key := s.key(p)
	expanded := s.expanded[key]
	s.rows = append(s.rows, row{
		kind:       rowArrayHeader,
		key:        key,
		depth:      s.depth,
		label:      leafName(p.Path()),
		value:      fmt.Sprintf("%d elements", p.Len()),
		expanded:   expanded,
		overridden: s.fieldOverridden(p),
	})
	return expanded
}

// ArraySize implements inspect.Surface.
func (s *rowSurface) ArraySize(p host.Property) bool {
	key := s.key(p) + "#size"
	changed := false
	if s.pending != nil && !s.consumed && s.pending.key == key {
		s.consumed = true
		if n, err := strconv.Atoi(strings.TrimSpace(s.pending.input)); err != nil || n < 0 {
			s.editErr = fmt.Errorf("%s: size must be a non-negative integer", p.Path())
		} else {
			p.Resize(n)
			changed = true
		}
	}
	s.rows = append(s.rows, row{
		kind:     rowArraySize,
		key:      key,
		depth:    s.depth,
		label:    "size",
		value:    strconv.Itoa(p.Len()),
		editable: true,
	})
	return changed
}

// fieldOverridden reports the override flag of the root field the
// property belongs to, for non-canonical instances only.
func (s *rowSurface) fieldOverridden(p host.Property) bool {
	if s.obj == nil {
		return false
	}
	return s.sc.Overridden(s.obj, rootField(p.Path()))
}

func rootField(path string) string {
	if i := strings.IndexByte(path, '['); i >= 0 {
		return path[:i]
	}
	return path
}

func leafName(path string) string {
	if i := strings.LastIndexByte(path, '['); i >= 0 {
		return "element " + strings.TrimSuffix(path[i+1:], "]")
	}
	return path
}

// parseScalar converts the edited text into the same dynamic type the
// slot currently holds.
func parseScalar(current host.Value, input string) (host.Value, error) {
	input = strings.TrimSpace(input)
	switch current.(type) {
	case bool:
		v, err := strconv.ParseBool(input)
		if err != nil {
			return nil, fmt.Errorf("want true or false")
		}
		return v, nil
	case int64:
		v, err := strconv.ParseInt(input, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("want an integer")
		}
		return v, nil
	case float64:
		v, err := strconv.ParseFloat(input, 64)
		if err != nil {
			return nil, fmt.Errorf("want a number")
		}
		return v, nil
	default:
		return input, nil
	}
}

func formatValue(v host.Value) string {
	switch val := v.(type) {
	case nil:
		return "<unset>"
	case bool:
		return strconv.FormatBool(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case string:
		return val
	case []host.Value:
		return fmt.Sprintf("(%d elements)", len(val))
	default:
		return fmt.Sprintf("%v", val)
	}
}
