package scene

import (
	"fmt"
	"strings"

	"github.com/kingrea/tweakboard/internal/host"
)

// session is a bound editable view over one object. Writes stage into the
// session and only reach the object on Apply/ApplyWithoutUndo; an
// abandoned session commits nothing.
type session struct {
	scene  *Scene
	obj    *Object
	staged map[string]host.Value
}

// Target implements host.Session.
func (s *session) Target() host.Object { return s.obj }

// Property implements host.Session.
func (s *session) Property(name string) (host.Property, error) {
	if s.obj.destroyed {
		return nil, fmt.Errorf("scene: property %s on %s: %w", name, s.obj.name, host.ErrObjectDestroyed)
	}
	committed, ok := s.obj.fields[name]
	if !ok {
		return nil, fmt.Errorf("scene: %s.%s: %w", s.obj.typeID, name, host.ErrNoProperty)
	}
	if _, staged := s.staged[name]; !staged {
		s.staged[name] = host.Clone(committed)
	}
	return &property{sess: s, field: name}, nil
}

// Copy implements host.Session. Only field-root properties can be copied;
// the renderer fans out whole shared fields, never single elements.
func (s *session) Copy(from host.Property) error {
	if s.obj.destroyed {
		return fmt.Errorf("scene: copy into %s: %w", s.obj.name, host.ErrObjectDestroyed)
	}
	path := from.Path()
	if strings.ContainsRune(path, '[') {
		return fmt.Errorf("scene: copy supports field roots only, got %s", path)
	}
	if _, ok := s.obj.fields[path]; !ok {
		return fmt.Errorf("scene: %s.%s: %w", s.obj.typeID, path, host.ErrNoProperty)
	}
	s.staged[path] = host.Clone(from.Value())
	return nil
}

// Apply implements host.Session, journaling an undo record per mutated
// field.
func (s *session) Apply() error {
	return s.apply(true)
}

// ApplyWithoutUndo implements host.Session.
func (s *session) ApplyWithoutUndo() error {
	return s.apply(false)
}

func (s *session) apply(journal bool) error {
	if s.obj.destroyed {
		return fmt.Errorf("scene: apply to %s: %w", s.obj.name, host.ErrObjectDestroyed)
	}
	for _, name := range sortedFieldNames(s.staged) {
		staged := s.staged[name]
		committed := s.obj.fields[name]
		if host.Equal(staged, committed) {
			continue
		}
		if journal {
			s.scene.recordUndo(UndoRecord{
				ObjectID: s.obj.id,
				Field:    name,
				Before:   host.Clone(committed),
				After:    host.Clone(staged),
			})
		}
		s.obj.fields[name] = host.Clone(staged)
	}
	return nil
}

// property addresses a slot inside the session's staged state: the field
// root, or an element reached through a trail of array indices.
type property struct {
	sess  *session
	field string
	trail []int
}

// Path implements host.Property.
func (p *property) Path() string {
	var b strings.Builder
	b.WriteString(p.field)
	for _, idx := range p.trail {
		fmt.Fprintf(&b, "[%d]", idx)
	}
	return b.String()
}

// IsArray implements host.Property.
func (p *property) IsArray() bool {
	return host.IsArray(p.Value())
}

// Value implements host.Property.
func (p *property) Value() host.Value {
	v := p.sess.staged[p.field]
	for _, idx := range p.trail {
		vs, ok := v.([]host.Value)
		if !ok || idx < 0 || idx >= len(vs) {
			return nil
		}
		v = vs[idx]
	}
	return v
}

// SetValue implements host.Property.
func (p *property) SetValue(v host.Value) {
	p.sess.staged[p.field] = setAt(p.sess.staged[p.field], p.trail, host.Clone(v))
}

// Len implements host.Property.
func (p *property) Len() int {
	vs, ok := p.Value().([]host.Value)
	if !ok {
		return 0
	}
	return len(vs)
}

// Resize implements host.Property. Growing clones the last element into
// the new slots (nil when the array was empty), shrinking truncates.
func (p *property) Resize(n int) {
	vs, ok := p.Value().([]host.Value)
	if !ok || n < 0 || n == len(vs) {
		return
	}
	resized := make([]host.Value, n)
	copy(resized, vs)
	if n > len(vs) {
		var fill host.Value
		if len(vs) > 0 {
			fill = vs[len(vs)-1]
		}
		for i := len(vs); i < n; i++ {
			resized[i] = host.Clone(fill)
		}
	}
	p.SetValue(resized)
}

// Element implements host.Property.
func (p *property) Element(i int) host.Property {
	trail := make([]int, 0, len(p.trail)+1)
	trail = append(trail, p.trail...)
	trail = append(trail, i)
	return &property{sess: p.sess, field: p.field, trail: trail}
}

func setAt(root host.Value, trail []int, v host.Value) host.Value {
	if len(trail) == 0 {
		return v
	}
	vs, ok := root.([]host.Value)
	if !ok {
		return root
	}
	idx := trail[0]
	if idx < 0 || idx >= len(vs) {
		return root
	}
	out := make([]host.Value, len(vs))
	copy(out, vs)
	out[idx] = setAt(vs[idx], trail[1:], v)
	return out
}
