// Package scene is the in-memory host the inspector attaches to: a flat
// object graph with prefab-source links, edit sessions over single
// objects, an undo journal, and per-field override bookkeeping.
//
// Everything here runs on the UI goroutine (the whole pipeline is
// frame-driven and synchronous), so no locking is done.
package scene

import (
	"fmt"
	"sort"

	"github.com/kingrea/tweakboard/internal/host"
)

// UndoRecord captures one committed field mutation.
type UndoRecord struct {
	ObjectID string
	Field    string
	Before   host.Value
	After    host.Value
}

// Scene owns the live objects and implements host.Scene.
type Scene struct {
	objects []*Object
	undo    []UndoRecord
	version uint64
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{}
}

// Add creates a standalone object and appends it in scene order.
func (s *Scene) Add(name, typeID string, active bool, fields map[string]host.Value) *Object {
	obj := newObject(name, typeID, active, fields)
	s.objects = append(s.objects, obj)
	s.version++
	return obj
}

// Instantiate derives a new instance from src, cloning its committed
// fields and recording src as the canonical source.
func (s *Scene) Instantiate(src *Object, name string) *Object {
	obj := newObject(name, src.typeID, true, src.fields)
	obj.source = src
	s.objects = append(s.objects, obj)
	s.version++
	return obj
}

// Destroy tears an object down. Open sessions over it start returning
// host.ErrObjectDestroyed.
func (s *Scene) Destroy(obj host.Object) {
	o, ok := obj.(*Object)
	if !ok || o.destroyed {
		return
	}
	o.destroyed = true
	s.version++
}

// Version increments on every structural mutation (add, instantiate,
// destroy). The tool window compares versions to detect hierarchy changes.
func (s *Scene) Version() uint64 { return s.version }

// ObjectsOfType implements host.Scene. Destroyed objects are excluded;
// inactive ones are not.
func (s *Scene) ObjectsOfType(typeID string) []host.Object {
	var out []host.Object
	for _, o := range s.objects {
		if o.destroyed || o.typeID != typeID {
			continue
		}
		out = append(out, o)
	}
	return out
}

// Edit implements host.Scene.
func (s *Scene) Edit(obj host.Object) (host.Session, error) {
	o, ok := obj.(*Object)
	if !ok {
		return nil, fmt.Errorf("scene: foreign object %T", obj)
	}
	if o.destroyed {
		return nil, fmt.Errorf("scene: edit %s: %w", o.name, host.ErrObjectDestroyed)
	}
	return &session{scene: s, obj: o, staged: map[string]host.Value{}}, nil
}

// CanonicalSource implements host.Scene. A destroyed source no longer
// counts as canonical.
func (s *Scene) CanonicalSource(obj host.Object) (host.Object, bool) {
	o, ok := obj.(*Object)
	if !ok || o.source == nil || o.source.destroyed {
		return nil, false
	}
	return o.source, true
}

// SetOverride implements host.Scene.
func (s *Scene) SetOverride(obj host.Object, field string, overridden bool) error {
	o, ok := obj.(*Object)
	if !ok {
		return fmt.Errorf("scene: foreign object %T", obj)
	}
	if o.destroyed {
		return fmt.Errorf("scene: override on %s: %w", o.name, host.ErrObjectDestroyed)
	}
	if overridden {
		o.overrides[field] = true
	} else {
		delete(o.overrides, field)
	}
	return nil
}

// Overridden reports whether a field carries a local-override flag.
func (s *Scene) Overridden(obj host.Object, field string) bool {
	o, ok := obj.(*Object)
	if !ok {
		return false
	}
	return o.overrides[field]
}

// UndoLen returns the number of records in the undo journal.
func (s *Scene) UndoLen() int { return len(s.undo) }

// Undo reverts the most recent committed mutation, if any.
func (s *Scene) Undo() (UndoRecord, bool) {
	if len(s.undo) == 0 {
		return UndoRecord{}, false
	}
	rec := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	for _, o := range s.objects {
		if o.id == rec.ObjectID && !o.destroyed {
			o.fields[rec.Field] = host.Clone(rec.Before)
			break
		}
	}
	return rec, true
}

func (s *Scene) recordUndo(rec UndoRecord) {
	s.undo = append(s.undo, rec)
}

// sortedFieldNames gives deterministic commit order for a staged set.
func sortedFieldNames(staged map[string]host.Value) []string {
	names := make([]string, 0, len(staged))
	for name := range staged {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
