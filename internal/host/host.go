// Package host declares the capabilities tweakboard needs from the
// environment that owns the live objects: enumerate instances of a type,
// open an edit session over one instance, resolve an instance's canonical
// (prefab) source, and record per-field override flags. The inspector core
// consumes these interfaces only; it never reaches into a concrete scene.
package host

import "errors"

var (
	// ErrObjectDestroyed indicates a live object went away between the
	// moment it was enumerated and the moment it was edited.
	ErrObjectDestroyed = errors.New("host: object destroyed")
	// ErrNoProperty indicates a descriptor names a field the host's
	// serialization layer cannot find on the object.
	ErrNoProperty = errors.New("host: no such property")
)

// Object is an opaque handle to one live instance. Equality is identity:
// two Object values refer to the same instance iff they compare equal.
type Object interface {
	// ID is a stable identifier, unique within the scene.
	ID() string
	// Name is the display name shown in section headings.
	Name() string
	// TypeID names the tweakable type this object instantiates.
	TypeID() string
}

// Property is one editable slot inside an open Session. Writes stage into
// the session and are discarded unless the session is applied.
type Property interface {
	// Path identifies the slot within the object, e.g. "Speed" or
	// "Waypoints[2]".
	Path() string
	// IsArray reports whether the slot holds an ordered collection.
	IsArray() bool
	// Value returns the staged value (the committed value until a write).
	Value() Value
	// SetValue stages a new value.
	SetValue(Value)
	// Len returns the element count of an array slot, 0 otherwise.
	Len() int
	// Resize stages a new element count, truncating or zero-filling.
	Resize(int)
	// Element returns the property bound to index i of an array slot.
	Element(i int) Property
}

// Session is a bound editable view over one object's fields. A session
// must be finalized with Apply or ApplyWithoutUndo to commit staged
// writes; an abandoned session commits nothing.
type Session interface {
	// Target returns the object the session edits.
	Target() Object
	// Property looks up an editable slot by field name. Returns
	// ErrNoProperty when the field has no serialized counterpart and
	// ErrObjectDestroyed when the target is gone.
	Property(name string) (Property, error)
	// Copy stages the value of a property taken from another session
	// into this session's slot of the same path.
	Copy(from Property) error
	// Apply commits staged writes and records undo history for each
	// mutated field.
	Apply() error
	// ApplyWithoutUndo commits staged writes silently. Used when fanning
	// shared values out to instances the user did not touch.
	ApplyWithoutUndo() error
}

// Scene is the live-object query surface plus prefab bookkeeping.
type Scene interface {
	// ObjectsOfType returns every resident instance of the type,
	// including inactive ones, in scene order.
	ObjectsOfType(typeID string) []Object
	// Edit opens a fresh session over obj.
	Edit(obj Object) (Session, error)
	// CanonicalSource resolves the prefab source of obj, if any. The
	// second result is false when obj derives from nothing.
	CanonicalSource(obj Object) (Object, bool)
	// SetOverride records (true) or clears (false) the local-override
	// flag for one field of one instance.
	SetOverride(obj Object, field string, overridden bool) error
}
