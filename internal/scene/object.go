package scene

import (
	"github.com/google/uuid"

	"github.com/kingrea/tweakboard/internal/host"
)

// Object is one live instance resident in the scene. It satisfies
// host.Object; identity equality holds because the inspector only ever
// sees *Object pointers handed out by the owning Scene.
type Object struct {
	id        string
	name      string
	typeID    string
	active    bool
	destroyed bool
	source    *Object
	fields    map[string]host.Value
	overrides map[string]bool
}

func newObject(name, typeID string, active bool, fields map[string]host.Value) *Object {
	cloned := make(map[string]host.Value, len(fields))
	for k, v := range fields {
		cloned[k] = host.Clone(v)
	}
	return &Object{
		id:        uuid.NewString(),
		name:      name,
		typeID:    typeID,
		active:    active,
		fields:    cloned,
		overrides: map[string]bool{},
	}
}

// ID implements host.Object.
func (o *Object) ID() string { return o.id }

// Name implements host.Object.
func (o *Object) Name() string { return o.name }

// TypeID implements host.Object.
func (o *Object) TypeID() string { return o.typeID }

// Active reports whether the object is active in the scene. Inactive
// objects are still resident and still enumerated.
func (o *Object) Active() bool { return o.active }

// Destroyed reports whether the object has been torn down.
func (o *Object) Destroyed() bool { return o.destroyed }

// Field returns the committed value of one field.
func (o *Object) Field(name string) (host.Value, bool) {
	v, ok := o.fields[name]
	if !ok {
		return nil, false
	}
	return host.Clone(v), true
}
