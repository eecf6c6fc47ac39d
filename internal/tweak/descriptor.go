// Package tweak defines the declarative descriptors for tweakable types.
// A type announces its editable fields up front (name, scope, kind) instead
// of being discovered through runtime reflection; the catalog collects the
// descriptors and hands them to the inspector in registration order.
package tweak

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Scope says whether a field is edited once and fanned out to every
// instance, or edited independently per instance.
type Scope string

const (
	// ScopeShared marks a field edited against the canonical instance and
	// mirrored to all others.
	ScopeShared Scope = "shared"
	// ScopeInstanced marks a field edited per object instance.
	ScopeInstanced Scope = "instanced"
)

// Kind captures the editor shape of a field value.
type Kind string

const (
	KindBool   Kind = "bool"
	KindInt    Kind = "int"
	KindFloat  Kind = "float"
	KindString Kind = "string"
	KindArray  Kind = "array"
)

func validKind(k Kind) bool {
	switch k {
	case KindBool, KindInt, KindFloat, KindString, KindArray:
		return true
	}
	return false
}

// ElemSpec describes the element shape of an array field. Arrays nest by
// chaining ElemSpecs.
type ElemSpec struct {
	Kind Kind      `json:"kind" yaml:"kind"`
	Elem *ElemSpec `json:"elem,omitempty" yaml:"elem,omitempty"`
}

func (e ElemSpec) validate() error {
	if !validKind(e.Kind) {
		return fmt.Errorf("element kind %q is not recognized", e.Kind)
	}
	if e.Kind == KindArray {
		if e.Elem == nil {
			return fmt.Errorf("array element requires a nested elem")
		}
		return e.Elem.validate()
	}
	if e.Elem != nil {
		return fmt.Errorf("scalar element must not declare elem")
	}
	return nil
}

// FieldSpec declares one tweakable field of a type.
//
// A field whose name starts with an uppercase rune is serialized by
// default; a lowercase-named field is only serialized when Serialize is
// set explicitly. The classifier warns about and skips tweakable fields
// that are not serialized.
type FieldSpec struct {
	Name      string    `json:"name" yaml:"name"`
	Scope     Scope     `json:"scope" yaml:"scope"`
	Kind      Kind      `json:"kind" yaml:"kind"`
	Elem      *ElemSpec `json:"elem,omitempty" yaml:"elem,omitempty"`
	Serialize bool      `json:"serialize,omitempty" yaml:"serialize,omitempty"`
}

// Serialized reports whether the field has a serialized counterpart the
// host can edit.
func (f FieldSpec) Serialized() bool {
	if f.Serialize {
		return true
	}
	r, _ := utf8.DecodeRuneInString(f.Name)
	return unicode.IsUpper(r)
}

func (f FieldSpec) normalized() FieldSpec {
	clone := f
	clone.Name = strings.TrimSpace(f.Name)
	clone.Scope = Scope(strings.ToLower(strings.TrimSpace(string(f.Scope))))
	clone.Kind = Kind(strings.ToLower(strings.TrimSpace(string(f.Kind))))
	return clone
}

// Validate ensures the field declaration is well-formed. Serializability
// is deliberately not checked here: an annotated-but-unserialized field is
// a recoverable misconfiguration handled (with a warning) at classify
// time, not a registration error.
func (f FieldSpec) Validate() error {
	normalized := f.normalized()
	if normalized.Name == "" {
		return fmt.Errorf("field name is required")
	}
	if normalized.Scope != ScopeShared && normalized.Scope != ScopeInstanced {
		return fmt.Errorf("field %s: scope must be %q or %q, got %q", normalized.Name, ScopeShared, ScopeInstanced, normalized.Scope)
	}
	if !validKind(normalized.Kind) {
		return fmt.Errorf("field %s: kind %q is not recognized", normalized.Name, normalized.Kind)
	}
	if normalized.Kind == KindArray {
		if normalized.Elem == nil {
			return fmt.Errorf("field %s: array kind requires elem", normalized.Name)
		}
		if err := normalized.Elem.validate(); err != nil {
			return fmt.Errorf("field %s: %w", normalized.Name, err)
		}
	} else if normalized.Elem != nil {
		return fmt.Errorf("field %s: scalar kind must not declare elem", normalized.Name)
	}
	return nil
}

// TypeSpec declares one tweakable type and its fields in declaration
// order.
type TypeSpec struct {
	ID     string      `json:"id" yaml:"id"`
	Name   string      `json:"name,omitempty" yaml:"name,omitempty"`
	Fields []FieldSpec `json:"fields" yaml:"fields"`
}

// Normalized returns a trimmed copy of the spec.
func (t TypeSpec) Normalized() TypeSpec {
	clone := TypeSpec{
		ID:   strings.TrimSpace(t.ID),
		Name: strings.TrimSpace(t.Name),
	}
	if clone.Name == "" {
		clone.Name = clone.ID
	}
	if len(t.Fields) > 0 {
		clone.Fields = make([]FieldSpec, len(t.Fields))
		for i, field := range t.Fields {
			clone.Fields[i] = field.normalized()
		}
	}
	return clone
}

// Validate ensures the type declaration is well-formed.
func (t TypeSpec) Validate() error {
	normalized := t.Normalized()
	if normalized.ID == "" {
		return fmt.Errorf("tweak: type id is required")
	}
	if len(normalized.Fields) == 0 {
		return fmt.Errorf("tweak: type %s declares no fields", normalized.ID)
	}
	seen := make(map[string]struct{}, len(normalized.Fields))
	for _, field := range normalized.Fields {
		if err := field.Validate(); err != nil {
			return fmt.Errorf("tweak: type %s: %w", normalized.ID, err)
		}
		if _, exists := seen[field.Name]; exists {
			return fmt.Errorf("tweak: type %s: duplicate field %s", normalized.ID, field.Name)
		}
		seen[field.Name] = struct{}{}
	}
	return nil
}
