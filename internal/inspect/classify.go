// Package inspect is the inspector core: it classifies catalog types into
// shared and per-instance field sets, resolves the live instances of each
// type, and drives the synchronized render pass that fans shared edits out
// to every instance.
package inspect

import (
	"github.com/kingrea/tweakboard/internal/host"
	"github.com/kingrea/tweakboard/internal/logging"
	"github.com/kingrea/tweakboard/internal/tweak"
)

// ClassifiedType is the per-refresh model for one tweakable type. It is
// rebuilt from scratch on every refresh and never mutated incrementally.
type ClassifiedType struct {
	Type      tweak.TypeSpec
	Shared    []tweak.FieldSpec
	Instanced []tweak.FieldSpec

	// Instances holds every resident object of the type. When
	// HasCanonical is true, Instances[0] is the canonical (prefab
	// source) instance.
	Instances    []host.Object
	HasCanonical bool
}

// Classify partitions every catalog type's fields into shared and
// per-instance sets, in declaration order. Fields that are tweakable but
// not serialized are skipped with one warning per refresh; types left
// with no qualifying fields are dropped. Classify keeps no state between
// calls and may be re-invoked at any time.
func Classify(cat *tweak.Catalog, log *logging.Logger) []ClassifiedType {
	var out []ClassifiedType
	for _, spec := range cat.Types() {
		ct := ClassifiedType{Type: spec}
		for _, field := range spec.Fields {
			if !field.Serialized() {
				log.Printf("inspect: field %s.%s is tweakable but not serialized; skipping", spec.ID, field.Name)
				continue
			}
			if field.Scope == tweak.ScopeShared {
				ct.Shared = append(ct.Shared, field)
			} else {
				ct.Instanced = append(ct.Instanced, field)
			}
		}
		if len(ct.Shared) == 0 && len(ct.Instanced) == 0 {
			continue
		}
		out = append(out, ct)
	}
	return out
}

// Refresh rebuilds the full classified model: classify every catalog type,
// then resolve each type's live instances. Types without instances stay in
// the result; the renderer skips them.
func Refresh(cat *tweak.Catalog, sc host.Scene, log *logging.Logger) []ClassifiedType {
	types := Classify(cat, log)
	for i := range types {
		PopulateInstances(&types[i], sc)
	}
	return types
}
