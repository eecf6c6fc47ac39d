package inspect

import (
	"errors"
	"fmt"

	"github.com/kingrea/tweakboard/internal/host"
	"github.com/kingrea/tweakboard/internal/logging"
)

// Surface is the widget layer the renderer draws against. An
// implementation reports, per control per frame, whether the user changed
// the control's value.
type Surface interface {
	// TypeHeading opens a bold section for one classified type.
	TypeHeading(name string)
	// InstanceHeading opens a bold sub-section for one instance.
	InstanceHeading(obj host.Object)
	// Indent and Outdent scope a nested block.
	Indent()
	Outdent()
	// Separator closes a type section.
	Separator()
	// Field draws a scalar editor. Reports whether the user changed it.
	Field(p host.Property) bool
	// ArrayHeader draws an array foldout. Reports whether it is expanded.
	ArrayHeader(p host.Property) bool
	// ArraySize draws the element-count control. Reports change.
	ArraySize(p host.Property) bool
}

// PassResult carries the outcome of one render pass for one type,
// replacing cross-call mutable state: which property changed last, and
// whether that change diverged from the canonical source.
type PassResult struct {
	LastChanged string
	Diverged    bool
}

// FaultError wraps a host-level environment fault (typically an object
// destroyed between refresh and render). The caller reacts by triggering
// a full refresh rather than crashing.
type FaultError struct {
	Err error
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("inspect: environment fault: %v", e.Err)
}

func (e *FaultError) Unwrap() error { return e.Err }

func fault(err error) error {
	return &FaultError{Err: err}
}

// Renderer drives the synchronized render pass over classified types.
type Renderer struct {
	scene   host.Scene
	surface Surface
	log     *logging.Logger
}

// NewRenderer builds a renderer over a scene and a widget surface.
func NewRenderer(sc host.Scene, surface Surface, log *logging.Logger) *Renderer {
	return &Renderer{scene: sc, surface: surface, log: log}
}

// Render draws one classified type: the shared block once against the
// canonical instance, the fan-out of shared values to every instance, and
// each instance's own block. Called once per type per frame, in classify
// order. A type without instances is a no-op.
//
// Any host fault aborts the pass with a FaultError; the caller refreshes.
// Missing properties are warnings, never aborts.
func (r *Renderer) Render(ct ClassifiedType) (PassResult, error) {
	var result PassResult
	if len(ct.Instances) == 0 {
		return result, nil
	}
	canonical := ct.Instances[0]

	r.surface.TypeHeading(ct.Type.Name)
	r.surface.Indent()

	// Shared block: edit once against the canonical instance, apply once
	// after all shared fields drew.
	canonSess, err := r.scene.Edit(canonical)
	if err != nil {
		return result, fault(err)
	}
	sharedProps := make([]host.Property, 0, len(ct.Shared))
	for _, field := range ct.Shared {
		p, err := canonSess.Property(field.Name)
		if err != nil {
			if errors.Is(err, host.ErrNoProperty) {
				r.log.Printf("inspect: %s.%s has no serialized property; skipping", ct.Type.ID, field.Name)
				continue
			}
			return result, fault(err)
		}
		if r.drawProperty(p) {
			result.LastChanged = p.Path()
		}
		sharedProps = append(sharedProps, p)
	}
	if err := canonSess.Apply(); err != nil {
		return result, fault(err)
	}

	// Fan-out plus per-instance block. The shared values reach every
	// instance before that instance's own fields draw, so instanced
	// fields always edit against up-to-date shared state.
	for _, inst := range ct.Instances {
		sess, err := r.scene.Edit(inst)
		if err != nil {
			return result, fault(err)
		}
		for _, p := range sharedProps {
			if err := sess.Copy(p); err != nil {
				if errors.Is(err, host.ErrNoProperty) {
					r.log.Printf("inspect: %s.%s missing on %s; skipping copy", ct.Type.ID, p.Path(), inst.Name())
					continue
				}
				return result, fault(err)
			}
		}
		if err := sess.ApplyWithoutUndo(); err != nil {
			return result, fault(err)
		}

		r.surface.InstanceHeading(inst)
		r.surface.Indent()
		for _, field := range ct.Instanced {
			p, err := sess.Property(field.Name)
			if err != nil {
				if errors.Is(err, host.ErrNoProperty) {
					r.log.Printf("inspect: %s.%s has no serialized property; skipping", ct.Type.ID, field.Name)
					continue
				}
				r.surface.Outdent()
				return result, fault(err)
			}
			if !r.drawProperty(p) {
				continue
			}
			result.LastChanged = p.Path()
			diverged, err := r.reconcileOverride(inst, field.Name, p)
			if err != nil {
				r.surface.Outdent()
				return result, fault(err)
			}
			result.Diverged = diverged
		}
		r.surface.Outdent()
		if err := sess.Apply(); err != nil {
			return result, fault(err)
		}
	}

	r.surface.Outdent()
	r.surface.Separator()
	return result, nil
}

// drawProperty draws one editor, recursing into arrays. A collapsed array
// draws only its header; an expanded one draws the element-size control
// and then every element, nesting to arbitrary depth. Reports whether any
// control under the property changed this frame.
func (r *Renderer) drawProperty(p host.Property) bool {
	if !p.IsArray() {
		return r.surface.Field(p)
	}
	if !r.surface.ArrayHeader(p) {
		return false
	}
	changed := r.surface.ArraySize(p)
	r.surface.Indent()
	// Len is re-read each step so a size edit this frame draws against
	// the new length.
	for i := 0; i < p.Len(); i++ {
		if r.drawProperty(p.Element(i)) {
			changed = true
		}
	}
	r.surface.Outdent()
	return changed
}

// reconcileOverride runs once per changed instanced field per frame,
// never per array element: compare the new value against the canonical
// source and set or clear the instance's local-override flag.
func (r *Renderer) reconcileOverride(inst host.Object, field string, p host.Property) (bool, error) {
	src, ok := r.scene.CanonicalSource(inst)
	if !ok || src == inst {
		return false, nil
	}
	// Throwaway read session over the source; never applied.
	srcSess, err := r.scene.Edit(src)
	if err != nil {
		return false, err
	}
	srcProp, err := srcSess.Property(field)
	if err != nil {
		if errors.Is(err, host.ErrNoProperty) {
			return false, nil
		}
		return false, err
	}
	diverged := !host.Equal(p.Value(), srcProp.Value())
	if err := r.scene.SetOverride(inst, field, diverged); err != nil {
		return false, err
	}
	return diverged, nil
}
