package inspect

import "github.com/kingrea/tweakboard/internal/host"

// PopulateInstances fills ct.Instances with every resident object of the
// type, inactive ones included, and corrects the canonical instance's
// position.
//
// The canonical check deliberately looks only at the first-found instance:
// if it derives from a source object and that source is itself present in
// the set, the source is swapped into position 0. A single swap, not a
// sort, so the other instances keep their relative order.
func PopulateInstances(ct *ClassifiedType, sc host.Scene) {
	ct.Instances = sc.ObjectsOfType(ct.Type.ID)
	ct.HasCanonical = false
	if len(ct.Instances) == 0 {
		return
	}
	src, ok := sc.CanonicalSource(ct.Instances[0])
	if !ok {
		return
	}
	for i, obj := range ct.Instances {
		if obj == src {
			if i != 0 {
				ct.Instances[0], ct.Instances[i] = ct.Instances[i], ct.Instances[0]
			}
			ct.HasCanonical = true
			return
		}
	}
}
