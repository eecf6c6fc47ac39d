package tweak

import (
	"fmt"
	"sync"
)

// Catalog maintains the registered tweakable type descriptors. Iteration
// order is registration order, which in turn drives the order types appear
// in the inspector.
type Catalog struct {
	mu    sync.RWMutex
	order []string
	types map[string]TypeSpec
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{types: map[string]TypeSpec{}}
}

// Register installs a type descriptor. Returns an error if the descriptor
// is malformed or the ID already exists.
func (c *Catalog) Register(spec TypeSpec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	normalized := spec.Normalized()
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.types[normalized.ID]; exists {
		return fmt.Errorf("tweak: type %s already registered", normalized.ID)
	}
	c.order = append(c.order, normalized.ID)
	c.types[normalized.ID] = normalized
	return nil
}

// MustRegister panics if registration fails.
func (c *Catalog) MustRegister(spec TypeSpec) {
	if err := c.Register(spec); err != nil {
		panic(err)
	}
}

// Lookup returns the descriptor for a type ID.
func (c *Catalog) Lookup(id string) (TypeSpec, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	spec, ok := c.types[id]
	return spec, ok
}

// Types returns every registered descriptor in registration order.
func (c *Catalog) Types() []TypeSpec {
	c.mu.RLock()
	defer c.mu.RUnlock()
	specs := make([]TypeSpec, 0, len(c.order))
	for _, id := range c.order {
		specs = append(specs, c.types[id])
	}
	return specs
}
