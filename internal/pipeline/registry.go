package pipeline

import (
	"fmt"
	"sort"
	"sync"

	"tabular/internal/logging"
	"tabular/internal/table"
)

// Transformation is a named, parameterized unit of work. Validate is called
// once per application, before any routing; ApplyInMemory is the eager
// backend implementation.
type Transformation interface {
	Name() string
	Validate(params map[string]any) error
	ApplyInMemory(t *table.MemTable, params map[string]any) (*table.MemTable, error)
}

// PartitionedApplier is optional; transformations that also support the
// partitioned backend implement it. Apply fails with an EngineError when a
// partitioned handle meets a transformation without it.
type PartitionedApplier interface {
	ApplyPartitioned(t *table.PartTable, params map[string]any) (*table.PartTable, error)
}

type Factory func() Transformation

// Registry maps transformation names to factories. It is an explicit
// dependency of the executor, populated once at startup; reads are safe from
// concurrent requests.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: map[string]Factory{}}
}

// Register keys the factory by its product's declared name. Registering a
// name again overwrites the earlier entry.
func (r *Registry) Register(f Factory) {
	name := f().Name()
	r.mu.Lock()
	r.factories[name] = f
	r.mu.Unlock()
	logging.L().Debug("registered transformation", "name", name)
}

func (r *Registry) Resolve(name string) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("transformation %q not found in registry", name)
	}
	return f, nil
}

// List returns a snapshot copy of the name to factory mapping. Callers may
// mutate the returned map without affecting the registry.
func (r *Registry) List() map[string]Factory {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]Factory, len(r.factories))
	for k, v := range r.factories {
		out[k] = v
	}
	return out
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	snapshot := r.List()
	names := make([]string, 0, len(snapshot))
	for k := range snapshot {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Apply is the generic entry point: validate the parameters once, then route
// to the implementation matching the handle's tag. The input handle is never
// modified; a new handle is returned.
func Apply(tr Transformation, h table.Handle, params map[string]any) (table.Handle, error) {
	if err := tr.Validate(params); err != nil {
		return table.Handle{}, err
	}
	switch h.Kind() {
	case table.Partitioned:
		pa, ok := tr.(PartitionedApplier)
		if !ok {
			return table.Handle{}, &EngineError{
				Reason: fmt.Sprintf("transformation %q has no partitioned backend implementation", tr.Name()),
			}
		}
		pt, err := pa.ApplyPartitioned(h.Part(), params)
		if err != nil {
			return table.Handle{}, err
		}
		return table.FromPart(pt), nil
	default:
		mt, err := tr.ApplyInMemory(h.Mem(), params)
		if err != nil {
			return table.Handle{}, err
		}
		return table.FromMem(mt), nil
	}
}
