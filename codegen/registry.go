package codegen

import "sort"

// Registry tracks the class names emitted during one generation run. A class
// name is registered before its body is built, so a recursive attempt to
// regenerate the same class short-circuits instead of recursing forever.
// This is the sole termination mechanism on cyclic schema graphs.
//
// A Registry belongs to a single Generator run and is not safe for
// concurrent use.
type Registry struct {
	names map[string]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[string]struct{})}
}

// Visit registers the class name and reports whether it was new. A false
// return means the class was already emitted during this run.
func (r *Registry) Visit(name string) bool {
	if _, ok := r.names[name]; ok {
		return false
	}
	r.names[name] = struct{}{}
	return true
}

// Contains reports whether the class name was registered.
func (r *Registry) Contains(name string) bool {
	_, ok := r.names[name]
	return ok
}

// Names returns all registered class names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.names))
	for n := range r.names {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
