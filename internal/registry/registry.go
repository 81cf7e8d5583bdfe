// Package registry maps attribute type names to constructors.
//
// A Registry is safe for concurrent use: any number of lookups may run at
// once, while a registration excludes both lookups and other registrations.
package registry

import (
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/simonhull/exrheader/internal/types"
)

// Constructor returns a fresh, empty value for one type name.
type Constructor[T any] func() T

// Registry is a readers-writer locked map from type name to constructor.
// The zero value is not usable; call New.
type Registry[T any] struct {
	mu    sync.RWMutex
	ctors map[string]Constructor[T]
}

// New returns an empty registry.
func New[T any]() *Registry[T] {
	return &Registry[T]{ctors: make(map[string]Constructor[T])}
}

// Register adds a constructor for typeName. It fails if typeName is empty,
// contains a zero byte or is already registered, or if ctor is nil.
func (r *Registry[T]) Register(typeName string, ctor Constructor[T]) error {
	if typeName == "" || strings.IndexByte(typeName, 0) >= 0 || ctor == nil {
		return &types.RegistryError{TypeName: typeName, Err: types.ErrInvalidTypeName}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ctors[typeName]; ok {
		return &types.RegistryError{TypeName: typeName, Err: types.ErrDuplicateRegistration}
	}
	r.ctors[typeName] = ctor
	return nil
}

// New instantiates the type registered under typeName.
func (r *Registry[T]) New(typeName string) (T, error) {
	r.mu.RLock()
	ctor, ok := r.ctors[typeName]
	r.mu.RUnlock()

	if !ok {
		var zero T
		return zero, &types.RegistryError{TypeName: typeName, Err: types.ErrUnknownAttributeType}
	}
	return ctor(), nil
}

// IsKnown reports whether typeName is registered.
func (r *Registry[T]) IsKnown(typeName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ctors[typeName]
	return ok
}

// TypeNames returns the registered type names in sorted order.
func (r *Registry[T]) TypeNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.ctors))
}

// Len returns the number of registered types.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ctors)
}

// Clone returns an independent copy. Registrations on the copy do not affect
// r and vice versa.
func (r *Registry[T]) Clone() *Registry[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return &Registry[T]{ctors: maps.Clone(r.ctors)}
}
