package registry

import (
	"fmt"
	"sync"

	"github.com/pyowdigitals/optin/internal/config"
)

// Key is a typed registry key, named "module.service" by convention.
type Key[T any] string

// Registry lets modules share services at boot time. It is safe for concurrent use.
type Registry struct {
	services sync.Map
	cfg      config.Provider
}

// New creates an empty registry holding cfg.
func New(cfg config.Provider) *Registry {
	return &Registry{cfg: cfg}
}

// Config returns the application configuration.
func (r *Registry) Config() config.Provider {
	return r.cfg
}

// Set registers value under key, replacing any previous value.
func Set[T any](r *Registry, key Key[T], value T) {
	r.services.Store(string(key), value)
}

// Get returns the value stored under key and whether it was present.
func Get[T any](r *Registry, key Key[T]) (T, bool) {
	val, ok := r.services.Load(string(key))
	if !ok {
		var zero T
		return zero, false
	}
	result, ok := val.(T)
	return result, ok
}

// MustGet is Get for services a module cannot boot without.
func MustGet[T any](r *Registry, key Key[T]) T {
	val, ok := Get(r, key)
	if !ok {
		panic(fmt.Sprintf("service not found for key: %v", key))
	}
	return val
}
