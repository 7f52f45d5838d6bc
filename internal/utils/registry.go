package utils

import (
	"cmp"
	"slices"
	"sync"
)

// Registry provides a generic, thread-safe registry with ordered keys
type Registry[K cmp.Ordered, V any] struct {
	mu    sync.RWMutex
	items map[K]V
}

// NewRegistry creates a new generic registry
func NewRegistry[K cmp.Ordered, V any]() *Registry[K, V] {
	return &Registry[K, V]{
		items: make(map[K]V),
	}
}

// Register adds or replaces an item and returns the value it replaced
func (r *Registry[K, V]) Register(key K, value V) (previous V, replaced bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous, replaced = r.items[key]
	r.items[key] = value
	return previous, replaced
}

// RegisterWithValidator adds an item after validator accepts it against the current contents
func (r *Registry[K, V]) RegisterWithValidator(key K, value V, validator func(K, V, map[K]V) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if validator != nil {
		if err := validator(key, value, r.items); err != nil {
			return err
		}
	}

	r.items[key] = value
	return nil
}

// Get retrieves an item from the registry
func (r *Registry[K, V]) Get(key K) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, exists := r.items[key]
	return value, exists
}

// Has checks if a key exists in the registry
func (r *Registry[K, V]) Has(key K) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.items[key]
	return exists
}

// Keys returns all keys in ascending order
func (r *Registry[K, V]) Keys() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]K, 0, len(r.items))
	for key := range r.items {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// Values returns all values ordered by key
func (r *Registry[K, V]) Values() []V {
	keys := r.Keys()

	r.mu.RLock()
	defer r.mu.RUnlock()

	values := make([]V, 0, len(keys))
	for _, k := range keys {
		values = append(values, r.items[k])
	}
	return values
}

// Size returns the number of items in the registry
func (r *Registry[K, V]) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}
