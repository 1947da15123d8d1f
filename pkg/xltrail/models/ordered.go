package models

// Ordered is a string-keyed map that remembers insertion order.
// Setting an existing key replaces its value but keeps its position.
type Ordered[V any] struct {
	keys   []string
	values map[string]V
}

// NewOrdered returns an empty Ordered map.
func NewOrdered[V any]() *Ordered[V] {
	return &Ordered[V]{values: make(map[string]V)}
}

// Set stores v under key.
func (o *Ordered[V]) Set(key string, v V) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Get returns the value stored under key.
func (o *Ordered[V]) Get(key string) (V, bool) {
	if o == nil {
		var zero V
		return zero, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Ordered[V]) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Keys returns the keys in insertion order.
func (o *Ordered[V]) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// Len returns the number of keys.
func (o *Ordered[V]) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}
