package model

// Bindings is a name-keyed collection that remembers insertion order.
// The first binding added for a name wins: later additions of the
// same name are refused, so that enumeration is stable and the
// most-derived declaration, always collected first, is kept.
//
// A nil *Bindings is a valid, empty collection for reading, and
// the zero value is ready to use.
type Bindings[T any] struct {
	keys  []string
	items map[string]T
}

// NewBindings returns an empty collection.
func NewBindings[T any]() *Bindings[T] {
	return &Bindings[T]{items: make(map[string]T)}
}

// Add binds val to key, unless the key is already bound,
// in which case it returns false and leaves the collection as is.
func (b *Bindings[T]) Add(key string, val T) bool {
	if b.items == nil {
		b.items = make(map[string]T)
	}

	if _, exists := b.items[key]; exists {
		return false
	}

	b.keys = append(b.keys, key)
	b.items[key] = val

	return true
}

// Get returns the value bound to key.
func (b *Bindings[T]) Get(key string) (T, bool) {
	var zero T
	if b == nil {
		return zero, false
	}

	val, ok := b.items[key]

	return val, ok
}

// Keys returns all bound names, in insertion order.
func (b *Bindings[T]) Keys() []string {
	if b == nil {
		return nil
	}

	keys := make([]string, len(b.keys))
	copy(keys, b.keys)

	return keys
}

// Values returns all bound values, in insertion order.
func (b *Bindings[T]) Values() []T {
	if b == nil {
		return nil
	}

	values := make([]T, 0, len(b.keys))
	for _, key := range b.keys {
		values = append(values, b.items[key])
	}

	return values
}

// Len returns the number of bindings.
func (b *Bindings[T]) Len() int {
	if b == nil {
		return 0
	}

	return len(b.keys)
}
