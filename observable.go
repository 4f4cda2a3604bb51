package chipflow

import "slices"

// Observable is a generic list that notifies listeners on every change.
// It keeps data management apart from whatever renders it.
type Observable[T any] struct {
	items     []T
	listeners []func(Change[T])
}

// Change describes a modification to the observable.
type Change[T any] struct {
	Type  ChangeType
	Index int
	Item  T // For Add/Update, the new value
	Old   T // For Update/Remove, the old value
}

type ChangeType int

const (
	ChangeAdd ChangeType = iota
	ChangeUpdate
	ChangeRemove
	ChangeClear
	ChangeSet // Full replacement
)

func (t ChangeType) String() string {
	switch t {
	case ChangeAdd:
		return "add"
	case ChangeUpdate:
		return "update"
	case ChangeRemove:
		return "remove"
	case ChangeClear:
		return "clear"
	case ChangeSet:
		return "set"
	}
	return "unknown"
}

// NewObservable creates an observable list holding items.
func NewObservable[T any](items ...T) *Observable[T] {
	return &Observable[T]{items: items}
}

// Items returns all items. The slice must not be modified, and later changes
// to the list may reuse its backing array; clone it to keep it.
func (o *Observable[T]) Items() []T {
	return o.items
}

// Len returns the number of items.
func (o *Observable[T]) Len() int {
	return len(o.items)
}

// At returns the item at index i, or zero value if out of bounds.
func (o *Observable[T]) At(i int) T {
	if i < 0 || i >= len(o.items) {
		var zero T
		return zero
	}
	return o.items[i]
}

// IndexFunc returns the index of the first item satisfying fn, or -1.
func (o *Observable[T]) IndexFunc(fn func(T) bool) int {
	return slices.IndexFunc(o.items, fn)
}

// Set replaces all items.
func (o *Observable[T]) Set(items []T) *Observable[T] {
	o.items = items
	o.notify(Change[T]{Type: ChangeSet})
	return o
}

// Add appends an item.
func (o *Observable[T]) Add(item T) *Observable[T] {
	idx := len(o.items)
	o.items = append(o.items, item)
	o.notify(Change[T]{Type: ChangeAdd, Index: idx, Item: item})
	return o
}

// Insert inserts an item at index i, clamped to the list bounds.
func (o *Observable[T]) Insert(i int, item T) *Observable[T] {
	i = max(0, min(i, len(o.items)))
	o.items = slices.Insert(o.items, i, item)
	o.notify(Change[T]{Type: ChangeAdd, Index: i, Item: item})
	return o
}

// RemoveAt removes the item at index i.
func (o *Observable[T]) RemoveAt(i int) *Observable[T] {
	if i < 0 || i >= len(o.items) {
		return o
	}
	old := o.items[i]
	o.items = slices.Delete(o.items, i, i+1)
	o.notify(Change[T]{Type: ChangeRemove, Index: i, Old: old})
	return o
}

// Update modifies the item at index i.
func (o *Observable[T]) Update(i int, fn func(*T)) *Observable[T] {
	if i < 0 || i >= len(o.items) {
		return o
	}
	old := o.items[i]
	fn(&o.items[i])
	o.notify(Change[T]{Type: ChangeUpdate, Index: i, Item: o.items[i], Old: old})
	return o
}

// Clear removes all items.
func (o *Observable[T]) Clear() *Observable[T] {
	o.items = nil
	o.notify(Change[T]{Type: ChangeClear})
	return o
}

// Subscribe adds a change listener and returns an unsubscribe function.
func (o *Observable[T]) Subscribe(fn func(Change[T])) func() {
	o.listeners = append(o.listeners, fn)
	idx := len(o.listeners) - 1
	return func() {
		// zero out, don't reorder: other unsubscribe funcs hold indexes
		o.listeners[idx] = nil
	}
}

func (o *Observable[T]) notify(c Change[T]) {
	for _, fn := range o.listeners {
		if fn != nil {
			fn(c)
		}
	}
}
