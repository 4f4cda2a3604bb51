package chipflow

import "slices"

// Selection tracks which chips of an observable list are selected.
//
// The selected chips are kept in their own Observable, always in the same
// relative order as the source list, so hosts can subscribe to the selection
// without watching every chip. Chips removed from the source drop out of the
// selection.
type Selection[T ChipItem] struct {
	chips    *Observable[T]
	selected *Observable[T]
	unsub    func()
}

// NewSelection creates a selection over chips, starting from the chips
// already marked selected.
func NewSelection[T ChipItem](chips *Observable[T]) *Selection[T] {
	s := &Selection[T]{
		chips:    chips,
		selected: NewObservable[T](),
	}
	s.selected.Set(s.collect())
	s.unsub = chips.Subscribe(s.handleChange)
	return s
}

// handleChange keeps the selection in step with the source list.
func (s *Selection[T]) handleChange(c Change[T]) {
	switch c.Type {
	case ChangeAdd:
		if c.Item.IsSelected() {
			s.selected.Insert(s.insertPos(c.Item.ID()), c.Item)
		}

	case ChangeRemove:
		if i := s.indexOf(c.Old.ID()); i >= 0 {
			s.selected.RemoveAt(i)
		}

	case ChangeUpdate, ChangeClear, ChangeSet:
		s.resync()
	}
}

// Toggle flips the chip with the given id and returns its new state.
// Unknown ids return false.
func (s *Selection[T]) Toggle(id string) bool {
	if _, ok := s.chip(id); !ok {
		return false
	}
	if s.IsSelected(id) {
		s.Deselect(id)
		return false
	}
	s.Select(id)
	return true
}

// Select marks the chip selected. Returns false if the id is unknown or the
// chip was already in the selection.
//
// Membership of the selected list is authoritative: a chip flag flipped
// behind the selection's back is brought back in line here.
func (s *Selection[T]) Select(id string) bool {
	chip, ok := s.chip(id)
	if !ok {
		return false
	}
	chip.SetSelected(true)
	if s.indexOf(id) >= 0 {
		return false
	}
	s.selected.Insert(s.insertPos(id), chip)
	return true
}

// Deselect clears the chip's selection. Returns false if the id is unknown
// or the chip was not in the selection.
func (s *Selection[T]) Deselect(id string) bool {
	chip, ok := s.chip(id)
	if !ok {
		return false
	}
	chip.SetSelected(false)
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.selected.RemoveAt(i)
	return true
}

// Clear deselects every chip.
func (s *Selection[T]) Clear() {
	for _, chip := range s.chips.Items() {
		chip.SetSelected(false)
	}
	s.selected.Clear()
}

// Selected returns a copy of the selected chips in source order.
func (s *Selection[T]) Selected() []T {
	return slices.Clone(s.selected.Items())
}

// Names returns the names of the selected chips in source order.
func (s *Selection[T]) Names() []string {
	names := make([]string, 0, s.selected.Len())
	for _, chip := range s.selected.Items() {
		names = append(names, chip.Name())
	}
	return names
}

// IsSelected reports whether the chip with the given id is selected.
func (s *Selection[T]) IsSelected(id string) bool {
	return s.indexOf(id) >= 0
}

// Len returns the number of selected chips.
func (s *Selection[T]) Len() int {
	return s.selected.Len()
}

// Subscribe adds a listener for changes to the selected list.
func (s *Selection[T]) Subscribe(fn func(Change[T])) func() {
	return s.selected.Subscribe(fn)
}

// Dispose stops following the source list.
func (s *Selection[T]) Dispose() {
	if s.unsub != nil {
		s.unsub()
		s.unsub = nil
	}
}

func (s *Selection[T]) chip(id string) (T, bool) {
	i := s.chips.IndexFunc(func(c T) bool { return c.ID() == id })
	if i < 0 {
		var zero T
		return zero, false
	}
	return s.chips.At(i), true
}

func (s *Selection[T]) indexOf(id string) int {
	return s.selected.IndexFunc(func(c T) bool { return c.ID() == id })
}

// insertPos is where id goes in the selected list to keep source order.
func (s *Selection[T]) insertPos(id string) int {
	pos := 0
	for _, c := range s.chips.Items() {
		if c.ID() == id {
			break
		}
		if s.indexOf(c.ID()) >= 0 {
			pos++
		}
	}
	return pos
}

func (s *Selection[T]) collect() []T {
	var out []T
	for _, c := range s.chips.Items() {
		if c.IsSelected() {
			out = append(out, c)
		}
	}
	return out
}

// resync rebuilds the selected list from the chip flags, notifying only if
// the membership changed.
func (s *Selection[T]) resync() {
	next := s.collect()
	same := slices.EqualFunc(next, s.selected.Items(), func(a, b T) bool {
		return a.ID() == b.ID()
	})
	if !same {
		s.selected.Set(next)
	}
}
