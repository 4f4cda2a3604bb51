package chipflow

import (
	"fmt"
	"slices"

	"github.com/kungfusheep/chipflow/internal/debug"
)

// DefaultMaxPasses bounds Settle. Items with fixed intrinsic sizes settle in
// two passes: one to measure, one to confirm nothing moved.
const DefaultMaxPasses = 4

// Alignment positions a row that is narrower than the container.
type Alignment uint8

const (
	AlignLeading Alignment = iota
	AlignCenter
	AlignTrailing
)

func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignTrailing:
		return "trailing"
	}
	return "leading"
}

// FlowRow is one row of a FlexibleView: its items and their target widths.
type FlowRow[T any] struct {
	Items  []T
	Widths []float64
}

// FlexibleView wraps the items of an Observable into rows that fill an
// available width.
//
// The view keeps no rows between calls. Hosts report measured sizes with
// ReportSize and call Rows whenever they render; OnInvalidate tells them when
// the answer may have changed.
type FlexibleView[T any, K comparable] struct {
	data  *Observable[T]
	key   func(T) K
	cache *SizeCache[K]

	availableWidth float64
	spacing        float64
	alignment      Alignment
	maxPasses      int

	listeners []func()
	unsub     func()
}

// NewFlexibleView creates a view over data. key must return a stable,
// unique key per item; it is what measured sizes are cached under.
func NewFlexibleView[T any, K comparable](data *Observable[T], key func(T) K) *FlexibleView[T, K] {
	v := &FlexibleView[T, K]{
		data:      data,
		key:       key,
		cache:     NewSizeCache[K](),
		maxPasses: DefaultMaxPasses,
	}
	v.unsub = data.Subscribe(func(Change[T]) {
		v.invalidate()
	})
	return v
}

// SetAvailableWidth sets the container width.
func (v *FlexibleView[T, K]) SetAvailableWidth(w float64) error {
	if !validWidth(w) {
		return fmt.Errorf("%w: got %v", ErrInvalidWidth, w)
	}
	if w != v.availableWidth {
		v.availableWidth = w
		v.invalidate()
	}
	return nil
}

// SetSpacing sets the horizontal gap between adjacent items in a row.
func (v *FlexibleView[T, K]) SetSpacing(s float64) error {
	if !validWidth(s) {
		return fmt.Errorf("%w: got %v", ErrInvalidSpacing, s)
	}
	if s != v.spacing {
		v.spacing = s
		v.invalidate()
	}
	return nil
}

// Alignment sets how rows are positioned by the host.
func (v *FlexibleView[T, K]) Alignment(a Alignment) *FlexibleView[T, K] {
	v.alignment = a
	return v
}

// MaxPasses sets the pass limit for Settle. Values below 1 are ignored.
func (v *FlexibleView[T, K]) MaxPasses(n int) *FlexibleView[T, K] {
	if n >= 1 {
		v.maxPasses = n
	}
	return v
}

// AvailableWidth returns the container width.
func (v *FlexibleView[T, K]) AvailableWidth() float64 { return v.availableWidth }

// Spacing returns the gap between adjacent items in a row.
func (v *FlexibleView[T, K]) Spacing() float64 { return v.spacing }

// GetAlignment returns the row alignment set by Alignment.
func (v *FlexibleView[T, K]) GetAlignment() Alignment { return v.alignment }

// GetMaxPasses returns the Settle pass limit set by MaxPasses.
func (v *FlexibleView[T, K]) GetMaxPasses() int { return v.maxPasses }

// Data returns the observable the view lays out.
func (v *FlexibleView[T, K]) Data() *Observable[T] { return v.data }

// Cache returns the measured sizes, keyed by Key.
func (v *FlexibleView[T, K]) Cache() *SizeCache[K] { return v.cache }

// Key returns the cache key of item.
func (v *FlexibleView[T, K]) Key(item T) K { return v.key(item) }

// ReportSize records the measured size of item. It is the measurement
// callback hosts call after rendering an item. Returns true if the cached
// size changed, in which case invalidation listeners have been notified.
func (v *FlexibleView[T, K]) ReportSize(item T, size Size) (bool, error) {
	changed, err := v.report(item, size)
	if err != nil {
		return false, err
	}
	if changed {
		v.invalidate()
	}
	return changed, nil
}

func (v *FlexibleView[T, K]) report(item T, size Size) (bool, error) {
	if !size.Valid() {
		return false, fmt.Errorf("%w: %v has size %+v", ErrInvalidSize, v.key(item), size)
	}
	return v.cache.Report(v.key(item), size), nil
}

// Rows lays out the current items against the current cache. The rows own
// their slices; later changes to the data do not show through them.
func (v *FlexibleView[T, K]) Rows() []FlowRow[T] {
	items := slices.Clone(v.data.Items())
	keys := make([]K, len(items))
	for i, item := range items {
		keys[i] = v.key(item)
	}

	lines := Layout(keys, v.cache.Snapshot(), v.availableWidth, v.spacing)

	rows := make([]FlowRow[T], len(lines))
	next := 0
	for i, line := range lines {
		n := len(line.Items)
		rows[i] = FlowRow[T]{
			Items:  items[next : next+n : next+n],
			Widths: line.Widths,
		}
		next += n
	}
	return rows
}

// Settle runs layout passes until a pass reports no new sizes. Each pass
// lays out the items and calls measure for every item with the width it was
// assigned. It returns the number of passes run, and ErrUnsettled if sizes
// were still changing after the pass limit; the cache then holds the last
// measurements and Rows reflects them.
func (v *FlexibleView[T, K]) Settle(measure func(item T, target float64) Size) (int, error) {
	anyChange := false
	defer func() {
		if anyChange {
			v.invalidate()
		}
	}()

	for pass := 1; pass <= v.maxPasses; pass++ {
		changed := false
		for _, row := range v.Rows() {
			for i, item := range row.Items {
				c, err := v.report(item, measure(item, row.Widths[i]))
				if err != nil {
					return pass, err
				}
				changed = changed || c
			}
		}
		if !changed {
			debug.Log("flexible view settled after %d passes (%d items, width %v)", pass, v.data.Len(), v.availableWidth)
			return pass, nil
		}
		anyChange = true
	}

	debug.Log("flexible view unsettled after %d passes (%d items, width %v)", v.maxPasses, v.data.Len(), v.availableWidth)
	return v.maxPasses, fmt.Errorf("%w after %d passes", ErrUnsettled, v.maxPasses)
}

// OnInvalidate registers fn to run whenever the layout may have changed:
// the data changed, the width or spacing changed, or a measurement changed.
// Returns an unsubscribe function.
func (v *FlexibleView[T, K]) OnInvalidate(fn func()) func() {
	v.listeners = append(v.listeners, fn)
	idx := len(v.listeners) - 1
	return func() {
		v.listeners[idx] = nil
	}
}

func (v *FlexibleView[T, K]) invalidate() {
	for _, fn := range v.listeners {
		if fn != nil {
			fn()
		}
	}
}

// Dispose stops following the data observable.
func (v *FlexibleView[T, K]) Dispose() {
	if v.unsub != nil {
		v.unsub()
		v.unsub = nil
	}
}
