package layout

import (
	"sort"

	"github.com/oxidekit/vlist/measure"
)

// Linear lays items out in a single column, each item's offset being the
// cumulative height of everything before it. Offsets are kept in a prefix
// array that grows lazily and is invalidated forward-only, so a measurement
// change at index k never recomputes anything before k.
type Linear struct {
	cache *measure.Cache
	gap   float64
	total int
	width float64

	// prefix[i] is the content-space Y offset of item i. Entries are valid
	// for every populated index; Invalidate truncates from the first dirty
	// index onward.
	prefix []float64
}

// NewLinear creates a linear packer over the given measurement cache.
func NewLinear(cache *measure.Cache, total int, gap float64) *Linear {
	if total < 0 {
		total = 0
	}
	if gap < 0 {
		gap = 0
	}
	return &Linear{
		cache:  cache,
		gap:    gap,
		total:  total,
		prefix: []float64{0},
	}
}

// Total implements Packer.
func (l *Linear) Total() int { return l.total }

// SetTotal implements Packer.
func (l *Linear) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	l.total = total
	if len(l.prefix) > total+1 {
		l.prefix = l.prefix[:total+1]
	}
}

// SetContainerWidth implements Packer. The width is carried into item
// placements but does not affect vertical layout.
func (l *Linear) SetContainerWidth(width float64) {
	l.width = max(0, width)
}

// Invalidate implements Packer. The offset of item i depends only on the
// heights of items before i, so entries up to and including from survive.
func (l *Linear) Invalidate(from int) {
	if from < 0 {
		from = 0
	}
	if keep := from + 1; keep < len(l.prefix) {
		l.prefix = l.prefix[:keep]
	}
}

// ensure extends the prefix array so that prefix[index] is populated.
func (l *Linear) ensure(index int) {
	if index > l.total-1 {
		index = l.total - 1
	}
	for len(l.prefix) <= index {
		i := len(l.prefix) - 1
		l.prefix = append(l.prefix, l.prefix[i]+l.cache.GetOrDefault(i).Height+l.gap)
	}
}

// ensureCovered extends the prefix array until it reaches the given content
// offset or runs out of items.
func (l *Linear) ensureCovered(offset float64) {
	for len(l.prefix) < l.total && l.prefix[len(l.prefix)-1] <= offset {
		l.ensure(len(l.prefix))
	}
}

// VisibleRange implements Packer.
func (l *Linear) VisibleRange(offset, viewport float64) VisibleRange {
	if l.total == 0 || viewport <= 0 {
		return EmptyRange()
	}
	offset = max(0, offset)
	bottom := offset + viewport
	l.ensureCovered(bottom)

	n := min(len(l.prefix), l.total)
	// First index whose offset exceeds the scroll position, then step back
	// to the item straddling it.
	start := sort.Search(n, func(i int) bool { return l.prefix[i] > offset }) - 1
	if start < 0 {
		start = 0
	}
	// A gap region can leave start's bottom above the viewport top.
	for start < l.total-1 && l.prefix[start]+l.cache.GetOrDefault(start).Height <= offset {
		start++
	}

	end := start
	for end < l.total {
		l.ensure(end)
		if l.prefix[end] >= bottom {
			break
		}
		end++
	}
	return VisibleRange{Start: start, End: end}
}

// PositionOf implements Packer.
func (l *Linear) PositionOf(index int) Rect {
	if l.total == 0 {
		return Rect{}
	}
	index = min(max(0, index), l.total-1)
	l.ensure(index)
	m := l.cache.GetOrDefault(index)
	w := l.width
	if w == 0 {
		w = m.Width
	}
	return Rect{Y: l.prefix[index], Width: w, Height: m.Height}
}

// ContentExtent implements Packer.
func (l *Linear) ContentExtent() float64 {
	if l.total == 0 {
		return 0
	}
	l.ensure(l.total - 1)
	return l.prefix[l.total-1] + l.cache.GetOrDefault(l.total-1).Height
}
