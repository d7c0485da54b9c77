// Package layout computes item positions for virtualized collections. Three
// packing strategies share one contract: Linear (single column), Grid (fixed
// or responsive column count) and Masonry (greedy shortest-column packing).
// All per-item size facts come from a measure.Cache owned by the caller;
// packers hold only derived geometry.
package layout

// VisibleRange is the half-open index interval [Start, End) that must be
// materialized by the render collaborator. It is derived every frame and
// never stored across frames.
type VisibleRange struct {
	Start int
	End   int
}

// EmptyRange returns the canonical empty range.
func EmptyRange() VisibleRange {
	return VisibleRange{}
}

// Len returns the number of indices in the range.
func (r VisibleRange) Len() int {
	if r.IsEmpty() {
		return 0
	}
	return r.End - r.Start
}

// IsEmpty reports whether the range contains no indices.
func (r VisibleRange) IsEmpty() bool {
	return r.Start >= r.End
}

// Contains reports whether an index falls inside the range.
func (r VisibleRange) Contains(index int) bool {
	return index >= r.Start && index < r.End
}

// WithOverscan expands the range by overscan indices on both sides,
// saturating at zero and at the collection size.
func (r VisibleRange) WithOverscan(overscan, total int) VisibleRange {
	if r.IsEmpty() {
		return r
	}
	start := max(0, r.Start-overscan)
	end := min(total, r.End+overscan)
	return VisibleRange{Start: start, End: end}
}

// Size is a width/height pair in layout units.
type Size struct {
	Width  float64
	Height float64
}

// Rect is an item's placement in content space.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// IntersectsY reports whether the rect overlaps the vertical band
// [top, top+extent).
func (r Rect) IntersectsY(top, extent float64) bool {
	return r.Bottom() > top && r.Y < top+extent
}

// Packer maps scroll offsets to visible index ranges and indices to
// positions. Implementations are selected once at construction; switching
// strategies mid-session requires a full re-layout.
//
// All methods are total: out-of-range indices are clamped and degenerate
// viewports produce empty ranges, never errors.
type Packer interface {
	// VisibleRange returns the strict (pre-overscan) range of items whose
	// extent overlaps [offset, offset+viewport).
	VisibleRange(offset, viewport float64) VisibleRange
	// PositionOf returns the content-space placement of an item.
	PositionOf(index int) Rect
	// ContentExtent returns the total scrollable height.
	ContentExtent() float64
	// Total returns the collection size the packer is laying out.
	Total() int
	// SetTotal resizes the collection without disturbing cached geometry
	// for surviving indices.
	SetTotal(total int)
	// SetContainerWidth informs the packer of the available width. Only
	// Grid and Masonry react to it.
	SetContainerWidth(width float64)
	// Invalidate discards cached geometry for all indices at or after
	// from, typically after a measurement changed at that index.
	Invalidate(from int)
}
