package layout

import (
	"log/slog"
	"math"
	"sort"

	"github.com/oxidekit/vlist/measure"
)

// MasonryConfig configures waterfall column packing.
type MasonryConfig struct {
	// Columns is the fixed column count. When zero, the count is derived
	// from MinColumnWidth and the container width.
	Columns int
	// Gap is the spacing between items within and across columns.
	Gap float64
	// MinColumnWidth bounds how narrow derived columns may get.
	MinColumnWidth float64
}

// DefaultMasonryConfig returns a two-column masonry layout.
func DefaultMasonryConfig() MasonryConfig {
	return MasonryConfig{Columns: 2}
}

type masonryPlacement struct {
	col    int
	y      float64
	height float64
}

// Masonry assigns each item, strictly in index order, to whichever column
// currently has the least accumulated height (ties broken by lowest column
// index). Packing is order-dependent and cumulative: a measurement change
// at index k invalidates every placement at or after k, so Invalidate
// re-packs from that index onward. Callers should batch measurement
// updates before triggering a re-pack.
type Masonry struct {
	cache *measure.Cache
	cfg   MasonryConfig
	total int
	width float64

	// placed[i] is the committed placement of item i; len(placed) is how
	// far packing has progressed.
	placed []masonryPlacement
	// cols[c] is the accumulated height of column c, including the gap
	// that follows its last item.
	cols []float64
	// maxItemHeight bounds how far above the viewport top an overlapping
	// item's top can sit, which keeps visible-range lookups cheap.
	maxItemHeight float64
}

// NewMasonry creates a masonry packer. A configuration that yields zero
// columns is clamped to one.
func NewMasonry(cache *measure.Cache, total int, cfg MasonryConfig) *Masonry {
	if total < 0 {
		total = 0
	}
	if cfg.Gap < 0 {
		cfg.Gap = 0
	}
	if cfg.Columns < 1 && cfg.MinColumnWidth <= 0 {
		slog.Warn("masonry column count clamped to 1", "columns", cfg.Columns)
		cfg.Columns = 1
	}
	m := &Masonry{cache: cache, cfg: cfg, total: total}
	m.cols = make([]float64, m.Columns())
	return m
}

// Columns returns the effective column count, never less than 1.
func (m *Masonry) Columns() int {
	cols := m.cfg.Columns
	if cols < 1 && m.cfg.MinColumnWidth > 0 && m.width > 0 {
		cols = int((m.width + m.cfg.Gap) / (m.cfg.MinColumnWidth + m.cfg.Gap))
	}
	return max(1, cols)
}

// Total implements Packer.
func (m *Masonry) Total() int { return m.total }

// SetTotal implements Packer.
func (m *Masonry) SetTotal(total int) {
	total = max(0, total)
	m.total = total
	if total < len(m.placed) {
		m.Invalidate(total)
	}
}

// SetContainerWidth implements Packer. A width change that alters the
// derived column count forces a full re-pack.
func (m *Masonry) SetContainerWidth(width float64) {
	width = max(0, width)
	if width == m.width {
		return
	}
	before := m.Columns()
	m.width = width
	if m.Columns() != before {
		m.Invalidate(0)
	}
}

// Invalidate implements Packer. Placements before from survive; column
// heights are rebuilt by replaying them, then packing resumes lazily.
func (m *Masonry) Invalidate(from int) {
	if from < 0 {
		from = 0
	}
	if from > len(m.placed) {
		from = len(m.placed)
	}
	m.placed = m.placed[:from]
	cols := make([]float64, m.Columns())
	m.maxItemHeight = 0
	for _, p := range m.placed {
		if p.col < len(cols) {
			cols[p.col] = p.y + p.height + m.cfg.Gap
		}
		m.maxItemHeight = max(m.maxItemHeight, p.height)
	}
	m.cols = cols
}

// ensurePacked advances packing so that every index below upTo is placed.
func (m *Masonry) ensurePacked(upTo int) {
	upTo = min(upTo, m.total)
	if len(m.cols) != m.Columns() {
		m.Invalidate(0)
	}
	for i := len(m.placed); i < upTo; i++ {
		col := 0
		for c := 1; c < len(m.cols); c++ {
			if m.cols[c] < m.cols[col] {
				col = c
			}
		}
		h := m.cache.GetOrDefault(i).Height
		m.placed = append(m.placed, masonryPlacement{col: col, y: m.cols[col], height: h})
		m.cols[col] += h + m.cfg.Gap
		m.maxItemHeight = max(m.maxItemHeight, h)
	}
}

// ColumnHeights returns a copy of the accumulated column heights.
func (m *Masonry) ColumnHeights() []float64 {
	m.ensurePacked(m.total)
	out := make([]float64, len(m.cols))
	copy(out, m.cols)
	return out
}

func (m *Masonry) columnWidth() float64 {
	cols := m.Columns()
	if m.width <= 0 {
		return m.cfg.MinColumnWidth
	}
	return max(0, (m.width-m.cfg.Gap*float64(cols-1))/float64(cols))
}

// VisibleRange implements Packer. The returned range is the contiguous
// index hull of all items overlapping the viewport band: item tops are
// non-decreasing in index under greedy packing, so the hull is found with
// one binary search plus a bounded walk.
func (m *Masonry) VisibleRange(offset, viewport float64) VisibleRange {
	if m.total == 0 || viewport <= 0 {
		return EmptyRange()
	}
	offset = max(0, offset)
	m.ensurePacked(m.total)
	bottom := offset + viewport

	// Items whose top is more than the tallest item above the viewport
	// cannot reach into it.
	lo := sort.Search(len(m.placed), func(i int) bool {
		return m.placed[i].y > offset-m.maxItemHeight-m.cfg.Gap
	})
	start := -1
	end := lo
	for i := lo; i < len(m.placed); i++ {
		p := m.placed[i]
		if p.y >= bottom {
			break
		}
		if p.y+p.height > offset {
			if start < 0 {
				start = i
			}
			end = i + 1
		}
	}
	if start < 0 {
		return EmptyRange()
	}
	return VisibleRange{Start: start, End: end}
}

// PositionOf implements Packer.
func (m *Masonry) PositionOf(index int) Rect {
	if m.total == 0 {
		return Rect{}
	}
	index = min(max(0, index), m.total-1)
	m.ensurePacked(index + 1)
	p := m.placed[index]
	w := m.columnWidth()
	return Rect{
		X:      float64(p.col) * (w + m.cfg.Gap),
		Y:      p.y,
		Width:  w,
		Height: p.height,
	}
}

// ContentExtent implements Packer. The extent is the tallest column minus
// the trailing gap after its last item.
func (m *Masonry) ContentExtent() float64 {
	if m.total == 0 {
		return 0
	}
	m.ensurePacked(m.total)
	tallest := 0.0
	for _, h := range m.cols {
		tallest = math.Max(tallest, h)
	}
	if tallest > 0 {
		tallest -= m.cfg.Gap
	}
	return tallest
}
