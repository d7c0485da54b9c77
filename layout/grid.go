package layout

import (
	"log/slog"
	"math"

	"github.com/oxidekit/vlist/measure"
)

// Breakpoint maps a minimum container width to a column count.
type Breakpoint struct {
	MinWidth float64
	Columns  int
}

// ResponsiveColumns is a breakpoint table, ordered by ascending MinWidth.
// The entry with the largest MinWidth not exceeding the container width
// wins.
type ResponsiveColumns []Breakpoint

// ColumnsFor returns the column count for a container width, or 0 when no
// breakpoint applies.
func (rc ResponsiveColumns) ColumnsFor(width float64) int {
	cols := 0
	bestMin := math.Inf(-1)
	for _, bp := range rc {
		if bp.MinWidth <= width && bp.MinWidth >= bestMin {
			bestMin = bp.MinWidth
			cols = bp.Columns
		}
	}
	return cols
}

// GridConfig configures a fixed-row-height grid layout.
type GridConfig struct {
	// Columns is the fixed column count, ignored when Responsive matches.
	Columns int
	// ColumnWidth overrides the width derived from the container.
	ColumnWidth float64
	// RowHeight is the uniform row height; when zero the measurement
	// cache's default or estimate is used.
	RowHeight float64
	// Gap is the spacing between rows and columns.
	Gap float64
	// Responsive optionally selects the column count from the container
	// width.
	Responsive ResponsiveColumns
}

// DefaultGridConfig returns a single-column grid with the stock row height.
func DefaultGridConfig() GridConfig {
	return GridConfig{Columns: 1}
}

// Grid lays items out in rows of a fixed column count. Row geometry is
// closed-form, so there is no position cache to invalidate.
type Grid struct {
	cache *measure.Cache
	cfg   GridConfig
	total int
	width float64
}

// NewGrid creates a grid packer. A zero or negative column count without a
// responsive table is clamped to one column.
func NewGrid(cache *measure.Cache, total int, cfg GridConfig) *Grid {
	if total < 0 {
		total = 0
	}
	if cfg.Gap < 0 {
		cfg.Gap = 0
	}
	if cfg.Columns < 1 && len(cfg.Responsive) == 0 {
		slog.Warn("grid column count clamped to 1", "columns", cfg.Columns)
		cfg.Columns = 1
	}
	return &Grid{cache: cache, cfg: cfg, total: total}
}

// Columns returns the effective column count for the current container
// width, never less than 1.
func (g *Grid) Columns() int {
	cols := g.cfg.Columns
	if len(g.cfg.Responsive) > 0 {
		if c := g.cfg.Responsive.ColumnsFor(g.width); c > 0 {
			cols = c
		}
	}
	return max(1, cols)
}

func (g *Grid) rowHeight() float64 {
	if g.cfg.RowHeight > 0 {
		return g.cfg.RowHeight
	}
	return g.cache.GetOrDefault(0).Height
}

// rowStride is the distance between consecutive row tops.
func (g *Grid) rowStride() float64 {
	return g.rowHeight() + g.cfg.Gap
}

// Total implements Packer.
func (g *Grid) Total() int { return g.total }

// SetTotal implements Packer.
func (g *Grid) SetTotal(total int) {
	g.total = max(0, total)
}

// SetContainerWidth implements Packer.
func (g *Grid) SetContainerWidth(width float64) {
	g.width = max(0, width)
}

// Invalidate implements Packer. Grid geometry is closed-form; nothing is
// cached.
func (g *Grid) Invalidate(int) {}

// VisibleRange implements Packer.
func (g *Grid) VisibleRange(offset, viewport float64) VisibleRange {
	if g.total == 0 || viewport <= 0 {
		return EmptyRange()
	}
	offset = max(0, offset)
	stride := g.rowStride()
	if stride <= 0 {
		return VisibleRange{Start: 0, End: g.total}
	}
	cols := g.Columns()
	startRow := int(math.Floor(offset / stride))
	endRow := int(math.Ceil((offset + viewport) / stride))
	start := min(startRow*cols, g.total)
	end := min(endRow*cols, g.total)
	return VisibleRange{Start: start, End: end}
}

func (g *Grid) columnWidth(cols int) float64 {
	if g.cfg.ColumnWidth > 0 {
		return g.cfg.ColumnWidth
	}
	if g.width <= 0 {
		return 0
	}
	return max(0, (g.width-g.cfg.Gap*float64(cols-1))/float64(cols))
}

// PositionOf implements Packer.
func (g *Grid) PositionOf(index int) Rect {
	if g.total == 0 {
		return Rect{}
	}
	index = min(max(0, index), g.total-1)
	cols := g.Columns()
	row, col := index/cols, index%cols
	w := g.columnWidth(cols)
	return Rect{
		X:      float64(col) * (w + g.cfg.Gap),
		Y:      float64(row) * g.rowStride(),
		Width:  w,
		Height: g.rowHeight(),
	}
}

// ContentExtent implements Packer.
func (g *Grid) ContentExtent() float64 {
	if g.total == 0 {
		return 0
	}
	cols := g.Columns()
	rows := (g.total + cols - 1) / cols
	return float64(rows)*g.rowStride() - g.cfg.Gap
}
