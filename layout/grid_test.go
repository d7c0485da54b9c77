package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oxidekit/vlist/measure"
)

func TestGridVisibleRange(t *testing.T) {
	t.Parallel()

	t.Run("rows map to index spans", func(t *testing.T) {
		t.Parallel()
		g := NewGrid(measure.NewCache(), 100, GridConfig{Columns: 4, RowHeight: 50})

		r := g.VisibleRange(0, 150)
		assert.Equal(t, 0, r.Start)
		assert.Equal(t, 12, r.End) // 3 rows of 4

		r = g.VisibleRange(125, 100)
		// Rows 2..4 overlap [125, 225).
		assert.Equal(t, 8, r.Start)
		assert.Equal(t, 20, r.End)
	})

	t.Run("end clamps to total", func(t *testing.T) {
		t.Parallel()
		g := NewGrid(measure.NewCache(), 10, GridConfig{Columns: 4, RowHeight: 50})
		r := g.VisibleRange(0, 1000)
		assert.Equal(t, 0, r.Start)
		assert.Equal(t, 10, r.End)
	})

	t.Run("empty and degenerate inputs", func(t *testing.T) {
		t.Parallel()
		g := NewGrid(measure.NewCache(), 0, GridConfig{Columns: 4, RowHeight: 50})
		assert.True(t, g.VisibleRange(0, 300).IsEmpty())
		assert.Zero(t, g.ContentExtent())

		g = NewGrid(measure.NewCache(), 10, GridConfig{Columns: 4, RowHeight: 50})
		assert.True(t, g.VisibleRange(0, 0).IsEmpty())
	})

	t.Run("zero columns clamps to one", func(t *testing.T) {
		t.Parallel()
		g := NewGrid(measure.NewCache(), 10, GridConfig{Columns: 0, RowHeight: 50})
		assert.Equal(t, 1, g.Columns())
		assert.Equal(t, 500.0, g.ContentExtent())
	})
}

func TestGridPositions(t *testing.T) {
	t.Parallel()

	g := NewGrid(measure.NewCache(), 100, GridConfig{Columns: 3, ColumnWidth: 100, RowHeight: 40, Gap: 10})

	p := g.PositionOf(0)
	assert.Equal(t, Rect{X: 0, Y: 0, Width: 100, Height: 40}, p)

	p = g.PositionOf(4) // row 1, col 1
	assert.Equal(t, Rect{X: 110, Y: 50, Width: 100, Height: 40}, p)

	// 34 rows: 34*50 - 10 trailing gap.
	assert.Equal(t, 1690.0, g.ContentExtent())
}

func TestGridColumnWidthFromContainer(t *testing.T) {
	t.Parallel()

	g := NewGrid(measure.NewCache(), 10, GridConfig{Columns: 4, RowHeight: 50, Gap: 8})
	g.SetContainerWidth(424)

	// (424 - 3*8) / 4 = 100
	p := g.PositionOf(1)
	assert.Equal(t, 100.0, p.Width)
	assert.Equal(t, 108.0, p.X)
}

func TestGridRowHeightFallsBackToCache(t *testing.T) {
	t.Parallel()

	cache := measure.NewCache(measure.WithDefault(measure.Measurement{Height: 64}))
	g := NewGrid(cache, 12, GridConfig{Columns: 2})
	assert.Equal(t, 384.0, g.ContentExtent()) // 6 rows * 64
}

func TestResponsiveColumns(t *testing.T) {
	t.Parallel()

	rc := ResponsiveColumns{
		{MinWidth: 0, Columns: 1},
		{MinWidth: 576, Columns: 2},
		{MinWidth: 992, Columns: 3},
		{MinWidth: 1400, Columns: 5},
	}

	assert.Equal(t, 1, rc.ColumnsFor(320))
	assert.Equal(t, 2, rc.ColumnsFor(576))
	assert.Equal(t, 2, rc.ColumnsFor(991))
	assert.Equal(t, 3, rc.ColumnsFor(1200))
	assert.Equal(t, 5, rc.ColumnsFor(2000))
	assert.Zero(t, ResponsiveColumns{{MinWidth: 500, Columns: 2}}.ColumnsFor(100))

	g := NewGrid(measure.NewCache(), 100, GridConfig{RowHeight: 50, Responsive: rc})
	g.SetContainerWidth(1200)
	assert.Equal(t, 3, g.Columns())
	g.SetContainerWidth(100)
	assert.Equal(t, 1, g.Columns())
}
