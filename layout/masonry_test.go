package layout

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxidekit/vlist/measure"
)

func masonryCache(heights []float64) *measure.Cache {
	cache := measure.NewCache()
	for i, h := range heights {
		cache.Set(i, measure.Measurement{Height: h})
	}
	return cache
}

func TestMasonryGreedyPacking(t *testing.T) {
	t.Parallel()

	heights := []float64{100, 50, 80, 60, 40, 90}
	m := NewMasonry(masonryCache(heights), len(heights), MasonryConfig{Columns: 3})

	// Greedy shortest-column placement: item 3 lands under item 1 (the
	// 50-high column), item 4 under item 2, item 5 under item 0.
	wantCols := []int{0, 1, 2, 1, 2, 0}
	wantY := []float64{0, 0, 0, 50, 80, 100}
	for i := range heights {
		p := m.PositionOf(i)
		assert.Equal(t, wantY[i], p.Y, "item %d", i)
	}
	for i, want := range wantCols {
		assert.Equal(t, want, m.placed[i].col, "item %d column", i)
	}

	assert.Equal(t, []float64{190, 110, 120}, m.ColumnHeights())
	assert.Equal(t, 190.0, m.ContentExtent())
}

func TestMasonryTieBreaksToLowestColumn(t *testing.T) {
	t.Parallel()

	heights := []float64{40, 40, 40, 40}
	m := NewMasonry(masonryCache(heights), len(heights), MasonryConfig{Columns: 2})

	// Packing is lazy; PositionOf forces placement through index 3.
	require.Equal(t, 40.0, m.PositionOf(3).Y)
	assert.Equal(t, 0, m.placed[0].col)
	assert.Equal(t, 1, m.placed[1].col)
	assert.Equal(t, 0, m.placed[2].col)
	assert.Equal(t, 1, m.placed[3].col)
}

func TestMasonryGap(t *testing.T) {
	t.Parallel()

	heights := []float64{30, 30, 30, 30}
	m := NewMasonry(masonryCache(heights), len(heights), MasonryConfig{Columns: 2, Gap: 10})

	assert.Equal(t, 0.0, m.PositionOf(0).Y)
	assert.Equal(t, 40.0, m.PositionOf(2).Y)
	// 30 + 10 + 30, no trailing gap.
	assert.Equal(t, 70.0, m.ContentExtent())
}

func TestMasonryBalanceBound(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	heights := make([]float64, 500)
	maxH := 0.0
	for i := range heights {
		heights[i] = 10 + rng.Float64()*190
		maxH = max(maxH, heights[i])
	}

	m := NewMasonry(masonryCache(heights), len(heights), MasonryConfig{Columns: 4})
	cols := m.ColumnHeights()
	assert.LessOrEqual(t, slices.Max(cols)-slices.Min(cols), maxH,
		"greedy shortest-column bound violated")
}

func TestMasonryRepackDeterminism(t *testing.T) {
	t.Parallel()

	heights := []float64{100, 50, 80, 60, 40, 90, 70, 20}
	m := NewMasonry(masonryCache(heights), len(heights), MasonryConfig{Columns: 3})
	first := make([]Rect, len(heights))
	for i := range heights {
		first[i] = m.PositionOf(i)
	}

	// A full re-pack of the same measurement set must reproduce identical
	// placements.
	m.Invalidate(0)
	for i := range heights {
		assert.Equal(t, first[i], m.PositionOf(i), "item %d", i)
	}
}

func TestMasonryInvalidateFrom(t *testing.T) {
	t.Parallel()

	heights := []float64{100, 50, 80, 60, 40, 90}
	cache := masonryCache(heights)
	m := NewMasonry(cache, len(heights), MasonryConfig{Columns: 3})
	require.Equal(t, 190.0, m.ContentExtent())

	// Re-measure item 1 so column 1 is no longer the shortest when item 3
	// is placed; everything from index 1 onward must re-pack.
	cache.Set(1, measure.Measurement{Height: 200})
	m.Invalidate(1)

	assert.Equal(t, 0.0, m.PositionOf(0).Y)
	assert.Equal(t, 0.0, m.PositionOf(1).Y)
	// Item 3 now lands under item 2 in column 2 (80 < 100).
	assert.Equal(t, 80.0, m.PositionOf(3).Y)
	assert.Equal(t, 2, m.placed[3].col)
}

func TestMasonryVisibleRange(t *testing.T) {
	t.Parallel()

	heights := []float64{100, 50, 80, 60, 40, 90}
	m := NewMasonry(masonryCache(heights), len(heights), MasonryConfig{Columns: 3})

	t.Run("top of content", func(t *testing.T) {
		t.Parallel()
		r := m.VisibleRange(0, 60)
		assert.Equal(t, 0, r.Start)
		// Items 0,1,2 start at y=0; item 3 starts at y=50 < 60.
		assert.Equal(t, 4, r.End)
	})

	t.Run("lower band", func(t *testing.T) {
		t.Parallel()
		r := m.VisibleRange(100, 70)
		// Band [100,170): items 3 (y 50..110), 4 (y 80..120) and 5 (y 100..190).
		require.False(t, r.IsEmpty())
		for i := r.Start; i < r.End; i++ {
			assert.True(t, m.PositionOf(i).IntersectsY(100, 70), "item %d", i)
		}
		assert.Equal(t, 3, r.Start)
		assert.Equal(t, 6, r.End)
	})

	t.Run("empty collection", func(t *testing.T) {
		t.Parallel()
		empty := NewMasonry(measure.NewCache(), 0, MasonryConfig{Columns: 3})
		assert.True(t, empty.VisibleRange(0, 100).IsEmpty())
		assert.Zero(t, empty.ContentExtent())
	})
}

func TestMasonryColumnsFromMinWidth(t *testing.T) {
	t.Parallel()

	m := NewMasonry(measure.NewCache(), 10, MasonryConfig{MinColumnWidth: 100, Gap: 10})
	m.SetContainerWidth(560)
	// floor((560+10) / 110) = 5 columns
	assert.Equal(t, 5, m.Columns())

	m.SetContainerWidth(50)
	assert.Equal(t, 1, m.Columns())
}

func TestMasonryZeroColumnsClamped(t *testing.T) {
	t.Parallel()

	m := NewMasonry(masonryCache([]float64{10, 20}), 2, MasonryConfig{Columns: 0})
	assert.Equal(t, 1, m.Columns())
	assert.Equal(t, 30.0, m.ContentExtent())
}
