package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxidekit/vlist/measure"
)

func TestLinearVisibleRange(t *testing.T) {
	t.Parallel()

	t.Run("unmeasured items use the estimate", func(t *testing.T) {
		t.Parallel()
		cache := measure.NewCache(measure.WithEstimatedHeight(48))
		l := NewLinear(cache, 10_000, 0)

		r := l.VisibleRange(0, 800)
		assert.Equal(t, 0, r.Start)
		assert.Equal(t, 17, r.End) // ceil(800/48)
	})

	t.Run("scrolled viewport", func(t *testing.T) {
		t.Parallel()
		cache := measure.NewCache(measure.WithEstimatedHeight(50))
		l := NewLinear(cache, 100, 0)

		r := l.VisibleRange(125, 100)
		// Items at y 100..150 and 150..200 overlap [125, 225); 200..250 starts
		// inside too.
		assert.Equal(t, 2, r.Start)
		assert.Equal(t, 5, r.End)
	})

	t.Run("empty collection", func(t *testing.T) {
		t.Parallel()
		l := NewLinear(measure.NewCache(), 0, 0)
		assert.True(t, l.VisibleRange(0, 800).IsEmpty())
		assert.Zero(t, l.ContentExtent())
	})

	t.Run("zero viewport yields empty range", func(t *testing.T) {
		t.Parallel()
		l := NewLinear(measure.NewCache(), 100, 0)
		assert.True(t, l.VisibleRange(0, 0).IsEmpty())
	})

	t.Run("every index in range overlaps the viewport", func(t *testing.T) {
		t.Parallel()
		cache := measure.NewCache()
		heights := []float64{30, 120, 10, 80, 45, 200, 5, 60, 90, 15}
		for i, h := range heights {
			cache.Set(i, measure.Measurement{Height: h})
		}
		l := NewLinear(cache, len(heights), 4)

		for _, offset := range []float64{0, 37, 100, 250, 400, 600} {
			r := l.VisibleRange(offset, 120)
			require.False(t, r.IsEmpty(), "offset %v", offset)
			for i := r.Start; i < r.End; i++ {
				assert.True(t, l.PositionOf(i).IntersectsY(offset, 120),
					"index %d at offset %v", i, offset)
			}
			// Neighbors outside the range must not overlap.
			if r.Start > 0 {
				assert.False(t, l.PositionOf(r.Start-1).IntersectsY(offset, 120))
			}
			if r.End < len(heights) {
				assert.False(t, l.PositionOf(r.End).IntersectsY(offset, 120))
			}
		}
	})
}

func TestLinearPositions(t *testing.T) {
	t.Parallel()

	cache := measure.NewCache(measure.WithEstimatedHeight(10))
	cache.Set(0, measure.Measurement{Height: 100})
	cache.Set(1, measure.Measurement{Height: 50})
	l := NewLinear(cache, 4, 5)

	assert.Equal(t, 0.0, l.PositionOf(0).Y)
	assert.Equal(t, 105.0, l.PositionOf(1).Y)  // 100 + gap
	assert.Equal(t, 160.0, l.PositionOf(2).Y)  // 105 + 50 + gap
	assert.Equal(t, 175.0, l.PositionOf(3).Y)  // 160 + 10 + gap
	assert.Equal(t, 185.0, l.ContentExtent())  // 175 + 10
	assert.Equal(t, 175.0, l.PositionOf(99).Y) // clamped to last
}

func TestLinearForwardInvalidation(t *testing.T) {
	t.Parallel()

	cache := measure.NewCache(measure.WithEstimatedHeight(10))
	l := NewLinear(cache, 100, 0)
	require.Equal(t, 1000.0, l.ContentExtent())

	// Re-measure item 5; offsets before it must be untouched, offsets after
	// it must shift by the delta.
	cache.Set(5, measure.Measurement{Height: 60})
	l.Invalidate(5)

	assert.Equal(t, 50.0, l.PositionOf(5).Y)
	assert.Equal(t, 110.0, l.PositionOf(6).Y)
	assert.Equal(t, 1050.0, l.ContentExtent())
}

func TestLinearSetTotal(t *testing.T) {
	t.Parallel()

	cache := measure.NewCache(measure.WithEstimatedHeight(20))
	l := NewLinear(cache, 50, 0)
	require.Equal(t, 1000.0, l.ContentExtent())

	l.SetTotal(10)
	assert.Equal(t, 10, l.Total())
	assert.Equal(t, 200.0, l.ContentExtent())

	l.SetTotal(-1)
	assert.Zero(t, l.Total())
	assert.Zero(t, l.ContentExtent())
}
