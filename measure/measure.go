// Package measure stores per-item size facts for a virtualized collection.
// It records raw measurements only; all cumulative layout math lives in the
// layout package so that swapping packing strategies never touches storage.
package measure

import (
	"log/slog"
	"math"
)

// DefaultEstimatedHeight is used for unmeasured items when the cache has no
// explicit default and no recorded samples yet.
const DefaultEstimatedHeight = 48.0

// Measurement is the recorded size of a single item. It is overwritten
// wholesale on re-measurement, never partially updated.
type Measurement struct {
	Width  float64
	Height float64
}

// Valid reports whether both dimensions are finite and non-negative.
func (m Measurement) Valid() bool {
	return isFiniteNonNegative(m.Width) && isFiniteNonNegative(m.Height)
}

func isFiniteNonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1) && !math.IsNaN(v)
}

// Cache maps dense 0-based item indices to measurements. It additionally
// carries an optional default measurement and a running estimated height,
// the arithmetic mean of all recorded heights. The estimate is only used
// for indices with no recorded measurement and no default.
type Cache struct {
	recorded  map[int]Measurement
	def       *Measurement
	estimated float64
}

// Option configures a Cache.
type Option func(*Cache)

// WithDefault sets an explicit default measurement for unmeasured items.
func WithDefault(m Measurement) Option {
	return func(c *Cache) {
		if !m.Valid() {
			slog.Warn("ignoring invalid default measurement", "width", m.Width, "height", m.Height)
			return
		}
		d := m
		c.def = &d
	}
}

// WithEstimatedHeight sets the initial estimated height used before any
// real measurements are recorded.
func WithEstimatedHeight(h float64) Option {
	return func(c *Cache) {
		if !isFiniteNonNegative(h) {
			slog.Warn("ignoring invalid estimated height", "height", h)
			return
		}
		c.estimated = h
	}
}

// NewCache creates an empty cache.
func NewCache(opts ...Option) *Cache {
	c := &Cache{
		recorded:  make(map[int]Measurement),
		estimated: DefaultEstimatedHeight,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Set records a measurement for an item, overwriting any prior value.
// Measurements with negative or non-finite dimensions are rejected and the
// prior value, if any, is retained. The return value reports whether the
// write was accepted.
func (c *Cache) Set(index int, m Measurement) bool {
	if index < 0 {
		return false
	}
	if !m.Valid() {
		slog.Warn("rejecting invalid measurement", "index", index, "width", m.Width, "height", m.Height)
		return false
	}
	c.recorded[index] = m
	return true
}

// Get returns the recorded measurement for an item, if present.
func (c *Cache) Get(index int) (Measurement, bool) {
	m, ok := c.recorded[index]
	return m, ok
}

// GetOrDefault returns the recorded measurement if present, else the
// explicit default if configured, else a zero-width measurement at the
// current estimated height. It never fails.
func (c *Cache) GetOrDefault(index int) Measurement {
	if m, ok := c.recorded[index]; ok {
		return m
	}
	if c.def != nil {
		return *c.def
	}
	return Measurement{Height: c.estimated}
}

// Has reports whether an item has a recorded measurement.
func (c *Cache) Has(index int) bool {
	_, ok := c.recorded[index]
	return ok
}

// Remove drops the recorded measurement for an item.
func (c *Cache) Remove(index int) {
	delete(c.recorded, index)
}

// RemoveFrom drops every recorded measurement at or beyond the given index.
// Used when the backing collection is truncated.
func (c *Cache) RemoveFrom(index int) {
	for i := range c.recorded {
		if i >= index {
			delete(c.recorded, i)
		}
	}
}

// Clear drops all recorded measurements. The default measurement and the
// current estimate survive.
func (c *Cache) Clear() {
	clear(c.recorded)
}

// Len returns the number of recorded measurements.
func (c *Cache) Len() int {
	return len(c.recorded)
}

// TotalHeight sums GetOrDefault heights over the half-open index range
// [start, end). Cost is proportional to the range length; callers must
// bound the range to the visible window plus overscan.
func (c *Cache) TotalHeight(start, end int) float64 {
	var sum float64
	for i := start; i < end; i++ {
		sum += c.GetOrDefault(i).Height
	}
	return sum
}

// UpdateEstimate recomputes the estimated height as the mean of all
// recorded heights. It is meant to be called opportunistically, not on
// every Set, since it walks the whole cache.
func (c *Cache) UpdateEstimate() {
	if len(c.recorded) == 0 {
		return
	}
	var sum float64
	for _, m := range c.recorded {
		sum += m.Height
	}
	c.estimated = sum / float64(len(c.recorded))
}

// EstimatedHeight returns the current running height estimate.
func (c *Cache) EstimatedHeight() float64 {
	return c.estimated
}
