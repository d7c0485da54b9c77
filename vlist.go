// Package vlist is a virtualized collection engine: it decides which items
// of an arbitrarily large collection are visible and where they go, at a
// cost independent of the collection size. A Window wires together the four
// parts — measurement cache, layout packer, scroll physics, and selection —
// and drives them from a single per-frame call.
package vlist

import (
	"math"

	"github.com/oxidekit/vlist/internal/csync"
	"github.com/oxidekit/vlist/layout"
	"github.com/oxidekit/vlist/measure"
	"github.com/oxidekit/vlist/scroll"
	"github.com/oxidekit/vlist/selection"
)

// Placement is one laid-out item of a frame.
type Placement struct {
	Index int
	// Content is the item rectangle in content coordinates.
	Content layout.Rect
	// Viewport is the same rectangle relative to the viewport origin,
	// ready for drawing. Its Y is negative for the overscan rows above
	// the fold.
	Viewport layout.Rect
}

// Frame is the output of one Window.Frame call.
type Frame struct {
	// Range is the overscan-expanded visible range.
	Range layout.VisibleRange
	// Placements holds one entry per index in Range, in index order.
	Placements []Placement
	// ContentExtent is the total packed height of the collection.
	ContentExtent float64
	// Scroll is a snapshot of the scroll state after this frame's tick.
	Scroll scroll.State
}

type options struct {
	total     int
	overscan  int
	gap       float64
	grid      *layout.GridConfig
	masonry   *layout.MasonryConfig
	scrollCfg scroll.Config
	selCfg    selection.Config
	def       *measure.Measurement
	estimated float64
}

// Option configures a Window.
type Option func(*options)

// WithTotal sets the initial collection size.
func WithTotal(total int) Option {
	return func(o *options) { o.total = total }
}

// WithOverscan sets how many extra items are included beyond each edge of
// the visible range.
func WithOverscan(overscan int) Option {
	return func(o *options) { o.overscan = max(0, overscan) }
}

// WithLinearLayout selects the linear packer with the given inter-item gap.
// This is the default layout.
func WithLinearLayout(gap float64) Option {
	return func(o *options) {
		o.gap = gap
		o.grid = nil
		o.masonry = nil
	}
}

// WithGridLayout selects the grid packer.
func WithGridLayout(cfg layout.GridConfig) Option {
	return func(o *options) {
		o.grid = &cfg
		o.masonry = nil
	}
}

// WithMasonryLayout selects the masonry packer.
func WithMasonryLayout(cfg layout.MasonryConfig) Option {
	return func(o *options) {
		o.masonry = &cfg
		o.grid = nil
	}
}

// WithScrollConfig sets the scroll physics configuration.
func WithScrollConfig(cfg scroll.Config) Option {
	return func(o *options) { o.scrollCfg = cfg }
}

// WithSelectionConfig sets the selection configuration.
func WithSelectionConfig(cfg selection.Config) Option {
	return func(o *options) { o.selCfg = cfg }
}

// WithDefaultMeasurement fixes the size assumed for unmeasured items. Use
// this for fixed-height collections, where no per-item measuring is needed
// at all.
func WithDefaultMeasurement(m measure.Measurement) Option {
	return func(o *options) { o.def = &m }
}

// WithEstimatedHeight seeds the height estimate used before any item has
// been measured.
func WithEstimatedHeight(h float64) Option {
	return func(o *options) { o.estimated = h }
}

// Window owns one measurement cache, one packer, one scroll controller and
// one selection controller, and sequences them per frame: queued
// measurement reports are applied first, then physics, then layout. All
// methods must be called from the host's single frame-pumping goroutine;
// only ReportMeasurement is safe to call from elsewhere.
//
// The built-in packers lay out along the vertical axis only, so a Window
// never accrues horizontal scroll extent: horizontal scroll directions in
// the scroll configuration stay inert through it.
type Window struct {
	cache  *measure.Cache
	packer layout.Packer
	scroll *scroll.Controller
	sel    *selection.Controller

	overscan int
	viewport layout.Size

	pending *csync.Map[int, measure.Measurement]
}

// New creates a Window. Without options it is an empty linear list with
// default physics and modifier-based multi-select.
func New(opts ...Option) *Window {
	o := options{
		scrollCfg: scroll.DefaultConfig(),
		selCfg:    selection.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	var copts []measure.Option
	if o.def != nil {
		copts = append(copts, measure.WithDefault(*o.def))
	}
	if o.estimated > 0 {
		copts = append(copts, measure.WithEstimatedHeight(o.estimated))
	}
	cache := measure.NewCache(copts...)

	var packer layout.Packer
	switch {
	case o.grid != nil:
		packer = layout.NewGrid(cache, o.total, *o.grid)
	case o.masonry != nil:
		packer = layout.NewMasonry(cache, o.total, *o.masonry)
	default:
		packer = layout.NewLinear(cache, o.total, o.gap)
	}

	return &Window{
		cache:    cache,
		packer:   packer,
		scroll:   scroll.New(o.scrollCfg),
		sel:      selection.New(o.selCfg, o.total),
		overscan: o.overscan,
		pending:  csync.NewMap[int, measure.Measurement](),
	}
}

// SetViewport tells the window its drawable area.
func (w *Window) SetViewport(width, height float64) {
	w.viewport = layout.Size{Width: max(0, width), Height: max(0, height)}
	w.scroll.SetViewport(w.viewport.Width, w.viewport.Height)
	w.packer.SetContainerWidth(w.viewport.Width)
}

// ReportMeasurement queues a measured item size. Reports are applied
// atomically at the start of the next Frame call, never mid-layout, so
// measurement may happen off the frame loop. The last report per index
// wins.
func (w *Window) ReportMeasurement(index int, m measure.Measurement) {
	if index < 0 || index >= w.packer.Total() {
		return
	}
	w.pending.Set(index, m)
}

// applyPending flushes queued measurement reports into the cache,
// refreshes the height estimate, and invalidates the packer from the
// earliest changed index, or from zero when the estimate moved.
func (w *Window) applyPending() {
	if w.pending.Len() == 0 {
		return
	}
	from := math.MaxInt
	for index, m := range w.pending.Seq2() {
		if w.cache.Set(index, m) && index < from {
			from = index
		}
	}
	w.pending.Reset()
	if from == math.MaxInt {
		return
	}
	// Fresh samples refine the height estimate used for every
	// still-unmeasured item, so when it moves the whole layout is stale,
	// not just the tail behind the earliest write.
	prev := w.cache.EstimatedHeight()
	w.cache.UpdateEstimate()
	if w.cache.EstimatedHeight() != prev {
		from = 0
	}
	w.packer.Invalidate(from)
}

// Frame advances the engine by dt seconds and returns what to draw. The
// order is fixed: measurement reports land first, then scroll physics
// ticks against the fresh content extent, then the visible range and
// placements are computed.
func (w *Window) Frame(dt float64) Frame {
	w.applyPending()

	// Packed content never exceeds the container width, so the horizontal
	// axis carries no scrollable extent.
	w.scroll.SetContentExtent(w.viewport.Width, w.packer.ContentExtent())
	w.scroll.Tick(dt)

	offset := w.scroll.Position().Top
	vr := w.packer.VisibleRange(offset, w.viewport.Height).
		WithOverscan(w.overscan, w.packer.Total())

	placements := make([]Placement, 0, vr.Len())
	for i := vr.Start; i < vr.End; i++ {
		r := w.packer.PositionOf(i)
		rel := r
		rel.Y -= offset
		rel.X -= w.scroll.Position().Left
		placements = append(placements, Placement{Index: i, Content: r, Viewport: rel})
	}

	return Frame{
		Range:         vr,
		Placements:    placements,
		ContentExtent: w.packer.ContentExtent(),
		Scroll:        w.scroll.State(),
	}
}

// SetTotal resizes the collection in place, keeping measurements for the
// surviving indices. Selection is filtered before layout sees the new size,
// and cached measurements at or beyond the new total are dropped.
func (w *Window) SetTotal(total int) {
	total = max(0, total)
	w.sel.SetTotal(total)
	w.packer.SetTotal(total)
	w.cache.RemoveFrom(total)
}

// ResetItems replaces the collection wholesale: every cached measurement
// and the entire selection state, focus and anchor included, are discarded,
// because index→item association is gone. Use SetTotal for append/truncate.
func (w *Window) ResetItems(total int) {
	total = max(0, total)
	w.cache.Clear()
	w.sel.Reset(total)
	w.packer.SetTotal(total)
	w.packer.Invalidate(0)
}

// ScrollToIndex performs a scroll that brings the item at index to the top
// of the viewport. Out-of-range indices are clamped.
func (w *Window) ScrollToIndex(index int, behavior scroll.Behavior) {
	total := w.packer.Total()
	if total == 0 {
		return
	}
	index = min(max(0, index), total-1)
	// The target must clamp against the current extent, so sync it first.
	w.scroll.SetContentExtent(w.viewport.Width, w.packer.ContentExtent())
	w.scroll.ScrollTo(scroll.Position{Top: w.packer.PositionOf(index).Y}, behavior)
}

// ScrollProgress returns the normalized scroll position in [0, 1].
func (w *Window) ScrollProgress() float64 { return w.scroll.Progress() }

// Total returns the current collection size.
func (w *Window) Total() int { return w.packer.Total() }

// Scroll exposes the scroll controller for input dispatch.
func (w *Window) Scroll() *scroll.Controller { return w.scroll }

// Selection exposes the selection controller for input dispatch.
func (w *Window) Selection() *selection.Controller { return w.sel }

// Cache exposes the measurement cache.
func (w *Window) Cache() *measure.Cache { return w.cache }

// Packer exposes the active layout packer.
func (w *Window) Packer() layout.Packer { return w.packer }
