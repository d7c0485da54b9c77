// Package tui renders a virtualized collection in a terminal. It is the
// render and input-dispatch collaborator for a vlist.Window: items render to
// strings, lipgloss measures them, the window decides what is visible, and
// key/mouse events feed the scroll and selection controllers.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/oxidekit/vlist"
	"github.com/oxidekit/vlist/internal/csync"
	"github.com/oxidekit/vlist/measure"
	"github.com/oxidekit/vlist/scroll"
	"github.com/oxidekit/vlist/selection"
)

// Item is one renderable element of the list. Render must be pure for a
// given width: the result is cached and measured.
type Item interface {
	ID() string
	Render(width int) string
}

// WheelScrollLines is how many lines one wheel notch moves.
const WheelScrollLines = 2.0

// maxTickDelta caps the simulated time of one animation tick so a stalled
// event loop does not teleport the scroll position.
const maxTickDelta = 0.25

// Styles are applied to item views after rendering.
type Styles struct {
	Selected lipgloss.Style
	Focused  lipgloss.Style
}

// DefaultStyles highlights without depending on a color profile.
func DefaultStyles() Styles {
	return Styles{
		Selected: lipgloss.NewStyle().Reverse(true),
		Focused:  lipgloss.NewStyle().Bold(true),
	}
}

type listOptions struct {
	width, height int
	gap           float64
	overscan      int
	keyMap        KeyMap
	styles        Styles
	focused       bool
	enableMouse   bool
	scrollCfg     scroll.Config
	selCfg        selection.Config
}

// ListOption configures a List.
type ListOption func(*listOptions)

// WithSize sets the initial size of the list.
func WithSize(width, height int) ListOption {
	return func(o *listOptions) {
		o.width = width
		o.height = height
	}
}

// WithGap sets the number of blank lines between items.
func WithGap(gap int) ListOption {
	return func(o *listOptions) { o.gap = float64(max(0, gap)) }
}

// WithOverscan sets how many extra items are rendered beyond each viewport
// edge.
func WithOverscan(overscan int) ListOption {
	return func(o *listOptions) { o.overscan = overscan }
}

func WithKeyMap(keyMap KeyMap) ListOption {
	return func(o *listOptions) { o.keyMap = keyMap }
}

func WithStyles(styles Styles) ListOption {
	return func(o *listOptions) { o.styles = styles }
}

func WithFocus(focus bool) ListOption {
	return func(o *listOptions) { o.focused = focus }
}

func WithEnableMouse() ListOption {
	return func(o *listOptions) { o.enableMouse = true }
}

// WithScrollConfig sets the scroll physics.
func WithScrollConfig(cfg scroll.Config) ListOption {
	return func(o *listOptions) { o.scrollCfg = cfg }
}

// WithSelectionConfig sets the selection behavior.
func WithSelectionConfig(cfg selection.Config) ListOption {
	return func(o *listOptions) { o.selCfg = cfg }
}

// List is a bubbletea model showing a virtualized item collection. Only the
// items inside the viewport (plus overscan) are ever rendered or measured.
type List[T Item] struct {
	*listOptions

	window *vlist.Window

	items     *csync.Slice[T]
	viewCache *csync.Map[string, string]

	lastTick time.Time
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// New creates a List over the given items.
func New[T Item](items []T, opts ...ListOption) *List[T] {
	o := &listOptions{
		keyMap:    DefaultKeyMap(),
		styles:    DefaultStyles(),
		focused:   true,
		scrollCfg: scroll.DefaultConfig(),
		selCfg:    selection.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(o)
	}

	l := &List[T]{
		listOptions: o,
		items:       csync.NewSliceFrom(items),
		viewCache:   csync.NewMap[string, string](),
		window: vlist.New(
			vlist.WithTotal(len(items)),
			vlist.WithLinearLayout(o.gap),
			vlist.WithOverscan(o.overscan),
			vlist.WithScrollConfig(o.scrollCfg),
			vlist.WithSelectionConfig(o.selCfg),
			// One terminal row per unmeasured item until the engine has
			// real samples to average; every item is at least that tall,
			// so the first measurement passes converge quickly.
			vlist.WithEstimatedHeight(1),
		),
	}
	if o.width > 0 && o.height > 0 {
		l.window.SetViewport(float64(o.width), float64(o.height))
		l.window.Frame(0)
	}
	return l
}

// Init implements tea.Model.
func (l *List[T]) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (l *List[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return l, l.SetSize(msg.Width, msg.Height)

	case tea.MouseWheelMsg:
		if !l.enableMouse {
			return l, nil
		}
		switch msg.Button {
		case tea.MouseWheelDown:
			return l, l.wheel(WheelScrollLines)
		case tea.MouseWheelUp:
			return l, l.wheel(-WheelScrollLines)
		}
		return l, nil

	case tea.MouseClickMsg:
		if !l.enableMouse || msg.Button != tea.MouseLeft {
			return l, nil
		}
		l.handleClick(msg)
		return l, nil

	case tickMsg:
		dt := time.Time(msg).Sub(l.lastTick).Seconds()
		l.lastTick = time.Time(msg)
		l.window.Frame(min(max(0, dt), maxTickDelta))
		if l.window.Scroll().Phase() == scroll.PhaseMomentum {
			return l, tickCmd()
		}
		return l, nil

	case tea.KeyPressMsg:
		if !l.focused {
			return l, nil
		}
		return l, l.handleKey(msg)
	}
	return l, nil
}

func (l *List[T]) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	sel := l.window.Selection()
	switch {
	case key.Matches(msg, l.keyMap.Down):
		sel.HandleKeyboard(selection.ActionSelectNext)
		l.ensureFocusVisible()
	case key.Matches(msg, l.keyMap.Up):
		sel.HandleKeyboard(selection.ActionSelectPrevious)
		l.ensureFocusVisible()
	case key.Matches(msg, l.keyMap.ExtendDown):
		sel.HandleKeyboard(selection.ActionExtendDown)
		l.ensureFocusVisible()
	case key.Matches(msg, l.keyMap.ExtendUp):
		sel.HandleKeyboard(selection.ActionExtendUp)
		l.ensureFocusVisible()
	case key.Matches(msg, l.keyMap.HalfPageDown):
		l.scrollBy(float64(l.height) / 2)
	case key.Matches(msg, l.keyMap.HalfPageUp):
		l.scrollBy(-float64(l.height) / 2)
	case key.Matches(msg, l.keyMap.PageDown):
		l.scrollBy(float64(l.height))
	case key.Matches(msg, l.keyMap.PageUp):
		l.scrollBy(-float64(l.height))
	case key.Matches(msg, l.keyMap.Home):
		l.window.Scroll().ScrollTo(scroll.Position{}, scroll.BehaviorInstant)
	case key.Matches(msg, l.keyMap.End):
		l.window.ScrollToIndex(l.items.Len()-1, scroll.BehaviorInstant)
	case key.Matches(msg, l.keyMap.SelectAll):
		sel.HandleKeyboard(selection.ActionSelectAll)
	case key.Matches(msg, l.keyMap.ClearSelection):
		sel.HandleKeyboard(selection.ActionClearSelection)
	case key.Matches(msg, l.keyMap.ToggleCurrent):
		sel.HandleKeyboard(selection.ActionToggleCurrent)
	}
	return nil
}

// checkboxHitWidth is how many leading cells of an item count as its
// checkbox in checkbox mode. Items rendering a "[ ] " style prefix fit
// inside it.
const checkboxHitWidth = 4

// handleClick maps a click row to an item and dispatches it through the
// multi-select mode policy.
func (l *List[T]) handleClick(msg tea.MouseClickMsg) {
	index, ok := l.indexAt(msg.Y)
	if !ok {
		return
	}
	sel := l.window.Selection()
	switch sel.Config().Mode {
	case selection.ModeNone:
		sel.Select(index)
	case selection.ModeModifier:
		switch {
		case msg.Mod&tea.ModShift != 0 && sel.Config().RangeSelection:
			sel.SelectRange(index)
		case msg.Mod&(tea.ModCtrl|tea.ModMeta) != 0:
			sel.Toggle(index)
		default:
			sel.Select(index)
		}
	case selection.ModeAlways:
		sel.Toggle(index)
	case selection.ModeCheckbox:
		if msg.X < checkboxHitWidth {
			sel.Toggle(index)
		} else {
			sel.Select(index)
		}
	}
}

// indexAt maps a viewport row to the item covering it.
func (l *List[T]) indexAt(y int) (int, bool) {
	f := l.window.Frame(0)
	for _, p := range f.Placements {
		top := int(math.Round(p.Viewport.Y))
		if y >= top && y < top+int(math.Round(p.Viewport.Height)) {
			return p.Index, true
		}
	}
	return 0, false
}

// wheel feeds one wheel notch through the scroll physics. With momentum
// enabled, rapid notches accumulate velocity and the list keeps gliding
// after the last one.
func (l *List[T]) wheel(lines float64) tea.Cmd {
	sc := l.window.Scroll()
	sc.OnInputDelta(scroll.Position{Top: lines})
	sc.OnRelease()
	if sc.Phase() == scroll.PhaseMomentum {
		l.lastTick = time.Now()
		return tickCmd()
	}
	return nil
}

// scrollBy moves the viewport directly, without physics.
func (l *List[T]) scrollBy(lines float64) {
	sc := l.window.Scroll()
	sc.ScrollTo(scroll.Position{Top: sc.Position().Top + lines}, scroll.BehaviorInstant)
}

// ensureFocusVisible scrolls just far enough to bring the focused item
// fully into the viewport.
func (l *List[T]) ensureFocusVisible() {
	focus := l.window.Selection().Focus()
	if focus == selection.None {
		return
	}
	r := l.window.Packer().PositionOf(focus)
	sc := l.window.Scroll()
	top := sc.Position().Top
	bottom := top + float64(l.height)
	switch {
	case r.Y < top:
		sc.ScrollTo(scroll.Position{Top: r.Y}, scroll.BehaviorInstant)
	case r.Bottom() > bottom:
		sc.ScrollTo(scroll.Position{Top: r.Bottom() - float64(l.height)}, scroll.BehaviorInstant)
	}
}

// SetSize resizes the list. A width change drops all cached views and
// measurements, since items may wrap differently.
func (l *List[T]) SetSize(width, height int) tea.Cmd {
	widthChanged := width != l.width
	l.width, l.height = width, height
	l.window.SetViewport(float64(width), float64(height))
	if widthChanged {
		l.viewCache.Reset()
		l.window.Cache().Clear()
		l.window.Packer().Invalidate(0)
	}
	l.window.Frame(0)
	return nil
}

// SetItems replaces the collection wholesale.
func (l *List[T]) SetItems(items []T) tea.Cmd {
	l.items.SetSlice(items)
	l.viewCache.Reset()
	l.window.ResetItems(len(items))
	return nil
}

// AppendItem adds an item to the end, keeping measurements and selection
// for existing items.
func (l *List[T]) AppendItem(item T) tea.Cmd {
	l.items.Append(item)
	l.window.SetTotal(l.items.Len())
	return nil
}

// Items returns a snapshot of the backing items.
func (l *List[T]) Items() []T {
	out := make([]T, 0, l.items.Len())
	for item := range l.items.Seq() {
		out = append(out, item)
	}
	return out
}

// SelectedItems returns the selected items in index order.
func (l *List[T]) SelectedItems() []T {
	var out []T
	for _, i := range l.window.Selection().Selected() {
		if item, ok := l.items.Get(i); ok {
			out = append(out, item)
		}
	}
	return out
}

// Window exposes the underlying engine, for tests and host integration.
func (l *List[T]) Window() *vlist.Window { return l.window }

func (l *List[T]) Focus()          { l.focused = true }
func (l *List[T]) Blur()           { l.focused = false }
func (l *List[T]) IsFocused() bool { return l.focused }
func (l *List[T]) KeyMap() KeyMap  { return l.keyMap }

// ScrollProgress returns the normalized scroll position for scrollbars.
func (l *List[T]) ScrollProgress() float64 { return l.window.ScrollProgress() }

// itemView renders one item through the view cache. The cache key encodes
// the selection state so a state flip re-renders without an explicit
// invalidation.
func (l *List[T]) itemView(index int) string {
	item, ok := l.items.Get(index)
	if !ok {
		return ""
	}
	sel := l.window.Selection()
	selected := sel.IsSelected(index)
	focused := l.focused && sel.Focus() == index
	cacheKey := fmt.Sprintf("%s/%t/%t/%d", item.ID(), selected, focused, l.width)
	if view, ok := l.viewCache.Get(cacheKey); ok {
		return view
	}

	view := item.Render(l.width)
	switch {
	case selected:
		view = l.styles.Selected.Render(view)
	case focused:
		view = l.styles.Focused.Render(view)
	}
	l.viewCache.Set(cacheKey, view)
	return view
}

// measuredFrame produces the frame to draw, measuring any item the engine
// has not seen yet. Fresh measurements shift the layout, so it re-frames
// until the visible set is stable; a handful of passes is enough because
// each pass measures everything it was shown.
func (l *List[T]) measuredFrame() vlist.Frame {
	f := l.window.Frame(0)
	for pass := 0; pass < 4; pass++ {
		measured := false
		for _, p := range f.Placements {
			if l.window.Cache().Has(p.Index) {
				continue
			}
			view := l.itemView(p.Index)
			l.window.ReportMeasurement(p.Index, measure.Measurement{
				Width:  float64(lipgloss.Width(view)),
				Height: float64(lipgloss.Height(view)),
			})
			measured = true
		}
		if !measured {
			break
		}
		f = l.window.Frame(0)
	}
	return f
}

// View implements tea.Model. Cost is proportional to the viewport, not the
// collection.
func (l *List[T]) View() string {
	if l.width <= 0 || l.height <= 0 {
		return ""
	}
	f := l.measuredFrame()

	lines := make([]string, l.height)
	for _, p := range f.Placements {
		top := int(math.Round(p.Viewport.Y))
		for i, line := range strings.Split(l.itemView(p.Index), "\n") {
			y := top + i
			if y >= 0 && y < l.height {
				lines[y] = ansi.Truncate(line, l.width, "…")
			}
		}
	}

	// Short content at the top renders without trailing filler, so a
	// host embedding the list can stack content below it.
	if f.ContentExtent <= float64(l.height) && f.Scroll.Position.Top == 0 {
		end := len(lines)
		for end > 0 && lines[end-1] == "" {
			end--
		}
		lines = lines[:end]
	}
	return strings.Join(lines, "\n")
}
