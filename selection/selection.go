// Package selection tracks the selected, focused, and anchor indices of a
// collection. It is a pure index-set state machine: it depends only on the
// total item count, never on layout or visibility.
package selection

import "sort"

// Mode is the multi-select policy an input dispatcher applies when mapping
// raw clicks to operations. The controller itself is mode-agnostic; the
// mode only decides which operation a click becomes.
type Mode int

const (
	// ModeNone disables multi-select; every click is a plain Select.
	ModeNone Mode = iota
	// ModeModifier enables Toggle/SelectRange only while a modifier key is
	// held (ctrl/cmd-click, shift-click).
	ModeModifier
	// ModeAlways treats every click as a Toggle.
	ModeAlways
	// ModeCheckbox reserves toggling for a dedicated checkbox hit area;
	// clicks elsewhere are plain Select.
	ModeCheckbox
)

// KeyboardAction is a semantic keyboard command, already mapped from raw key
// events by the input dispatcher.
type KeyboardAction int

const (
	ActionSelectNext KeyboardAction = iota
	ActionSelectPrevious
	ActionExtendDown
	ActionExtendUp
	ActionSelectAll
	ActionClearSelection
	ActionToggleCurrent
)

// Config configures selection behavior.
type Config struct {
	// Mode is the multi-select click policy, consumed by input dispatch.
	Mode Mode
	// KeyboardNavigation enables the focus-moving keyboard actions.
	KeyboardNavigation bool
	// RangeSelection enables anchor-based range extension; when disabled,
	// extend actions degrade to plain selection.
	RangeSelection bool
}

// DefaultConfig enables modifier-based multi-select with full keyboard
// support.
func DefaultConfig() Config {
	return Config{
		Mode:               ModeModifier,
		KeyboardNavigation: true,
		RangeSelection:     true,
	}
}

// Change reports the selection delta produced by an operation, with both
// slices sorted ascending. Consumers use it to repaint only affected rows.
type Change struct {
	Added   []int
	Removed []int
}

// IsEmpty reports whether the operation changed nothing.
func (c Change) IsEmpty() bool { return len(c.Added) == 0 && len(c.Removed) == 0 }

// None marks an unset focus or anchor.
const None = -1

// Controller owns the selected index set plus the focus and anchor indices.
// All operations are total: out-of-range indices are clamped and operations
// on an empty collection are no-ops, so selection events may safely race
// with collection shrinkage.
type Controller struct {
	cfg Config

	selected map[int]struct{}
	focus    int
	anchor   int
	total    int
}

// New creates an empty controller for a collection of total items.
func New(cfg Config, total int) *Controller {
	return &Controller{
		cfg:      cfg,
		selected: make(map[int]struct{}),
		focus:    None,
		anchor:   None,
		total:    max(0, total),
	}
}

// clampIndex forces i into [0, total). Callers must have checked total > 0.
func (c *Controller) clampIndex(i int) int {
	return min(max(0, i), c.total-1)
}

// Select replaces the entire selection with {i} and moves both focus and
// anchor to i.
func (c *Controller) Select(i int) Change {
	if c.total == 0 {
		return Change{}
	}
	i = c.clampIndex(i)

	var ch Change
	for j := range c.selected {
		if j != i {
			ch.Removed = append(ch.Removed, j)
		}
	}
	if _, ok := c.selected[i]; !ok {
		ch.Added = append(ch.Added, i)
	}
	c.selected = map[int]struct{}{i: {}}
	c.focus = i
	c.anchor = i
	sort.Ints(ch.Removed)
	return ch
}

// Toggle flips membership of i. It records i as the last touched index
// (focus) but leaves the anchor where it is, so a later range extension
// still pivots on the original anchor.
func (c *Controller) Toggle(i int) Change {
	if c.total == 0 {
		return Change{}
	}
	i = c.clampIndex(i)
	c.focus = i
	if _, ok := c.selected[i]; ok {
		delete(c.selected, i)
		return Change{Removed: []int{i}}
	}
	c.selected[i] = struct{}{}
	return Change{Added: []int{i}}
}

// SelectRange adds every index in [min(anchor,i), max(anchor,i)] to the
// selection, using i itself as the pivot when no anchor exists. Focus moves
// to i; the anchor stays put. This is the shift-click contract.
func (c *Controller) SelectRange(i int) Change {
	if c.total == 0 {
		return Change{}
	}
	i = c.clampIndex(i)
	pivot := c.anchor
	if pivot == None {
		pivot = i
		c.anchor = i
	}

	var ch Change
	for j := min(pivot, i); j <= max(pivot, i); j++ {
		if _, ok := c.selected[j]; !ok {
			c.selected[j] = struct{}{}
			ch.Added = append(ch.Added, j)
		}
	}
	c.focus = i
	return ch
}

// SelectAll selects every index in [0, total). Focus and anchor are
// untouched.
func (c *Controller) SelectAll() Change {
	var ch Change
	for j := 0; j < c.total; j++ {
		if _, ok := c.selected[j]; !ok {
			c.selected[j] = struct{}{}
			ch.Added = append(ch.Added, j)
		}
	}
	return ch
}

// Clear empties the selection. Focus and anchor are untouched, so a
// subsequent range extension still works from the prior anchor.
func (c *Controller) Clear() Change {
	if len(c.selected) == 0 {
		return Change{}
	}
	ch := Change{Removed: c.Selected()}
	c.selected = make(map[int]struct{})
	return ch
}

// HandleKeyboard maps a semantic keyboard action onto the operations above.
// Navigation actions clamp the new focus to the collection bounds. With
// RangeSelection disabled the extend actions degrade to plain selection;
// with KeyboardNavigation disabled the focus-moving actions are no-ops.
func (c *Controller) HandleKeyboard(action KeyboardAction) Change {
	nav := c.cfg.KeyboardNavigation
	switch action {
	case ActionSelectNext:
		if !nav {
			return Change{}
		}
		return c.Select(c.focus + 1)
	case ActionSelectPrevious:
		if !nav {
			return Change{}
		}
		return c.Select(c.focus - 1)
	case ActionExtendDown:
		if !nav {
			return Change{}
		}
		if !c.cfg.RangeSelection {
			return c.Select(c.focus + 1)
		}
		return c.SelectRange(c.focus + 1)
	case ActionExtendUp:
		if !nav {
			return Change{}
		}
		if !c.cfg.RangeSelection {
			return c.Select(c.focus - 1)
		}
		return c.SelectRange(c.focus - 1)
	case ActionSelectAll:
		return c.SelectAll()
	case ActionClearSelection:
		return c.Clear()
	case ActionToggleCurrent:
		if c.focus == None {
			return Change{}
		}
		return c.Toggle(c.focus)
	}
	return Change{}
}

// SetTotal informs the controller of a new collection size. On shrink,
// every selected index at or beyond the new total is dropped, and focus and
// anchor are reset to None if they fall out of range. Growth changes
// nothing.
func (c *Controller) SetTotal(n int) Change {
	n = max(0, n)
	grow := n >= c.total
	c.total = n
	if grow {
		return Change{}
	}

	var ch Change
	for j := range c.selected {
		if j >= n {
			delete(c.selected, j)
			ch.Removed = append(ch.Removed, j)
		}
	}
	if c.focus >= n {
		c.focus = None
	}
	if c.anchor >= n {
		c.anchor = None
	}
	sort.Ints(ch.Removed)
	return ch
}

// Reset empties the selection, forgets focus and anchor, and resizes the
// collection. Unlike Clear this drops the anchor too: after a wholesale
// item replacement the old indices identify nothing, so a later range
// extension must not pivot on one.
func (c *Controller) Reset(n int) Change {
	ch := c.Clear()
	c.focus = None
	c.anchor = None
	c.total = max(0, n)
	return ch
}

// Selected returns the selected indices sorted ascending.
func (c *Controller) Selected() []int {
	out := make([]int, 0, len(c.selected))
	for j := range c.selected {
		out = append(out, j)
	}
	sort.Ints(out)
	return out
}

// IsSelected reports whether i is selected.
func (c *Controller) IsSelected(i int) bool {
	_, ok := c.selected[i]
	return ok
}

// Focus returns the focused index, or None.
func (c *Controller) Focus() int { return c.focus }

// Anchor returns the range-extension anchor, or None.
func (c *Controller) Anchor() int { return c.anchor }

// Count returns the number of selected indices.
func (c *Controller) Count() int { return len(c.selected) }

// Total returns the collection size the controller currently assumes.
func (c *Controller) Total() int { return c.total }

// Config returns the controller's configuration, for input dispatchers that
// need the multi-select mode.
func (c *Controller) Config() Config { return c.cfg }
