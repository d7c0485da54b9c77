// Package scroll owns the scroll offset and its momentum physics for a
// virtualized collection. The controller is a small state machine, Idle →
// Dragging → Momentum → Idle, advanced by input deltas and simulation
// ticks. Friction is a per-second decay constant exponentiated by elapsed
// time, so the motion is frame-rate independent.
package scroll

import (
	"log/slog"
	"math"
)

// Phase is the controller's logical state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseMomentum
)

// String implements fmt.Stringer.
func (p Phase) String() string {
	switch p {
	case PhaseDragging:
		return "dragging"
	case PhaseMomentum:
		return "momentum"
	default:
		return "idle"
	}
}

// Behavior selects how ScrollTo reaches its target.
type Behavior int

const (
	// BehaviorInstant jumps to the target and cancels any in-flight motion.
	BehaviorInstant Behavior = iota
	// BehaviorSmooth records the target and leaves interpolation to an
	// external animation collaborator, which reports intermediate values
	// back through OnInputDelta.
	BehaviorSmooth
)

// Direction restricts which axes respond to input.
type Direction int

const (
	DirectionVertical Direction = iota
	DirectionHorizontal
	DirectionBoth
)

// Position is a scroll offset or velocity in layout units.
type Position struct {
	Top  float64
	Left float64
}

// Add returns p+q.
func (p Position) Add(q Position) Position {
	return Position{Top: p.Top + q.Top, Left: p.Left + q.Left}
}

// Scale returns p scaled by f.
func (p Position) Scale(f float64) Position {
	return Position{Top: p.Top * f, Left: p.Left * f}
}

// Magnitude returns the Euclidean length of p.
func (p Position) Magnitude() float64 {
	return math.Hypot(p.Top, p.Left)
}

// IsZero reports whether both components are exactly zero.
func (p Position) IsZero() bool {
	return p.Top == 0 && p.Left == 0
}

// State is a snapshot of the controller for external consumers.
type State struct {
	Position    Position
	Velocity    Position
	IsScrolling bool
	IsMomentum  bool
}

const (
	defaultFriction    = 0.95
	defaultEpsilon     = 1.0
	defaultSmoothing   = 0.2
	defaultRestitution = 0.5

	// Input deltas arrive at roughly frame cadence; this converts a raw
	// delta into a per-second velocity sample for the moving average.
	inputSampleRate = 60.0
)

// Config configures scroll behavior and physics.
type Config struct {
	Direction Direction
	// Momentum enables post-release inertial motion.
	Momentum bool
	// Friction is the per-second velocity decay constant, in (0, 1).
	Friction float64
	// Bounce reflects (with damping) instead of stopping dead at bounds.
	Bounce bool
	// Epsilon is the velocity magnitude below which momentum snaps to
	// exactly zero.
	Epsilon float64
	// Smoothing is the moving-average weight given to each new input
	// delta when estimating release velocity, in (0, 1].
	Smoothing float64
	// Restitution is the fraction of velocity retained when bouncing off
	// a bound, in [0, 1).
	Restitution float64
}

// DefaultConfig returns vertical momentum scrolling without bounce.
func DefaultConfig() Config {
	return Config{
		Direction:   DirectionVertical,
		Momentum:    true,
		Friction:    defaultFriction,
		Epsilon:     defaultEpsilon,
		Smoothing:   defaultSmoothing,
		Restitution: defaultRestitution,
	}
}

// normalize clamps degenerate values to safe defaults, logging once.
func (c Config) normalize() Config {
	if !(c.Friction > 0 && c.Friction < 1) {
		slog.Warn("scroll friction clamped to default", "friction", c.Friction, "default", defaultFriction)
		c.Friction = defaultFriction
	}
	if !(c.Epsilon > 0) || math.IsInf(c.Epsilon, 1) || math.IsNaN(c.Epsilon) {
		c.Epsilon = defaultEpsilon
	}
	if !(c.Smoothing > 0 && c.Smoothing <= 1) {
		c.Smoothing = defaultSmoothing
	}
	if !(c.Restitution >= 0 && c.Restitution < 1) {
		c.Restitution = defaultRestitution
	}
	return c
}

// Controller owns the scroll position and velocity. It learns the content
// and viewport extents from the caller (a read of the packer's state, never
// the reverse) and clamps the position to [0, maxScroll] after every
// mutation.
type Controller struct {
	cfg Config

	pos Position
	vel Position

	phase Phase

	contentExtent  Position // Left = width, Top = height
	viewportExtent Position

	target        *Position
	lastDirection int // -1 up, 0 none, +1 down
}

// New creates an idle controller at the origin. Degenerate configuration
// values are clamped to safe defaults, reported once here.
func New(cfg Config) *Controller {
	return &Controller{cfg: cfg.normalize()}
}

// SetContentExtent records the packer's content size.
func (c *Controller) SetContentExtent(width, height float64) {
	c.contentExtent = Position{Top: max(0, height), Left: max(0, width)}
	c.clamp()
}

// SetViewport records the viewport size.
func (c *Controller) SetViewport(width, height float64) {
	c.viewportExtent = Position{Top: max(0, height), Left: max(0, width)}
	c.clamp()
}

// MaxScroll returns the maximum valid offset per axis.
func (c *Controller) MaxScroll() Position {
	m := Position{
		Top:  max(0, c.contentExtent.Top-c.viewportExtent.Top),
		Left: max(0, c.contentExtent.Left-c.viewportExtent.Left),
	}
	switch c.cfg.Direction {
	case DirectionVertical:
		m.Left = 0
	case DirectionHorizontal:
		m.Top = 0
	}
	return m
}

// clamp forces the position into [0, maxScroll] and reports which axes hit
// a bound.
func (c *Controller) clamp() (hitTop, hitLeft bool) {
	m := c.MaxScroll()
	before := c.pos
	c.pos.Top = min(max(0, c.pos.Top), m.Top)
	c.pos.Left = min(max(0, c.pos.Left), m.Left)
	return c.pos.Top != before.Top, c.pos.Left != before.Left
}

// OnInputDelta applies a direct drag/wheel delta. The position moves
// immediately (clamped, no friction) and the release velocity estimate is
// updated as an exponential moving average of recent deltas.
func (c *Controller) OnInputDelta(delta Position) {
	if math.IsNaN(delta.Top) || math.IsNaN(delta.Left) ||
		math.IsInf(delta.Top, 0) || math.IsInf(delta.Left, 0) {
		return
	}
	switch c.cfg.Direction {
	case DirectionVertical:
		delta.Left = 0
	case DirectionHorizontal:
		delta.Top = 0
	}

	c.phase = PhaseDragging
	before := c.pos.Top
	c.pos = c.pos.Add(delta)
	c.clamp()
	c.trackDirection(before)

	sample := delta.Scale(inputSampleRate)
	s := c.cfg.Smoothing
	c.vel = c.vel.Scale(1 - s).Add(sample.Scale(s))
}

// OnRelease ends a drag. With residual velocity and momentum enabled the
// controller enters Momentum; otherwise it settles to Idle.
func (c *Controller) OnRelease() {
	if c.phase != PhaseDragging {
		return
	}
	if c.cfg.Momentum && c.vel.Magnitude() > c.cfg.Epsilon {
		c.phase = PhaseMomentum
		return
	}
	c.vel = Position{}
	c.phase = PhaseIdle
}

// Tick advances the momentum simulation by dt seconds. Outside Momentum it
// is a no-op. Velocity decays as friction^dt; once its magnitude drops
// below epsilon it snaps to exactly zero and the controller goes Idle.
func (c *Controller) Tick(dt float64) {
	if c.phase != PhaseMomentum || dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return
	}

	before := c.pos.Top
	c.pos = c.pos.Add(c.vel.Scale(dt))
	hitTop, hitLeft := c.clamp()
	c.trackDirection(before)

	if hitTop {
		if c.cfg.Bounce {
			c.vel.Top = -c.vel.Top * c.cfg.Restitution
		} else {
			c.vel.Top = 0
		}
	}
	if hitLeft {
		if c.cfg.Bounce {
			c.vel.Left = -c.vel.Left * c.cfg.Restitution
		} else {
			c.vel.Left = 0
		}
	}

	c.vel = c.vel.Scale(math.Pow(c.cfg.Friction, dt))

	if c.vel.Magnitude() < c.cfg.Epsilon {
		c.vel = Position{}
		c.phase = PhaseIdle
	}
}

// ScrollTo moves to a position. Instant cancels any in-flight momentum or
// smooth animation and jumps directly; Smooth records the target and lets
// an external animator interpolate via OnInputDelta writes.
func (c *Controller) ScrollTo(p Position, behavior Behavior) {
	if behavior == BehaviorSmooth {
		t := p
		c.target = &t
		return
	}
	before := c.pos.Top
	c.pos = p
	c.clamp()
	c.trackDirection(before)
	c.vel = Position{}
	c.phase = PhaseIdle
	c.target = nil
}

// Stop cancels any in-flight motion, keeping the current position.
func (c *Controller) Stop() {
	c.vel = Position{}
	c.phase = PhaseIdle
	c.target = nil
}

// Target returns the pending smooth-scroll target, if any.
func (c *Controller) Target() (Position, bool) {
	if c.target == nil {
		return Position{}, false
	}
	return *c.target, true
}

func (c *Controller) trackDirection(beforeTop float64) {
	switch {
	case c.pos.Top > beforeTop:
		c.lastDirection = 1
	case c.pos.Top < beforeTop:
		c.lastDirection = -1
	}
}

// LastDirection returns the most recent vertical travel direction:
// -1 up, +1 down, 0 before any motion.
func (c *Controller) LastDirection() int { return c.lastDirection }

// Position returns the current clamped offset.
func (c *Controller) Position() Position { return c.pos }

// Velocity returns the current velocity estimate.
func (c *Controller) Velocity() Position { return c.vel }

// Phase returns the controller's current state-machine phase.
func (c *Controller) Phase() Phase { return c.phase }

// State returns a snapshot for external consumers.
func (c *Controller) State() State {
	return State{
		Position:    c.pos,
		Velocity:    c.vel,
		IsScrolling: c.phase != PhaseIdle,
		IsMomentum:  c.phase == PhaseMomentum,
	}
}

// Progress returns the normalized vertical position in [0, 1]; 0 when the
// content fits inside the viewport.
func (c *Controller) Progress() float64 {
	m := c.MaxScroll().Top
	if m <= 0 {
		return 0
	}
	return c.pos.Top / m
}
