package uistate

import (
	"log/slog"
	"math"
)

// Theme is the site color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggled returns the opposite theme.
func (t Theme) Toggled() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ParseTheme returns the Theme named by s, if it is one.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), true
	}
	return "", false
}

// Widget geometry defaults, in CSS pixels.
const (
	DefaultWidgetSize    = 56
	DefaultCornerInset   = 80
	DefaultDragThreshold = 4
)

// Position is the top-left corner of the toggle widget.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Environment describes the page at mount time.
type Environment struct {
	ViewportWidth  float64
	ViewportHeight float64
	PrefersDark    bool // System color scheme preference
}

// Surface attaches the global pointer move/up listeners used while dragging.
// Acquire attaches them and returns a function that detaches them.
type Surface interface {
	Acquire() (release func())
}

// State is a snapshot of the controller for rendering.
type State struct {
	Theme    Theme
	Position Position
	Dragging bool
	Ready    bool // False until Mount; nothing theme-dependent is drawn before
}

// Option configures a Controller.
type Option func(*Controller)

// WithSurface sets the surface that global drag listeners are attached to.
func WithSurface(s Surface) Option {
	return func(c *Controller) { c.surface = s }
}

// WithWidgetSize sets the widget edge length used for clamping.
func WithWidgetSize(size float64) Option {
	return func(c *Controller) { c.widgetSize = size }
}

// WithDragThreshold sets how far the pointer must travel before a press
// counts as a drag rather than a click.
func WithDragThreshold(px float64) Option {
	return func(c *Controller) { c.threshold = px }
}

// WithLogger sets the logger for storage fallbacks.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

type drag struct {
	offset  Position // pointer minus widget position at press
	origin  Position // pointer at press
	moved   bool     // travelled past the threshold
	release func()
}

// Controller owns the theme and the draggable toggle position for one page
// view. All methods must be called from the UI thread.
type Controller struct {
	storage    Storage
	surface    Surface
	logger     *slog.Logger
	widgetSize float64
	threshold  float64

	viewportW float64
	viewportH float64
	theme     Theme
	pos       Position
	ready     bool
	drag      *drag
}

// New creates an unmounted Controller persisting to storage.
// A nil storage means state only lives in memory.
func New(storage Storage, opts ...Option) *Controller {
	if storage == nil {
		storage = NewMemoryStorage()
	}
	c := &Controller{
		storage:    storage,
		logger:     slog.Default(),
		widgetSize: DefaultWidgetSize,
		threshold:  DefaultDragThreshold,
		theme:      ThemeLight,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Mount resolves the initial state and marks the controller ready.
// The theme is the stored value, then the system preference, then light.
// The position is the stored value, then the bottom-right default, clamped
// to the viewport. Mounting twice has no effect.
func (c *Controller) Mount(env Environment) State {
	if c.ready {
		return c.State()
	}
	c.viewportW = env.ViewportWidth
	c.viewportH = env.ViewportHeight

	c.theme = ThemeLight
	if env.PrefersDark {
		c.theme = ThemeDark
	}
	if raw, ok := c.load(KeyTheme); ok {
		if t, valid := ParseTheme(raw); valid {
			c.theme = t
		} else {
			c.logger.Debug("ignoring unknown stored theme", "value", raw)
		}
	}

	c.pos = Position{X: env.ViewportWidth - DefaultCornerInset, Y: env.ViewportHeight - DefaultCornerInset}
	if raw, ok := c.load(KeyPosition); ok {
		if p, err := decodePosition(raw); err == nil {
			c.pos = p
		} else {
			c.logger.Debug("ignoring malformed stored position", "value", raw, "error", err)
		}
	}
	c.pos = c.clamp(c.pos)

	c.ready = true
	return c.State()
}

// State returns the current state.
func (c *Controller) State() State {
	return State{
		Theme:    c.theme,
		Position: c.pos,
		Dragging: c.drag != nil,
		Ready:    c.ready,
	}
}

// Toggle flips the theme and persists it.
func (c *Controller) Toggle() Theme {
	if !c.ready {
		return c.theme
	}
	c.theme = c.theme.Toggled()
	c.store(KeyTheme, string(c.theme))
	return c.theme
}

// PointerDown starts a drag at pointer (x, y) and acquires the global
// listeners. A press while already dragging ends the previous drag first.
func (c *Controller) PointerDown(x, y float64) {
	if !c.ready {
		return
	}
	if c.drag != nil {
		c.endDrag()
	}

	d := &drag{
		offset: Position{X: x - c.pos.X, Y: y - c.pos.Y},
		origin: Position{X: x, Y: y},
	}
	if c.surface != nil {
		d.release = c.surface.Acquire()
	}
	c.drag = d
}

// PointerMove moves the widget so that it follows the pointer, clamped to
// the viewport.
func (c *Controller) PointerMove(x, y float64) {
	if c.drag == nil {
		return
	}
	if !c.drag.moved && math.Hypot(x-c.drag.origin.X, y-c.drag.origin.Y) > c.threshold {
		c.drag.moved = true
	}
	c.pos = c.clamp(Position{X: x - c.drag.offset.X, Y: y - c.drag.offset.Y})
}

// PointerUp ends the drag, releases the global listeners and persists the
// position. A press that never travelled past the threshold is a click and
// toggles the theme. It reports whether the theme was toggled.
func (c *Controller) PointerUp() bool {
	if c.drag == nil {
		return false
	}
	moved := c.drag.moved
	c.endDrag()
	if moved {
		return false
	}
	c.Toggle()
	return true
}

// Cancel ends a drag without toggling, for touchcancel, blur or unmount.
func (c *Controller) Cancel() {
	if c.drag != nil {
		c.endDrag()
	}
}

// Resize updates the viewport and pulls the widget back inside it.
func (c *Controller) Resize(width, height float64) Position {
	c.viewportW = width
	c.viewportH = height
	if c.ready {
		c.pos = c.clamp(c.pos)
	}
	return c.pos
}

func (c *Controller) endDrag() {
	d := c.drag
	c.drag = nil
	if d.release != nil {
		d.release()
	}
	if raw, err := encodePosition(c.pos); err == nil {
		c.store(KeyPosition, raw)
	}
}

func (c *Controller) clamp(p Position) Position {
	return Position{
		X: clamp(p.X, c.viewportW-c.widgetSize),
		Y: clamp(p.Y, c.viewportH-c.widgetSize),
	}
}

// clamp saturates v into [0, upper]; a negative upper collapses to 0.
func clamp(v, upper float64) float64 {
	return math.Max(0, math.Min(v, upper))
}

// load reads key, switching to memory storage if the backing store fails.
func (c *Controller) load(key string) (string, bool) {
	v, ok, err := c.storage.Get(key)
	if err != nil {
		c.fallback(err)
		return "", false
	}
	return v, ok
}

// store writes key, switching to memory storage if the backing store fails.
func (c *Controller) store(key, value string) {
	if err := c.storage.Set(key, value); err != nil {
		c.fallback(err)
		_ = c.storage.Set(key, value)
	}
}

func (c *Controller) fallback(err error) {
	if _, isMem := c.storage.(*MemoryStorage); isMem {
		return
	}
	c.logger.Debug("persistent storage unavailable, keeping state in memory", "error", err)
	c.storage = NewMemoryStorage()
}
