// Package canvas tracks the pan and zoom transform of the family tree view.
package canvas

import "math"

const (
	MinScale  = 0.5
	MaxScale  = 3.0
	ZoomStep  = 0.2
	baseScale = 1.0
)

// State is the drag state of the controller.
type State string

const (
	StateIdle     State = "idle"
	StateDragging State = "dragging"
)

// Button identifies the pointer button of a press.
type Button int

const (
	ButtonPrimary   Button = 0
	ButtonAuxiliary Button = 1
	ButtonSecondary Button = 2
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Transform is the presentation transform applied to the tree.
type Transform struct {
	Scale       float64 `json:"scale"`
	Translation Point   `json:"translation"`
	State       State   `json:"state"`
}

// Controller holds the view state for a single canvas. It is not safe for
// concurrent use; each view owns its own controller.
type Controller struct {
	state       State
	scale       float64
	translation Point

	// Pointer position and translation captured when the drag began.
	dragPointer     Point
	dragTranslation Point
}

func New() *Controller {
	return &Controller{state: StateIdle, scale: baseScale}
}

// PointerDown starts a drag when the press lands inside a draggable region
// and is not a secondary-button press.
func (c *Controller) PointerDown(p Point, inDraggable bool, button Button) {
	if !inDraggable || button == ButtonSecondary {
		return
	}
	c.state = StateDragging
	c.dragPointer = p
	c.dragTranslation = c.translation
}

// PointerMove updates the translation relative to where the drag began.
// Moves outside a drag are ignored.
func (c *Controller) PointerMove(p Point) {
	if c.state != StateDragging {
		return
	}
	c.translation = p.Sub(c.dragPointer).Add(c.dragTranslation)
}

// PointerUp ends a drag.
func (c *Controller) PointerUp() {
	c.state = StateIdle
}

// PointerLeave ends a drag when the pointer exits the canvas.
func (c *Controller) PointerLeave() {
	c.state = StateIdle
}

// ZoomIn raises the scale by ZoomStep up to MaxScale. The translation is
// left unchanged, so zoom does not re-center on a focal point.
func (c *Controller) ZoomIn() {
	c.scale = min(roundScale(c.scale+ZoomStep), MaxScale)
}

// ZoomOut lowers the scale by ZoomStep down to MinScale.
func (c *Controller) ZoomOut() {
	c.scale = max(roundScale(c.scale-ZoomStep), MinScale)
}

// roundScale snaps to one decimal place so repeated steps do not drift.
func roundScale(s float64) float64 {
	return math.Round(s*10) / 10
}

// Reset restores scale 1 and zero translation.
func (c *Controller) Reset() {
	c.scale = baseScale
	c.translation = Point{}
}

func (c *Controller) State() State {
	return c.state
}

func (c *Controller) Transform() Transform {
	return Transform{
		Scale:       c.scale,
		Translation: c.translation,
		State:       c.state,
	}
}
