package canvas

import "fmt"

type EventType string

const (
	EventPointerDown  EventType = "pointer_down"
	EventPointerMove  EventType = "pointer_move"
	EventPointerUp    EventType = "pointer_up"
	EventPointerLeave EventType = "pointer_leave"
	EventZoomIn       EventType = "zoom_in"
	EventZoomOut      EventType = "zoom_out"
	EventReset        EventType = "reset"
)

// Event is an input to the controller as sent by a client.
type Event struct {
	Type      EventType `json:"type"`
	Point     Point     `json:"point"`
	Draggable bool      `json:"draggable"`
	Button    Button    `json:"button"`
}

// Apply dispatches ev to the matching controller method.
func (c *Controller) Apply(ev Event) error {
	switch ev.Type {
	case EventPointerDown:
		c.PointerDown(ev.Point, ev.Draggable, ev.Button)
	case EventPointerMove:
		c.PointerMove(ev.Point)
	case EventPointerUp:
		c.PointerUp()
	case EventPointerLeave:
		c.PointerLeave()
	case EventZoomIn:
		c.ZoomIn()
	case EventZoomOut:
		c.ZoomOut()
	case EventReset:
		c.Reset()
	default:
		return fmt.Errorf("unknown canvas event %q", ev.Type)
	}
	return nil
}
