package uistate

// ElementID and DraggingClass name the widget element and the class it
// carries while being dragged. The page stylesheet targets both.
const (
	ElementID     = "theme-toggle"
	DraggingClass = "dragging"
)

// InputKind classifies a browser event by what it does to the controller.
type InputKind int

const (
	InputIgnored InputKind = iota
	InputPress
	InputMove
	InputRelease
	InputCancel
	InputKey
)

// PressListenerType is the event the widget itself listens for.
const PressListenerType = "pointerdown"

// DragListenerTypes are the document events attached while dragging.
var DragListenerTypes = []string{"pointermove", "pointerup", "pointercancel"}

// InputKindOf maps a DOM event type to its InputKind. Only pointer events
// drive the widget, so the compatibility mouse and touch events a browser
// synthesizes for the same gesture are ignored.
func InputKindOf(eventType string) InputKind {
	switch eventType {
	case "pointerdown":
		return InputPress
	case "pointermove":
		return InputMove
	case "pointerup":
		return InputRelease
	case "pointercancel", "blur":
		return InputCancel
	case "keydown":
		return InputKey
	}
	return InputIgnored
}

// Input is a DOM event reduced to the fields the controller reads.
type Input struct {
	Type    string
	X, Y    float64 // Viewport coordinates of the pointer
	Primary bool    // Pointer events only; other pointers are ignored
	Key     string  // Keyboard events only
}

// Dispatch applies in to the controller and reports whether the event's
// default action should be prevented.
func (c *Controller) Dispatch(in Input) bool {
	switch InputKindOf(in.Type) {
	case InputPress:
		if !in.Primary || !c.ready {
			return false
		}
		c.PointerDown(in.X, in.Y)
		return true
	case InputMove:
		if !in.Primary || c.drag == nil {
			return false
		}
		c.PointerMove(in.X, in.Y)
		return true
	case InputRelease:
		if !in.Primary || c.drag == nil {
			return false
		}
		c.PointerUp()
		return true
	case InputCancel:
		if in.Type == "pointercancel" && !in.Primary {
			return false
		}
		c.Cancel()
		return false
	case InputKey:
		if in.Key != "Enter" && in.Key != " " {
			return false
		}
		c.Toggle()
		return true
	}
	return false
}
