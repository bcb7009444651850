package session

// Event is an input event delivered by the host window.
type Event interface {
	isEvent()
}

// PointerPress is a mouse button press at raw viewport coordinates
// (pixels, origin top-left).
type PointerPress struct {
	Button int
	X, Y   float64
}

func (PointerPress) isEvent() {}

// PointerMove is a cursor movement at raw viewport coordinates. It only
// drives the coordinate readout and the clear color.
type PointerMove struct {
	X, Y float64
}

func (PointerMove) isEvent() {}

// Resize reports a new drawable size in pixels.
type Resize struct {
	Width, Height int
}

func (Resize) isEvent() {}

// CloseRequest ends the session (window close or Escape).
type CloseRequest struct{}

func (CloseRequest) isEvent() {}
