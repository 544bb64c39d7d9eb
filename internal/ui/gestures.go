package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/mobile"
)

// PointerSink receives pointer events in widget coordinates
type PointerSink interface {
	PointerDown(x, y float32, touches int)
	PointerMove(x, y float32)
	PointerUp(x, y float32)
	PointerCancel()
}

// GestureHandler folds Fyne mouse, drag and touch events into one pointer
// track. Desktop releases arrive as both MouseUp and DragEnd and touch
// screens report every finger separately; the sink sees exactly one
// down/up pair per interaction.
type GestureHandler struct {
	sink PointerSink

	// Touch tracking
	down    bool
	touches int
	lastPos fyne.Position
}

// NewGestureHandler creates a new gesture handler feeding sink
func NewGestureHandler(sink PointerSink) *GestureHandler {
	return &GestureHandler{sink: sink}
}

// Down starts an interaction, or adds a touch point to the current one
func (gh *GestureHandler) Down(pos fyne.Position) {
	if gh.down {
		gh.touches++
		gh.sink.PointerDown(pos.X, pos.Y, 1)
		return
	}
	gh.down = true
	gh.touches = 1
	gh.lastPos = pos
	gh.sink.PointerDown(pos.X, pos.Y, 1)
}

// Move forwards pointer movement while an interaction is active
func (gh *GestureHandler) Move(pos fyne.Position) {
	if !gh.down {
		return
	}
	gh.lastPos = pos
	gh.sink.PointerMove(pos.X, pos.Y)
}

// Up lifts one touch point; the interaction ends with the last one
func (gh *GestureHandler) Up(pos fyne.Position) {
	if !gh.down {
		return
	}
	gh.touches--
	if gh.touches > 0 {
		return
	}
	gh.down = false
	gh.touches = 0
	gh.sink.PointerUp(pos.X, pos.Y)
}

// DragEnd ends the interaction at the last known position
func (gh *GestureHandler) DragEnd() {
	if !gh.down {
		return
	}
	gh.touches = 1
	gh.Up(gh.lastPos)
}

// Cancel abandons the interaction
func (gh *GestureHandler) Cancel() {
	if !gh.down {
		return
	}
	gh.down = false
	gh.touches = 0
	gh.sink.PointerCancel()
}

// Active reports whether an interaction is in progress
func (gh *GestureHandler) Active() bool {
	return gh.down
}

// TouchDown handles touch down events
func (gh *GestureHandler) TouchDown(event *mobile.TouchEvent) {
	gh.Down(event.Position)
}

// TouchUp handles touch up events
func (gh *GestureHandler) TouchUp(event *mobile.TouchEvent) {
	gh.Up(event.Position)
}

// TouchCancel handles touch cancel events
func (gh *GestureHandler) TouchCancel(event *mobile.TouchEvent) {
	gh.Cancel()
}
