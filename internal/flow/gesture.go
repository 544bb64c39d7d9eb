package flow

import (
	"math"
	"time"
)

// Phase is the state of the pointer track.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseTracking
)

// TapLatch tells a plain tap apart from a drag or a double tap.
type TapLatch int

const (
	// TapNone means the interaction is not a tap (moved or multi-touch).
	TapNone TapLatch = iota
	// TapSingle is a candidate tap: one touch point, no movement yet.
	TapSingle
	// TapDouble marks a second tap; it suppresses tap selection.
	TapDouble
)

// Gesture is the state of one pointer interaction. It is replaced as a
// whole on every transition and reset to the zero value when it ends.
type Gesture struct {
	Phase         Phase
	StartSelected int
	StartOffset   float32
	DraggingItem  bool
	Tap           TapLatch
	Moved         bool
	Touches       int
}

// Active reports whether a pointer is being tracked.
func (g Gesture) Active() bool {
	return g.Phase == PhaseTracking
}

func (g Gesture) isSingleTap() bool {
	return g.Tap == TapSingle && !g.Moved && g.Touches == 1
}

// PointerDown starts tracking a pointer at viewport position (x, y).
// touches is the number of touch points in the event.
func (f *Flow) PointerDown(x, y float32, touches int) {
	if f.window.empty() {
		return
	}

	if f.gesture.Active() {
		// Another touch joined the one already tracked.
		g := f.gesture
		g.Tap = TapDouble
		g.Touches += touches
		f.gesture = g
		return
	}

	now := f.now()
	tap := TapNone
	if touches == 1 {
		tap = TapSingle
		if f.params.DoubleTapDelay > 0 && !f.lastTap.IsZero() && now.Sub(f.lastTap) <= f.params.DoubleTapDelay {
			tap = TapDouble
		}
	}

	_, hit := f.HitTest(x, y)
	f.gesture = Gesture{
		Phase:         PhaseTracking,
		StartSelected: f.window.selected,
		StartOffset:   f.scroll + x/f.params.PointerDivisor,
		DraggingItem:  hit,
		Tap:           tap,
		Touches:       touches,
	}
}

// PointerMove scrolls live while a drag that started on a panel is active.
// The selection follows the scroll offset without animating each step.
func (f *Flow) PointerMove(x, y float32) {
	if !f.gesture.Active() {
		return
	}

	g := f.gesture
	g.Moved = true
	g.Tap = TapNone
	f.gesture = g

	if !g.DraggingItem {
		return
	}

	offset := g.StartOffset - x/f.params.PointerDivisor
	f.scrollTo(offset, false)

	candidate := f.clampIndex(int(math.Floor(float64(offset / f.params.Spacing))))
	if candidate != f.window.selected {
		f.SetSelected(candidate)
	}
}

// PointerUp ends the interaction. A single tap on a side panel selects it;
// a double tap never changes the selection but is reported to OnDoubleTap.
// The viewport always settles on the selection, and OnSelectionChanged fires
// once if the selection differs from the one at PointerDown.
func (f *Flow) PointerUp(x, y float32) {
	if !f.gesture.Active() {
		return
	}

	g := f.gesture
	f.gesture = Gesture{}

	doubleTapped := -1
	if g.isSingleTap() {
		f.lastTap = f.now()
		if index, ok := f.HitTest(x, y); ok && index != f.window.selected {
			f.SetSelected(index)
		}
	} else {
		f.lastTap = time.Time{}
		if g.Tap == TapDouble && !g.Moved {
			if index, ok := f.HitTest(x, y); ok {
				doubleTapped = index
			}
		}
	}

	f.finishGesture(g.StartSelected)
	if doubleTapped >= 0 && f.OnDoubleTap != nil {
		f.OnDoubleTap(doubleTapped)
	}
}

// PointerCancel ends the interaction without tap handling.
func (f *Flow) PointerCancel() {
	if !f.gesture.Active() {
		return
	}
	g := f.gesture
	f.gesture = Gesture{}
	f.lastTap = time.Time{}
	f.finishGesture(g.StartSelected)
}

// Gesture returns the current pointer state.
func (f *Flow) Gesture() Gesture {
	return f.gesture
}

func (f *Flow) finishGesture(startSelected int) {
	f.CenterOnSelected(true)
	if f.window.selected != startSelected {
		f.notifySelectionChanged()
	}
}

func (f *Flow) clampIndex(i int) int {
	if i < 0 {
		return 0
	}
	if i >= f.total {
		return f.total - 1
	}
	return i
}
