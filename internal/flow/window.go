package flow

import (
	"fmt"
	"sort"
)

// window is the set of materialized elements.
type window struct {
	elements map[int]*Element
	lower    int
	upper    int
	selected int
}

func newWindow() window {
	return window{
		elements: make(map[int]*Element),
		lower:    -1,
		upper:    -1,
		selected: -1,
	}
}

func (w *window) empty() bool {
	return len(w.elements) == 0
}

// indices returns the materialized indices in ascending order.
func (w *window) indices() []int {
	out := make([]int, 0, len(w.elements))
	for i := range w.elements {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// SetSelected makes index the selected panel, reconciling the materialized
// window with as few element reassignments as possible. Panels whose visual
// state changed are animated; newly attached panels are placed directly.
//
// index must lie in [0, Count()); callers clamp user input before calling.
// With an empty collection SetSelected does nothing.
func (f *Flow) SetSelected(index int) {
	if f.total == 0 {
		return
	}
	if index < 0 || index >= f.total {
		panic(fmt.Sprintf("flow: selected index %d out of range [0,%d)", index, f.total))
	}

	w := &f.window
	if !w.empty() && index == w.selected {
		return
	}

	lower := max(0, index-f.params.Buffer)
	upper := min(f.total-1, index+f.params.Buffer)

	switch {
	case w.empty():
		f.materialize(index, lower, upper)
	case lower > w.upper || upper < w.lower:
		// A jump: nothing to reuse in place.
		f.logf("flow: jump from %d to %d, rebuilding [%d,%d]", w.selected, index, lower, upper)
		f.releaseAll()
		f.materialize(index, lower, upper)
	default:
		f.shift(index, lower, upper)
	}
}

// materialize attaches a fresh element to every index in [lower, upper].
func (f *Flow) materialize(selected, lower, upper int) {
	w := &f.window
	w.selected, w.lower, w.upper = selected, lower, upper
	for i := lower; i <= upper; i++ {
		el := f.pool.acquire()
		f.attach(el, i)
		f.layoutElement(el, false)
	}
}

// shift moves an overlapping window. Elements that fall out of range are
// re-purposed for the indices that come into range before the pool is asked
// for new ones; only leftovers are released.
func (f *Flow) shift(selected, lower, upper int) {
	w := &f.window
	prev := w.selected
	oldLower, oldUpper := w.lower, w.upper

	var vacated []*Element
	for i := oldLower; i <= oldUpper; i++ {
		if i >= lower && i <= upper {
			continue
		}
		if el, ok := w.elements[i]; ok {
			vacated = append(vacated, el)
			delete(w.elements, i)
		}
	}

	w.selected, w.lower, w.upper = selected, lower, upper

	for i := lower; i <= upper; i++ {
		if i >= oldLower && i <= oldUpper {
			continue
		}
		var el *Element
		if len(vacated) > 0 {
			el, vacated = vacated[0], vacated[1:]
		} else {
			el = f.pool.acquire()
		}
		f.attach(el, i)
		f.layoutElement(el, false)
	}

	for _, el := range vacated {
		f.detach(el)
	}

	// Only panels between the old and new selection change state.
	for i := min(prev, selected); i <= max(prev, selected); i++ {
		if el, ok := w.elements[i]; ok {
			f.layoutElement(el, true)
		}
	}
}

// attach binds el to index and fills it from the cache.
func (f *Flow) attach(el *Element, index int) {
	el.Index = index
	el.Content, el.placeholder = f.cache.contentFor(index)
	f.window.elements[index] = el
}

// detach hides el and returns it to the pool.
func (f *Flow) detach(el *Element) {
	f.renderer.DetachPanel(el.ID)
	f.pool.release(el)
}

// releaseAll empties the window.
func (f *Flow) releaseAll() {
	w := &f.window
	for _, i := range w.indices() {
		f.detach(w.elements[i])
	}
	*w = newWindow()
}

// rebuild re-materializes the window around selected, e.g. after the
// buffer radius or the collection size changed.
func (f *Flow) rebuild(selected int) {
	f.logf("flow: rebuilding window around %d", selected)
	f.releaseAll()
	if f.total == 0 {
		return
	}
	f.SetSelected(selected)
}
