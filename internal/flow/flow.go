package flow

import (
	"fmt"
	"image"
	"sort"
	"time"
)

// Flow is the cover flow engine. See the package documentation for the
// threading contract.
type Flow struct {
	params   Params
	viewport Viewport
	source   DataSource
	renderer Renderer

	pool   pool
	cache  *imageCache
	window window
	total  int
	scroll float32

	gesture Gesture
	lastTap time.Time
	now     func() time.Time

	// OnSelectionChanged is called once per user interaction that ends
	// on a different selection than it started with.
	OnSelectionChanged func(selected int)

	// OnDoubleTap is called with the panel under a double tap.
	OnDoubleTap func(index int)

	// Logf, when set, receives a line for every window rebuild.
	Logf func(format string, args ...any)
}

// New creates a Flow drawing through renderer and fetching through source.
// It panics on nil collaborators or invalid params.
func New(source DataSource, renderer Renderer, params Params) *Flow {
	if source == nil {
		panic("flow: nil data source")
	}
	if renderer == nil {
		panic("flow: nil renderer")
	}
	if err := params.Validate(); err != nil {
		panic(fmt.Sprintf("flow: %v", err))
	}

	f := &Flow{
		params:   params,
		source:   source,
		renderer: renderer,
		window:   newWindow(),
		now:      time.Now,
	}
	f.cache = newImageCache(params.MaxCachedImages, source.DefaultImage(), source.RequestImage)
	return f
}

// Params returns the current geometry.
func (f *Flow) Params() Params {
	return f.params
}

// Count returns the size of the collection.
func (f *Flow) Count() int {
	return f.total
}

// Selected returns the selected index, or -1 when nothing is materialized.
func (f *Flow) Selected() int {
	if f.window.empty() {
		return -1
	}
	return f.window.selected
}

// Bounds returns the inclusive range of materialized indices, or (-1, -1).
func (f *Flow) Bounds() (lower, upper int) {
	if f.window.empty() {
		return -1, -1
	}
	return f.window.lower, f.window.upper
}

// Materialized returns the materialized indices in ascending order.
func (f *Flow) Materialized() []int {
	return f.window.indices()
}

// Allocated returns the number of live elements, attached or pooled.
func (f *Flow) Allocated() int {
	return f.pool.allocated()
}

// ScrollOffset returns the current horizontal content offset.
func (f *Flow) ScrollOffset() float32 {
	return f.scroll
}

// Viewport returns the size set by SetViewport.
func (f *Flow) Viewport() Viewport {
	return f.viewport
}

// SetCount sets the size of the collection. The first non-empty count
// selects index 0; later changes rebuild the window around the previous
// selection, clamped into the new range.
func (f *Flow) SetCount(n int) {
	if n < 0 {
		panic(fmt.Sprintf("flow: negative count %d", n))
	}
	if n == f.total {
		return
	}

	prev := f.Selected()
	f.total = n
	f.releaseAll()
	if n == 0 {
		f.scrollTo(0, false)
		return
	}

	f.SetSelected(f.clampIndex(max(prev, 0)))
	f.CenterOnSelected(false)
}

// Reset replaces the collection with one of n items. Cached images and
// outstanding requests are forgotten, any pointer interaction is dropped
// and index 0 is selected.
func (f *Flow) Reset(n int) {
	if n < 0 {
		panic(fmt.Sprintf("flow: negative count %d", n))
	}
	f.logf("flow: reset to %d items", n)
	f.gesture = Gesture{}
	f.lastTap = time.Time{}
	f.releaseAll()
	f.total = 0
	f.cache.clear()
	if n == 0 {
		f.scrollTo(0, false)
		return
	}
	f.SetCount(n)
}

// SetParams replaces the geometry and re-lays-out every panel. Changing
// the buffer radius rebuilds the window.
func (f *Flow) SetParams(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}

	old := f.params
	f.params = p
	f.cache.resize(p.MaxCachedImages)

	if f.window.empty() {
		return nil
	}
	if p.Buffer != old.Buffer {
		f.rebuild(f.window.selected)
	} else {
		f.relayout(false)
	}
	f.CenterOnSelected(false)
	return nil
}

// SetViewport updates the drawing area and re-centres without animation.
func (f *Flow) SetViewport(v Viewport) {
	if v == f.viewport {
		return
	}
	f.viewport = v
	if f.window.empty() {
		return
	}
	f.relayout(false)
	f.CenterOnSelected(false)
}

// SetDefaultImage replaces the placeholder and refreshes panels showing it.
func (f *Flow) SetDefaultImage(img image.Image) {
	f.cache.fallback = NewContent(img)
	for _, i := range f.window.indices() {
		el := f.window.elements[i]
		if !el.placeholder {
			continue
		}
		el.Content = f.cache.fallback
		f.layoutElement(el, false)
	}
}

// ProvideImage stores the image for index. If the index is materialized its
// panel is refreshed in place; nothing else moves. A nil image counts as a
// failed fetch: the panel keeps the placeholder and the index may be
// requested again when it is next materialized.
func (f *Flow) ProvideImage(index int, img image.Image) {
	if index < 0 {
		panic(fmt.Sprintf("flow: negative image index %d", index))
	}
	if img == nil {
		f.cache.forget(index)
		return
	}

	content := NewContent(img)
	f.cache.set(index, content)

	el, ok := f.window.elements[index]
	if !ok {
		return
	}
	el.Content = content
	el.placeholder = false
	f.layoutElement(el, false)
}

// Image returns the cached image for index.
func (f *Flow) Image(index int) (image.Image, bool) {
	c, ok := f.cache.get(index)
	if !ok {
		return nil, false
	}
	return c.Image, true
}

// Pending reports whether a fetch for index is outstanding.
func (f *Flow) Pending(index int) bool {
	return f.cache.isPending(index)
}

// CenterOnSelected scrolls so that the selected panel is in the middle.
func (f *Flow) CenterOnSelected(animated bool) {
	if f.window.empty() {
		return
	}
	f.scrollTo(f.params.Spacing*float32(f.window.selected), animated)
}

// Advance moves the selection by delta (keyboard, demo mode), clamped to
// the collection, settles the viewport and notifies on change.
func (f *Flow) Advance(delta int) {
	if f.window.empty() || f.gesture.Active() {
		return
	}
	start := f.window.selected
	f.SetSelected(f.clampIndex(start + delta))
	f.finishGesture(start)
}

// Select is the programmatic counterpart of a tap: it selects index,
// animates the viewport and notifies on change.
func (f *Flow) Select(index int) {
	if f.window.empty() || f.gesture.Active() {
		return
	}
	start := f.window.selected
	f.SetSelected(index)
	f.finishGesture(start)
}

// Panels returns the materialized panels in drawing order, back to front.
func (f *Flow) Panels() []Panel {
	panels := make([]Panel, 0, len(f.window.elements))
	for _, el := range f.window.elements {
		panels = append(panels, el.panel())
	}
	sel := f.window.selected
	sort.Slice(panels, func(i, j int) bool {
		a, b := panels[i], panels[j]
		if a.Pose.Z != b.Pose.Z {
			return a.Pose.Z < b.Pose.Z
		}
		ra, rb := stackRank(a.Index, sel), stackRank(b.Index, sel)
		if ra != rb {
			return ra < rb
		}
		return a.Index < b.Index
	})
	return panels
}

// HitTest returns the index of the front-most panel under the viewport
// point (x, y).
func (f *Flow) HitTest(x, y float32) (int, bool) {
	cx := x + f.scroll
	panels := f.Panels()
	for i := len(panels) - 1; i >= 0; i-- {
		p := panels[i]
		if Project(p.Pose, p.Content, f.params).Contains(cx, y) {
			return p.Index, true
		}
	}
	return -1, false
}

// Close detaches every panel and drops the element pool.
func (f *Flow) Close() {
	f.releaseAll()
	f.pool.reset()
	f.gesture = Gesture{}
}

func (f *Flow) layoutElement(el *Element, animated bool) {
	el.Pose = Layout(el.Index, f.window.selected, el.Content, f.params, f.viewport)
	f.renderer.RenderPanel(el.panel(), animated)
}

func (f *Flow) relayout(animated bool) {
	for _, i := range f.window.indices() {
		f.layoutElement(f.window.elements[i], animated)
	}
}

func (f *Flow) scrollTo(offset float32, animated bool) {
	f.scroll = offset
	f.renderer.ScrollTo(offset, animated)
}

func (f *Flow) logf(format string, args ...any) {
	if f.Logf != nil {
		f.Logf(format, args...)
	}
}

func (f *Flow) notifySelectionChanged() {
	if f.OnSelectionChanged != nil {
		f.OnSelectionChanged(f.window.selected)
	}
}
