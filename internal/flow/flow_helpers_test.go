package flow

import (
	"image"
	"image/color"
	"time"
)

type renderCall struct {
	panel    Panel
	animated bool
}

// spyRenderer records every call made by a Flow.
type spyRenderer struct {
	renders  []renderCall
	detached []ElementID
	scrolls  []float32
	animated []bool
}

func (r *spyRenderer) RenderPanel(p Panel, animated bool) {
	r.renders = append(r.renders, renderCall{panel: p, animated: animated})
}

func (r *spyRenderer) DetachPanel(id ElementID) {
	r.detached = append(r.detached, id)
}

func (r *spyRenderer) ScrollTo(offset float32, animated bool) {
	r.scrolls = append(r.scrolls, offset)
	r.animated = append(r.animated, animated)
}

func (r *spyRenderer) reset() {
	r.renders = nil
	r.detached = nil
	r.scrolls = nil
	r.animated = nil
}

// lastScroll returns the most recent scroll offset.
func (r *spyRenderer) lastScroll() (float32, bool) {
	if len(r.scrolls) == 0 {
		return 0, false
	}
	return r.scrolls[len(r.scrolls)-1], r.animated[len(r.animated)-1]
}

// fakeSource counts image requests.
type fakeSource struct {
	requests []int
	fallback image.Image
}

func newFakeSource() *fakeSource {
	return &fakeSource{fallback: solidImage(100, 100, color.Gray{Y: 128})}
}

func (s *fakeSource) RequestImage(index int) {
	s.requests = append(s.requests, index)
}

func (s *fakeSource) DefaultImage() image.Image {
	return s.fallback
}

func (s *fakeSource) count(index int) int {
	n := 0
	for _, i := range s.requests {
		if i == index {
			n++
		}
	}
	return n
}

func solidImage(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// newTestFlow returns a Flow over total items with a 320x240 viewport.
func newTestFlow(total int) (*Flow, *spyRenderer, *fakeSource) {
	src := newFakeSource()
	r := &spyRenderer{}
	f := New(src, r, DefaultParams())
	f.SetViewport(Viewport{Width: 320, Height: 240})
	f.SetCount(total)
	return f, r, src
}

// fakeClock is a settable time source.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

// idsByIndex maps materialized indices to element IDs.
func idsByIndex(f *Flow) map[int]ElementID {
	out := make(map[int]ElementID, len(f.window.elements))
	for i, el := range f.window.elements {
		out[i] = el.ID
	}
	return out
}

// expectedRange is the window the invariants require for a selection.
func expectedRange(sel, total, buffer int) []int {
	var out []int
	for i := max(0, sel-buffer); i <= min(total-1, sel+buffer); i++ {
		out = append(out, i)
	}
	return out
}
